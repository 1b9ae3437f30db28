package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustEval(t *testing.T, guess, secret string) Pattern {
	t.Helper()
	p, err := Evaluate(guess, secret)
	require.NoError(t, err)
	return p
}

func TestEvaluateKnownPatterns(t *testing.T) {
	tests := []struct {
		guess, secret string
		want          string
	}{
		{"excel", "boxed", "01020"},
		{"mummy", "mommy", "20222"},
		{"crane", "crane", "22222"},
		{"speed", "abide", "00101"},
		{"eerie", "there", "10102"},
		{"llama", "hello", "11000"},
		{"array", "rarer", "11200"},
	}
	for _, tt := range tests {
		t.Run(tt.guess+"/"+tt.secret, func(t *testing.T) {
			assert.Equal(t, tt.want, mustEval(t, tt.guess, tt.secret).String())
		})
	}
}

func TestEvaluateSelfMatchIsAllHit(t *testing.T) {
	for _, w := range []string{"crane", "mommy", "aaaaa", "zesty", "boxed"} {
		p := mustEval(t, w, w)
		assert.True(t, p.Solved(), w)
		assert.Equal(t, AllHit, p.Code(), w)
	}
}

// Hits plus presents for each letter never exceed min(count in guess, count in secret),
// and equal it exactly.
func TestEvaluateLetterCountBound(t *testing.T) {
	words := []string{"crane", "mommy", "mummy", "eerie", "there", "speed", "abide",
		"llama", "hello", "array", "rarer", "boxed", "excel", "geese", "sassy"}
	for _, g := range words {
		for _, s := range words {
			p := mustEval(t, g, s)
			var gc, sc, marked [26]int
			hits := [26]int{}
			for i := 0; i < WordLen; i++ {
				gc[g[i]-'a']++
				sc[s[i]-'a']++
				if p[i] != MarkMiss {
					marked[g[i]-'a']++
				}
				if p[i] == MarkHit {
					hits[g[i]-'a']++
				}
			}
			for c := 0; c < 26; c++ {
				bound := min(gc[c], sc[c])
				assert.Equal(t, bound, marked[c], "%s vs %s letter %c", g, s, 'a'+c)
				assert.LessOrEqual(t, hits[c], bound)
			}
		}
	}
}

func TestPackRoundTrip(t *testing.T) {
	for c := 0; c < NumCodes; c++ {
		code := Code(c)
		require.True(t, code.Valid())
		assert.Equal(t, code, code.Pattern().Code())
	}
	p := Pattern{MarkMiss, MarkPresent, MarkMiss, MarkHit, MarkMiss}
	assert.Equal(t, Code(1*3+2*27), p.Code())
	assert.Equal(t, p, p.Code().Pattern())
	assert.False(t, Code(243).Valid())
}

func TestEvaluateRejectsMalformedWords(t *testing.T) {
	for _, pair := range [][2]string{{"cran", "crane"}, {"crane", "cranes"}, {"CRANE", "crane"}, {"cr4ne", "crane"}} {
		_, err := Evaluate(pair[0], pair[1])
		var iw *InvalidWordError
		require.True(t, errors.As(err, &iw), "%v", pair)
	}
}

func TestParsePattern(t *testing.T) {
	ok := map[string]string{
		"0 1 0 2 0":   "01020",
		"0,1,0,2,0":   "01020",
		"01020":       "01020",
		" [2,2,2,2,2]": "22222",
		"bybgb":       "01020",
		"GGYXX":       "22100",
	}
	for in, want := range ok {
		p, err := ParsePattern(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, p.String(), in)
	}

	for _, in := range []string{"", "0102", "010203", "crane", "0 1 0 2", "0 1 0 2 3", "yes"} {
		_, err := ParsePattern(in)
		var mf *MalformedFeedbackError
		assert.True(t, errors.As(err, &mf), "%q should be malformed", in)
	}
}

func TestMarkText(t *testing.T) {
	b, err := MarkHit.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "hit", string(b))

	var m Mark
	require.NoError(t, m.UnmarshalText([]byte("present")))
	assert.Equal(t, MarkPresent, m)
	assert.Error(t, m.UnmarshalText([]byte("green")))
}
