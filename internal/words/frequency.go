package words

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
)

// Frequencies maps a word to how common it is; larger is more common.
type Frequencies map[string]float64

// ReadFrequencies loads a JSON object of word → frequency.
func ReadFrequencies(path string) (Frequencies, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]float64
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	freq := make(Frequencies, len(raw))
	for w, f := range raw {
		w = game.Normalize(w)
		if game.ValidateWord(w) != nil {
			continue
		}
		if old, ok := freq[w]; !ok || f > old {
			freq[w] = f
		}
	}
	return freq, nil
}

// MostCommon returns the n most frequent words, most frequent first.
// Equal frequencies are ordered alphabetically so the result is stable.
// n <= 0 returns every word.
func MostCommon(freq Frequencies, n int) []string {
	out := make([]string, 0, len(freq))
	for w := range freq {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool {
		fi, fj := freq[out[i]], freq[out[j]]
		if fi != fj {
			return fi > fj
		}
		return out[i] < out[j]
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
