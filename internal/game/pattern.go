// internal/game/pattern.go
//
// Feedback oracle: evaluates a guess against a secret with the classic
// two-pass algorithm, packs/unpacks patterns and parses typed-in feedback.

package game

import (
	"strconv"
	"strings"
)

// Evaluate validates both words and returns the feedback pattern for guess
// against secret.
func Evaluate(guess, secret string) (Pattern, error) {
	if err := ValidateWord(guess); err != nil {
		return Pattern{}, err
	}
	if err := ValidateWord(secret); err != nil {
		return Pattern{}, err
	}
	return evaluate(guess, secret), nil
}

// Outcome returns the packed pattern for guess against secret.
// Both words must already have passed ValidateWord.
func Outcome(guess, secret string) Code {
	return evaluate(guess, secret).Code()
}

// evaluate implements the standard two-pass scoring algorithm.
//
// Pass 1:
//   - Mark exact matches as Hit.
//   - Count remaining (non-hit) secret letters by letter index.
//
// Pass 2:
//   - For each non-hit guess letter, left to right: if there is remaining
//     count for that letter mark Present and decrement, otherwise Miss.
func evaluate(guess, secret string) Pattern {
	var res Pattern
	var counts [26]int

	for i := 0; i < WordLen; i++ {
		if guess[i] == secret[i] {
			res[i] = MarkHit
		} else {
			counts[secret[i]-'a']++
		}
	}

	for i := 0; i < WordLen; i++ {
		if res[i] == MarkHit {
			continue
		}
		j := guess[i] - 'a'
		if counts[j] > 0 {
			res[i] = MarkPresent
			counts[j]--
		}
	}
	return res
}

// Code packs the pattern into its base-3 integer form.
func (p Pattern) Code() Code {
	var c Code
	for i := WordLen - 1; i >= 0; i-- {
		c = c*3 + Code(p[i])
	}
	return c
}

// Solved reports whether every position is a hit.
func (p Pattern) Solved() bool {
	for _, m := range p {
		if m != MarkHit {
			return false
		}
	}
	return true
}

// String renders the pattern as digits, position 0 first ("01020").
func (p Pattern) String() string {
	var b strings.Builder
	for _, m := range p {
		b.WriteByte('0' + byte(m))
	}
	return b.String()
}

// Tiles renders the pattern as coloured squares for the board display.
func (p Pattern) Tiles() string {
	var b strings.Builder
	for _, m := range p {
		switch m {
		case MarkHit:
			b.WriteString("🟩")
		case MarkPresent:
			b.WriteString("🟨")
		default:
			b.WriteString("⬛")
		}
	}
	return b.String()
}

// Code returns c itself so that Code satisfies Feedback.
func (c Code) Code() Code { return c }

// Pattern unpacks c. Codes above NumCodes-1 are not valid patterns.
func (c Code) Pattern() Pattern {
	var p Pattern
	for i := 0; i < WordLen; i++ {
		p[i] = Mark(c % 3)
		c /= 3
	}
	return p
}

// Valid reports whether c is in [0, NumCodes).
func (c Code) Valid() bool { return int(c) < NumCodes }

// AllHit is the code of a solved row.
var AllHit = Pattern{MarkHit, MarkHit, MarkHit, MarkHit, MarkHit}.Code()

// ParsePattern parses feedback typed by a human or sent by a client.
//
// Accepted forms (case-insensitive, surrounding brackets ignored):
//   - five digits, optionally separated by spaces or commas: "0 1 0 2 0", "01020"
//   - five colour letters: g (hit), y (present), b/x/. (miss): "bybgb"
func ParsePattern(s string) (Pattern, error) {
	in := s
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Trim(s, "[]()")
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' || r == '\t' })

	var symbols []string
	switch {
	case len(fields) == 1 && len(fields[0]) == WordLen:
		for i := 0; i < WordLen; i++ {
			symbols = append(symbols, fields[0][i:i+1])
		}
	case len(fields) == WordLen:
		symbols = fields
	default:
		return Pattern{}, &MalformedFeedbackError{Input: in, Reason: "expected five marks"}
	}

	var p Pattern
	for i, sym := range symbols {
		switch sym {
		case "0", "b", "x", ".", "-":
			p[i] = MarkMiss
		case "1", "y":
			p[i] = MarkPresent
		case "2", "g":
			p[i] = MarkHit
		default:
			return Pattern{}, &MalformedFeedbackError{Input: in, Reason: "unknown mark " + strconv.Quote(sym)}
		}
	}
	return p, nil
}

// ValidateWord checks that w is exactly WordLen lowercase ASCII letters.
func ValidateWord(w string) error {
	if len(w) != WordLen {
		return &InvalidWordError{Word: w, Reason: "must be 5 letters"}
	}
	if !isAlpha(w) {
		return &InvalidWordError{Word: w, Reason: "letters a-z only"}
	}
	return nil
}

// Normalize lowercases and trims w before validation.
func Normalize(w string) string {
	return strings.ToLower(strings.TrimSpace(w))
}

// isAlpha checks that a string consists only of lowercase a–z.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
