package solver

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/table"
)

// Scored is a guess with the entropy of its feedback distribution.
type Scored struct {
	Guess string  `json:"guess"`
	Bits  float64 `json:"bits"`
}

// Entropy returns the Shannon entropy, in bits, of the distribution of
// codes in row. Codes that never occur contribute nothing; an empty row
// has entropy 0.
func Entropy(row []game.Code) float64 {
	if len(row) == 0 {
		return 0
	}
	var counts [game.NumCodes]int
	for _, c := range row {
		counts[c]++
	}
	n := float64(len(row))
	p := make([]float64, 0, 16)
	for _, k := range counts {
		if k > 0 {
			p = append(p, float64(k)/n)
		}
	}
	// same multiset of counts, same float result, whatever the codes
	sort.Float64s(p)
	// stat.Entropy is in nats
	h := stat.Entropy(p) / math.Ln2
	if h <= 0 {
		return 0
	}
	return h
}

// BestGuess returns the guess whose feedback has the highest entropy over
// the table's current secrets. Ties go to the earliest guess in row order.
func BestGuess(t *table.Table) Scored {
	best := Scored{Bits: -1}
	for i, g := range t.Guesses() {
		h := Entropy(t.RowAt(i))
		if h > best.Bits {
			best = Scored{Guess: g, Bits: h}
		}
	}
	return best
}

// Rank returns the n highest-entropy guesses, best first; ties keep row
// order. n <= 0 ranks every guess.
func Rank(t *table.Table, n int) []Scored {
	all := make([]Scored, t.NumGuesses())
	for i, g := range t.Guesses() {
		all[i] = Scored{Guess: g, Bits: Entropy(t.RowAt(i))}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Bits > all[j].Bits })
	if n > 0 && n < len(all) {
		all = all[:n]
	}
	return all
}
