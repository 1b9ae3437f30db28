// Package companion runs the interactive helper: it recommends a guess,
// reads the colours the real game showed, narrows the candidates and
// recommends the next guess.
package companion

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/table"
)

// ErrInputClosed is returned when input ends before the game does.
var ErrInputClosed = errors.New("companion: input closed")

// Options configures Run.
type Options struct {
	Rounds       int             // guesses before giving up (default 6)
	Alternatives int             // runner-up guesses to show (default 3, <0 for none)
	Strategy     solver.Strategy // default entropy
}

// Result is how the interactive game ended.
type Result struct {
	Solved  bool
	Guesses int
	Answer  string
}

const prompt = "Feedback (e.g. 0 1 0 2 0 or bybgb, [word] to override, y if solved, p to list): "

// Run drives one interactive game over in/out.
//
// Malformed feedback re-prompts without using up a round. Any other error
// (unknown guess, feedback inconsistent with the word lists) ends the game
// and is returned.
func Run(ctx context.Context, in io.Reader, out io.Writer, t *table.Table, opts Options) (Result, error) {
	if opts.Rounds <= 0 {
		opts.Rounds = game.DefaultRows
	}
	if opts.Alternatives == 0 {
		opts.Alternatives = 3
	}
	sess := solver.NewSession(t, opts.Strategy, nil)
	sess.Start()
	sc := bufio.NewScanner(in)

	for round := 1; round <= opts.Rounds; round++ {
		guess, err := sess.Suggest()
		if err != nil {
			return Result{Guesses: round - 1}, err
		}
		left := len(sess.Candidates())
		fmt.Fprintf(out, "\nGuess %d: %s  (%d candidate%s left)\n", round, strings.ToUpper(guess), left, plural(left))
		if left > 1 && opts.Alternatives > 0 {
			printAlternatives(out, sess.Table(), guess, opts.Alternatives)
		}

		for {
			if err := ctx.Err(); err != nil {
				return Result{Guesses: round - 1}, err
			}
			fmt.Fprint(out, prompt)
			if !sc.Scan() {
				if err := sc.Err(); err != nil {
					return Result{Guesses: round - 1}, err
				}
				return Result{Guesses: round - 1}, ErrInputClosed
			}
			line := strings.ToLower(strings.TrimSpace(sc.Text()))

			switch line {
			case "":
				continue
			case "y", "yes", "solved", "correct":
				fmt.Fprintf(out, "Solved in %d!\n", round)
				return Result{Solved: true, Guesses: round, Answer: guess}, nil
			case "p":
				fmt.Fprintln(out, strings.Join(sess.Candidates(), " "))
				continue
			}

			played, fb, err := parseLine(line, guess)
			if err != nil {
				var mf *game.MalformedFeedbackError
				if errors.As(err, &mf) {
					fmt.Fprintf(out, "Could not read that (%s); try again.\n", mf.Reason)
					continue
				}
				return Result{Guesses: round - 1}, err
			}
			if fb.Solved() {
				fmt.Fprintf(out, "Solved in %d!\n", round)
				return Result{Solved: true, Guesses: round, Answer: played}, nil
			}
			if err := sess.Observe(played, fb); err != nil {
				log.Debug().Err(err).Str("guess", played).Msg("companion aborted")
				fmt.Fprintf(out, "Cannot continue: %v\n", err)
				return Result{Guesses: round}, err
			}
			break
		}
	}

	fmt.Fprintln(out, "Better luck next time!")
	return Result{Guesses: opts.Rounds}, nil
}

// parseLine splits "[word] pattern". Without a leading word the
// recommended guess is assumed to be the one played.
func parseLine(line, recommended string) (string, game.Pattern, error) {
	played := recommended
	fields := strings.Fields(line)
	if len(fields) >= 2 && game.ValidateWord(fields[0]) == nil {
		played = fields[0]
		line = strings.Join(fields[1:], " ")
	}
	p, err := game.ParsePattern(line)
	return played, p, err
}

func printAlternatives(out io.Writer, t *table.Table, chosen string, n int) {
	var parts []string
	for _, s := range solver.Rank(t, n+1) {
		if s.Guess == chosen || len(parts) == n {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %.2f", s.Guess, s.Bits))
	}
	if len(parts) > 0 {
		fmt.Fprintf(out, "  alternatives (bits): %s\n", strings.Join(parts, ", "))
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
