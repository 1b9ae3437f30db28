// internal/words/words.go
//
// Word list loading for the solver.
//
// Word Lists:
//   - "secrets": candidate answers (exactly 5 lowercase letters).
//   - "allowed": valid guesses (always includes the secrets).
//
// Load behavior:
//  1. If both paths are set, load allowed guesses and secrets from them.
//  2. If only the allowed path is set, use that list for both.
//  3. If neither is set, fall back to the embedded lists in assets/.
//
// Constraints:
//   - Lines are trimmed and lowercased; only 5-letter a–z words survive.
//   - File order is kept; repeated words keep their first position.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/assets"
	"github.com/robalobadob/wordle/apps/solver/internal/game"
)

// ErrEmpty is returned when a list ends up without any valid word.
var ErrEmpty = errors.New("words: list is empty")

// Lists holds the two word lists the solver works from.
type Lists struct {
	Allowed []string // every permitted guess, secrets included
	Secrets []string // candidate answers

	allowedSet map[string]struct{}
	secretSet  map[string]struct{}
}

// New builds Lists from already parsed slices. Secrets missing from
// allowed are appended to it.
func New(allowed, secrets []string) (*Lists, error) {
	if len(secrets) == 0 {
		return nil, fmt.Errorf("secrets: %w", ErrEmpty)
	}
	l := &Lists{
		Secrets:    append([]string(nil), secrets...),
		allowedSet: make(map[string]struct{}, len(allowed)+len(secrets)),
		secretSet:  toSet(secrets),
	}
	for _, list := range [][]string{allowed, secrets} {
		for _, w := range list {
			if _, ok := l.allowedSet[w]; !ok {
				l.allowedSet[w] = struct{}{}
				l.Allowed = append(l.Allowed, w)
			}
		}
	}
	return l, nil
}

// Load reads the lists from disk, falling back to the embedded defaults.
func Load(allowedPath, secretsPath string) (*Lists, error) {
	var allowed, secrets []string
	var err error

	switch {
	case allowedPath != "" && secretsPath != "":
		if allowed, err = ReadFile(allowedPath); err != nil {
			return nil, err
		}
		if secrets, err = ReadFile(secretsPath); err != nil {
			return nil, err
		}
	case allowedPath != "":
		if allowed, err = ReadFile(allowedPath); err != nil {
			return nil, err
		}
		secrets = allowed
	case secretsPath != "":
		if secrets, err = ReadFile(secretsPath); err != nil {
			return nil, err
		}
		allowed = secrets
	default:
		return Default()
	}

	l, err := New(allowed, secrets)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("allowed", len(l.Allowed)).Int("secrets", len(l.Secrets)).Msg("word lists loaded")
	return l, nil
}

// Default returns the lists embedded in the binary.
func Default() (*Lists, error) {
	ans, err := readEmbedded(assets.AnswersList)
	if err != nil {
		return nil, fmt.Errorf("embedded answers: %w", err)
	}
	all, err := readEmbedded(assets.AllowedList)
	if err != nil {
		return nil, fmt.Errorf("embedded allowed: %w", err)
	}
	return New(all, ans)
}

func readEmbedded(open func() (io.ReadCloser, error)) ([]string, error) {
	rc, err := open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return Parse(rc)
}

// ReadFile loads one word per line from a file.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	out, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return out, nil
}

// Parse reads newline-delimited words, keeping valid 5-letter words in
// order and dropping repeats.
func Parse(r io.Reader) ([]string, error) {
	var out []string
	seen := make(map[string]struct{})
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := game.Normalize(sc.Text())
		if game.ValidateWord(w) != nil {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out, sc.Err()
}

// Write stores words newline-delimited.
func Write(w io.Writer, list []string) error {
	bw := bufio.NewWriter(w)
	for _, word := range list {
		if _, err := bw.WriteString(word + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// toSet converts a list of strings into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// IsAllowed reports whether w is a valid guess.
func (l *Lists) IsAllowed(w string) bool {
	_, ok := l.allowedSet[strings.ToLower(w)]
	return ok
}

// IsSecret reports whether w is a candidate answer.
func (l *Lists) IsSecret(w string) bool {
	_, ok := l.secretSet[strings.ToLower(w)]
	return ok
}

// AllowedSet exposes the allowed guesses as a set (read-only).
func (l *Lists) AllowedSet() map[string]struct{} { return l.allowedSet }

// Stats returns counts of loaded words: (secrets, allowed).
func (l *Lists) Stats() (secretCount int, allowedCount int) {
	return len(l.Secrets), len(l.Allowed)
}
