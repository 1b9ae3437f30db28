package game

import (
	"errors"
	"fmt"
)

var (
	ErrGameFinished = errors.New("game finished")
	ErrNotStarted   = errors.New("game not started")
	ErrNotAllowed   = errors.New("not in word list")
	ErrNoSecrets    = errors.New("no secrets to choose from")
)

// InvalidWordError reports a word with the wrong length or characters.
type InvalidWordError struct {
	Word   string
	Reason string
}

func (e *InvalidWordError) Error() string {
	return fmt.Sprintf("invalid word %q: %s", e.Word, e.Reason)
}

// MalformedFeedbackError reports input that does not parse as five marks.
type MalformedFeedbackError struct {
	Input  string
	Reason string
}

func (e *MalformedFeedbackError) Error() string {
	return fmt.Sprintf("malformed feedback %q: %s", e.Input, e.Reason)
}
