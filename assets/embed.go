// Package assets embeds the default word lists so the solver runs without
// any files configured.
package assets

import (
	"embed"
	"io"
)

//go:embed allowed.txt answers.txt
var FS embed.FS

// AnswersList opens the embedded secret-word list.
func AnswersList() (io.ReadCloser, error) {
	return FS.Open("answers.txt")
}

// AllowedList opens the embedded allowed-guess list.
func AllowedList() (io.ReadCloser, error) {
	return FS.Open("allowed.txt")
}
