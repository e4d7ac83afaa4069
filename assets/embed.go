// Package assets embeds the default word lists.
package assets

import "embed"

// Embedded list names.
const (
	AnswersFile = "answers.txt"
	AllowedFile = "allowed.txt"
)

//go:embed answers.txt allowed.txt
var FS embed.FS
