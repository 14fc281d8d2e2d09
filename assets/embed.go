// Package assets embeds the default dictionary shipped with the binary.
package assets

import (
	_ "embed"
	"strings"
)

//go:embed words.txt
var wordsTxt string

// WordList returns the raw lines of the embedded dictionary, comments
// included. words.Normalize turns them into a dictionary.
func WordList() []string {
	return strings.Split(wordsTxt, "\n")
}
