// internal/words/words.go
//
// Dictionary loading and holding for the solver.
//
// Responsibilities:
//   - Load the candidate dictionary from a SQLite table, a text file, or the
//     embedded default list (see Load for precedence).
//   - Normalize entries: trim, lower-case, skip blanks and # comments, keep only
//     alphabetic words of the fixed length, drop duplicates, preserve order.
//   - Hold the loaded list behind a RWMutex so the HTTP server can swap it on
//     reload while requests keep reading.
//
// Environment variables (via config):
//   WORDS_DB=/path/to/words.db     (table `words`, column `word`)
//   WORDS_FILE=/path/to/words.txt  (one word per line)

package words

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/robalobadob/wordle-solver/assets"
)

var ErrEmpty = errors.New("words: dictionary is empty")

// Source says where the dictionary comes from.
type Source struct {
	DB     string // SQLite file, opened read-only
	File   string // plain text, one word per line
	Length int    // required word length
}

// Describe returns a short human readable name for the source.
func (s Source) Describe() string {
	switch {
	case s.DB != "":
		return "sqlite:" + s.DB
	case s.File != "":
		return "file:" + s.File
	default:
		return "embedded"
	}
}

// Load reads and normalizes the dictionary.
//
// Precedence:
//  1. DB set   → rows of `SELECT word FROM words ORDER BY rowid`.
//  2. File set → lines of the file.
//  3. neither  → the embedded list from package assets.
//
// Returns ErrEmpty if nothing usable remains after normalization.
func Load(ctx context.Context, src Source) ([]string, error) {
	var (
		raw []string
		err error
	)
	switch {
	case src.DB != "":
		raw, err = readWordDB(ctx, src.DB)
	case src.File != "":
		raw, err = readWordFile(src.File)
	default:
		raw = assets.WordList()
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", src.Describe(), err)
	}

	out := Normalize(raw, src.Length)
	if len(out) == 0 {
		return nil, fmt.Errorf("load %s: %w", src.Describe(), ErrEmpty)
	}
	return out, nil
}

// readWordFile loads one entry per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	return out, sc.Err()
}

// Normalize keeps the valid words of raw, lower-cased, in first-seen order.
func Normalize(raw []string, length int) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, line := range raw {
		w := strings.TrimSpace(strings.ToLower(line))
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		if len(w) != length || !isAlpha(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// Dictionary holds the current word list. Safe for concurrent use.
type Dictionary struct {
	mu     sync.RWMutex
	words  []string
	set    map[string]struct{}
	length int
}

// NewDictionary wraps an already normalized word list.
func NewDictionary(length int, list []string) *Dictionary {
	d := &Dictionary{length: length}
	d.Replace(list)
	return d
}

// Words returns the current list. Callers must treat it as read-only; Replace
// installs a new slice rather than modifying the old one.
func (d *Dictionary) Words() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.words
}

// Replace swaps in a new list.
func (d *Dictionary) Replace(list []string) {
	set := make(map[string]struct{}, len(list))
	for _, w := range list {
		set[w] = struct{}{}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.words = list
	d.set = set
}

// Contains reports whether w (any case) is in the dictionary.
func (d *Dictionary) Contains(w string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.set[strings.ToLower(w)]
	return ok
}

// Len returns the number of words.
func (d *Dictionary) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.words)
}

// WordLength returns the fixed length of every word.
func (d *Dictionary) WordLength() int { return d.length }
