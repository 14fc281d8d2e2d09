// internal/feedback/marks.go
//
// Per-letter marks reported by the game for a guess.
// Defines:
//   - Mark: hit (green), present (yellow), miss (black).
//   - ParseMarks: accepts compact "gybbg" / "21002" strings or
//     comma-separated "hit,present,miss,..." tokens.

package feedback

import (
	"errors"
	"fmt"
	"strings"
)

// Mark represents the evaluation result for a single letter in a guess.
type Mark string

const (
	MarkHit     Mark = "hit"
	MarkPresent Mark = "present"
	MarkMiss    Mark = "miss"
)

var ErrInvalidMarks = errors.New("invalid marks")

// ParseMarks converts a textual mark pattern into marks.
//
// Compact form, one character per letter:
//   g, 2 = hit;  y, 1 = present;  b, x, 0, . = miss  (case-insensitive)
//
// Long form, comma-separated: hit/green, present/yellow, miss/black/gray.
func ParseMarks(s string) ([]Mark, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return nil, fmt.Errorf("empty pattern: %w", ErrInvalidMarks)
	}
	if strings.Contains(s, ",") {
		var out []Mark
		for _, tok := range strings.Split(s, ",") {
			m, ok := longMarks[strings.TrimSpace(tok)]
			if !ok {
				return nil, fmt.Errorf("unknown mark %q: %w", tok, ErrInvalidMarks)
			}
			out = append(out, m)
		}
		return out, nil
	}
	out := make([]Mark, 0, len(s))
	for _, r := range s {
		m, ok := shortMarks[r]
		if !ok {
			return nil, fmt.Errorf("unknown mark %q: %w", r, ErrInvalidMarks)
		}
		out = append(out, m)
	}
	return out, nil
}

var shortMarks = map[rune]Mark{
	'g': MarkHit, '2': MarkHit,
	'y': MarkPresent, '1': MarkPresent,
	'b': MarkMiss, 'x': MarkMiss, '0': MarkMiss, '.': MarkMiss,
}

var longMarks = map[string]Mark{
	"hit": MarkHit, "green": MarkHit,
	"present": MarkPresent, "yellow": MarkPresent,
	"miss": MarkMiss, "black": MarkMiss, "gray": MarkMiss, "grey": MarkMiss,
}

// FormatMarks renders marks in the compact g/y/b form.
func FormatMarks(marks []Mark) string {
	var b strings.Builder
	for _, m := range marks {
		switch m {
		case MarkHit:
			b.WriteByte('g')
		case MarkPresent:
			b.WriteByte('y')
		default:
			b.WriteByte('b')
		}
	}
	return b.String()
}
