// internal/feedback/collector.go
//
// Collector turns the marks of successive guesses into the accumulated
// feedback consumed by the solver.
//
//   hit     → letter confirmed at that position
//   present → letter misplaced at that position
//   miss    → letter absent (reconciled by the solver when the same letter
//             is also confirmed or misplaced)
//
// Positions accumulate into sets across guesses; a later guess never
// overwrites what an earlier one established.

package feedback

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/robalobadob/wordle-solver/internal/solver"
)

var (
	ErrGuessLength  = errors.New("guess has wrong length")
	ErrGuessLetters = errors.New("guess must be letters a-z")
	ErrMarksLength  = errors.New("marks do not match guess length")
)

// Guess is one guessed word together with the marks the game returned.
type Guess struct {
	Word  string `json:"word"`
	Marks []Mark `json:"marks"`
}

// Collector is not safe for concurrent use.
type Collector struct {
	length    int
	absent    map[string]struct{}
	misplaced map[string]map[int]struct{}
	confirmed map[string]map[int]struct{}
	guesses   []Guess
}

// NewCollector returns an empty collector for words of the given length.
func NewCollector(length int) *Collector {
	c := &Collector{length: length}
	c.Reset()
	return c
}

// Reset forgets every guess.
func (c *Collector) Reset() {
	c.absent = make(map[string]struct{})
	c.misplaced = make(map[string]map[int]struct{})
	c.confirmed = make(map[string]map[int]struct{})
	c.guesses = nil
}

// Add records a guess and its marks. Nothing is recorded on error, including
// when the guess contradicts the feedback collected so far.
func (c *Collector) Add(guess string, marks []Mark) error {
	guess = strings.ToLower(strings.TrimSpace(guess))
	if len(guess) != c.length {
		return fmt.Errorf("%q has %d letters, want %d: %w", guess, len(guess), c.length, ErrGuessLength)
	}
	for i := 0; i < len(guess); i++ {
		if guess[i] < 'a' || guess[i] > 'z' {
			return fmt.Errorf("%q: %w", guess, ErrGuessLetters)
		}
	}
	if len(marks) != c.length {
		return fmt.Errorf("%d marks for %q: %w", len(marks), guess, ErrMarksLength)
	}
	for _, m := range marks {
		if m != MarkHit && m != MarkPresent && m != MarkMiss {
			return fmt.Errorf("mark %q: %w", m, ErrInvalidMarks)
		}
	}

	next := c.clone()
	for i, m := range marks {
		letter := guess[i : i+1]
		switch m {
		case MarkHit:
			addPosition(next.confirmed, letter, i)
		case MarkPresent:
			addPosition(next.misplaced, letter, i)
		case MarkMiss:
			next.absent[letter] = struct{}{}
		}
	}
	// A guess contradicting earlier ones (say, two letters green at one
	// position) would poison every later query.
	if err := solver.Validate(next.Feedback(), c.length); err != nil {
		return fmt.Errorf("guess %q: %w", guess, err)
	}
	next.guesses = append(next.guesses, Guess{Word: guess, Marks: append([]Mark(nil), marks...)})
	*c = *next
	return nil
}

// Clone returns an independent copy of c.
func (c *Collector) Clone() *Collector { return c.clone() }

func (c *Collector) clone() *Collector {
	out := &Collector{
		length:    c.length,
		absent:    make(map[string]struct{}, len(c.absent)),
		misplaced: cloneSets(c.misplaced),
		confirmed: cloneSets(c.confirmed),
		guesses:   append([]Guess(nil), c.guesses...),
	}
	for l := range c.absent {
		out.absent[l] = struct{}{}
	}
	return out
}

func cloneSets(m map[string]map[int]struct{}) map[string]map[int]struct{} {
	out := make(map[string]map[int]struct{}, len(m))
	for l, set := range m {
		cp := make(map[int]struct{}, len(set))
		for i := range set {
			cp[i] = struct{}{}
		}
		out[l] = cp
	}
	return out
}

func addPosition(m map[string]map[int]struct{}, letter string, i int) {
	set, ok := m[letter]
	if !ok {
		set = make(map[int]struct{})
		m[letter] = set
	}
	set[i] = struct{}{}
}

// Feedback returns the accumulated totals. Absent letters and positions are
// sorted so equal histories produce equal values.
func (c *Collector) Feedback() solver.Feedback {
	fb := solver.Feedback{
		Misplaced: toLists(c.misplaced),
		Confirmed: toLists(c.confirmed),
	}
	for l := range c.absent {
		fb.Absent = append(fb.Absent, l)
	}
	sort.Strings(fb.Absent)
	return fb
}

func toLists(m map[string]map[int]struct{}) map[string][]int {
	out := make(map[string][]int, len(m))
	for l, set := range m {
		list := make([]int, 0, len(set))
		for i := range set {
			list = append(list, i)
		}
		sort.Ints(list)
		out[l] = list
	}
	return out
}

// Guesses returns a copy of the recorded guesses in order.
func (c *Collector) Guesses() []Guess {
	return append([]Guess(nil), c.guesses...)
}

// Len returns the number of recorded guesses.
func (c *Collector) Len() int { return len(c.guesses) }
