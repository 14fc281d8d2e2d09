// internal/solver/filter.go
//
// Constraint filter for Wordle feedback.
// Given the dictionary and the feedback accumulated so far, Filter returns the
// words that are still possible answers, in dictionary order.
//
// Rules, applied to every word in this order:
//   1. Absent:    a word containing an absent letter is rejected, unless that
//                 letter is also misplaced or confirmed (an "overlap" letter).
//   2. Misplaced: every misplaced letter occurs in the word, and the set of
//                 positions it occupies differs from the known-wrong set.
//   3. Confirmed: every confirmed letter occupies exactly the confirmed
//                 positions. An overlap letter that is also misplaced must only
//                 cover them; rule 4 fixes how many more times it occurs.
//   4. Overlap:   every overlap letter occurs exactly |misplaced|+|confirmed|
//                 times in the word.
//
// The filter is pure: it neither mutates nor retains its inputs and never fails.

package solver

import (
	"math/bits"
	"sort"
	"strings"
	"unicode/utf8"
)

// WordLength is the fixed length of every dictionary word.
const WordLength = 5

// Feedback is the accumulated result of every guess made so far.
// Position lists are sets: order and duplicates are irrelevant.
type Feedback struct {
	Absent    []string         `json:"absent"`
	Misplaced map[string][]int `json:"misplaced"`
	Confirmed map[string][]int `json:"confirmed"`
}

// IsEmpty reports whether fb carries no constraint at all.
func (fb Feedback) IsEmpty() bool {
	return len(fb.Absent) == 0 && len(fb.Misplaced) == 0 && len(fb.Confirmed) == 0
}

// FilterCandidates narrows dictionary using the three feedback structures.
func FilterCandidates(dictionary, absent []string, misplaced, confirmed map[string][]int) []string {
	return Filter(dictionary, Feedback{Absent: absent, Misplaced: misplaced, Confirmed: confirmed})
}

// Filter returns the words of dictionary consistent with fb, preserving order.
// The result never aliases dictionary.
func Filter(dictionary []string, fb Feedback) []string {
	return compile(fb).filter(dictionary)
}

// positions is a set of rune indexes within a word.
type positions uint64

func positionSet(list []int) positions {
	var p positions
	for _, i := range list {
		if i >= 0 && i < 64 {
			p |= 1 << uint(i)
		}
	}
	return p
}

// covers reports whether every position of other is also in p.
func (p positions) covers(other positions) bool { return p&other == other }

type letterRule struct {
	letter rune
	at     positions
	exact  bool
}

type letterCount struct {
	letter rune
	count  int
}

// constraints is Feedback compiled for repeated evaluation.
type constraints struct {
	absent    []rune
	misplaced []letterRule
	confirmed []letterRule
	counts    []letterCount
}

func compile(fb Feedback) *constraints {
	c := &constraints{}

	misplaced := make(map[rune]positions, len(fb.Misplaced))
	for _, k := range sortedKeys(fb.Misplaced) {
		l := letterOf(k)
		misplaced[l] |= positionSet(fb.Misplaced[k])
	}
	confirmed := make(map[rune]positions, len(fb.Confirmed))
	for _, k := range sortedKeys(fb.Confirmed) {
		l := letterOf(k)
		confirmed[l] |= positionSet(fb.Confirmed[k])
	}

	overlap := make(map[rune]bool, len(fb.Absent))
	seen := make(map[rune]bool, len(fb.Absent))
	for _, a := range fb.Absent {
		l := letterOf(a)
		if seen[l] {
			continue
		}
		seen[l] = true

		m, inMisplaced := misplaced[l]
		g, inConfirmed := confirmed[l]
		if !inMisplaced && !inConfirmed {
			c.absent = append(c.absent, l)
			continue
		}
		overlap[l] = true
		c.counts = append(c.counts, letterCount{letter: l, count: m.size() + g.size()})
	}

	for _, l := range sortedRunes(misplaced) {
		c.misplaced = append(c.misplaced, letterRule{letter: l, at: misplaced[l]})
	}
	for _, l := range sortedRunes(confirmed) {
		// Only an overlap letter may occur beyond its confirmed positions; the
		// count rule bounds how often.
		_, alsoMisplaced := misplaced[l]
		exact := !(alsoMisplaced && overlap[l])
		c.confirmed = append(c.confirmed, letterRule{letter: l, at: confirmed[l], exact: exact})
	}
	return c
}

func (c *constraints) filter(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if c.match(w) {
			out = append(out, w)
		}
	}
	return out
}

func (c *constraints) match(word string) bool {
	return c.passAbsent(word) && c.passMisplaced(word) && c.passConfirmed(word) && c.passCounts(word)
}

func (c *constraints) passAbsent(word string) bool {
	for _, l := range c.absent {
		if containsLetter(word, l) {
			return false
		}
	}
	return true
}

func (c *constraints) passMisplaced(word string) bool {
	for _, r := range c.misplaced {
		p := positionsOf(word, r.letter)
		if p == 0 || p == r.at {
			return false
		}
	}
	return true
}

func (c *constraints) passConfirmed(word string) bool {
	for _, r := range c.confirmed {
		p := positionsOf(word, r.letter)
		if p == 0 {
			return false
		}
		if r.exact && p != r.at {
			return false
		}
		if !r.exact && !p.covers(r.at) {
			return false
		}
	}
	return true
}

func (c *constraints) passCounts(word string) bool {
	for _, n := range c.counts {
		if strings.Count(word, string(n.letter)) != n.count {
			return false
		}
	}
	return true
}

// containsLetter reports whether letter occurs anywhere in word.
func containsLetter(word string, letter rune) bool {
	return strings.ContainsRune(word, letter)
}

// positionsOf returns the rune indexes at which letter occurs in word.
func positionsOf(word string, letter rune) positions {
	var p positions
	i := 0
	for _, r := range word {
		if r == letter && i < 64 {
			p |= 1 << uint(i)
		}
		i++
	}
	return p
}

func (p positions) size() int { return bits.OnesCount64(uint64(p)) }

// letterOf returns the single letter a feedback key stands for.
// Multi-character keys are rejected by Validate; here only the first rune counts.
func letterOf(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

func sortedKeys(m map[string][]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedRunes(m map[rune]positions) []rune {
	out := make([]rune, 0, len(m))
	for r := range m {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
