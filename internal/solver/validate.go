package solver

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

var (
	ErrInvalidLetter        = errors.New("invalid letter")
	ErrInvalidPosition      = errors.New("invalid position")
	ErrInconsistentFeedback = errors.New("inconsistent feedback")
	ErrWordLength           = errors.New("invalid word length")
)

// Normalize lower-cases and trims letters, collapses duplicate absent letters
// and returns position lists sorted and de-duplicated. Keys that normalize to
// the same letter are merged. The input is not modified.
func Normalize(fb Feedback) Feedback {
	out := Feedback{
		Misplaced: normalizeMap(fb.Misplaced),
		Confirmed: normalizeMap(fb.Confirmed),
	}
	seen := make(map[string]bool, len(fb.Absent))
	for _, a := range fb.Absent {
		a = normalizeLetter(a)
		if seen[a] {
			continue
		}
		seen[a] = true
		out.Absent = append(out.Absent, a)
	}
	return out
}

func normalizeLetter(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func normalizeMap(m map[string][]int) map[string][]int {
	if m == nil {
		return nil
	}
	out := make(map[string][]int, len(m))
	for k, list := range m {
		k = normalizeLetter(k)
		out[k] = uniqueSorted(append(out[k], list...))
	}
	return out
}

func uniqueSorted(list []int) []int {
	out := make([]int, 0, len(list))
	seen := make(map[int]bool, len(list))
	for _, i := range list {
		if !seen[i] {
			seen[i] = true
			out = append(out, i)
		}
	}
	sort.Ints(out)
	return out
}

// Validate checks fb at the boundary, before it reaches Filter.
// Letters must be single lower-case a–z characters and positions must lie in
// [0, length). A position may be confirmed for one letter only, and a letter
// cannot be both confirmed and misplaced at the same position.
func Validate(fb Feedback, length int) error {
	for _, a := range fb.Absent {
		if err := validateLetter(a); err != nil {
			return fmt.Errorf("absent: %w", err)
		}
	}
	for _, k := range sortedKeys(fb.Misplaced) {
		if err := validateLetter(k); err != nil {
			return fmt.Errorf("misplaced: %w", err)
		}
		if err := validatePositions(k, fb.Misplaced[k], length); err != nil {
			return fmt.Errorf("misplaced: %w", err)
		}
	}

	owner := make(map[int]string, length)
	for _, k := range sortedKeys(fb.Confirmed) {
		if err := validateLetter(k); err != nil {
			return fmt.Errorf("confirmed: %w", err)
		}
		list := fb.Confirmed[k]
		if len(list) == 0 {
			return fmt.Errorf("confirmed: letter %q has no positions: %w", k, ErrInvalidPosition)
		}
		if err := validatePositions(k, list, length); err != nil {
			return fmt.Errorf("confirmed: %w", err)
		}
		for _, i := range list {
			if prev, ok := owner[i]; ok && prev != k {
				return fmt.Errorf("position %d confirmed for both %q and %q: %w", i, prev, k, ErrInconsistentFeedback)
			}
			owner[i] = k
		}
		for _, i := range fb.Misplaced[k] {
			if owner[i] == k {
				return fmt.Errorf("letter %q both confirmed and misplaced at position %d: %w", k, i, ErrInconsistentFeedback)
			}
		}
	}
	return nil
}

func validateLetter(s string) error {
	if utf8.RuneCountInString(s) != 1 {
		return fmt.Errorf("%q is not a single character: %w", s, ErrInvalidLetter)
	}
	if s[0] < 'a' || s[0] > 'z' {
		return fmt.Errorf("%q is not a lower-case letter: %w", s, ErrInvalidLetter)
	}
	return nil
}

func validatePositions(letter string, list []int, length int) error {
	for _, i := range list {
		if i < 0 || i >= length {
			return fmt.Errorf("letter %q at position %d outside [0, %d): %w", letter, i, length, ErrInvalidPosition)
		}
	}
	return nil
}

// ValidateDictionary reports the first word whose length is not length.
func ValidateDictionary(dictionary []string, length int) error {
	for i, w := range dictionary {
		if n := utf8.RuneCountInString(w); n != length {
			return fmt.Errorf("word %d %q has %d letters, want %d: %w", i, w, n, length, ErrWordLength)
		}
	}
	return nil
}

// Solve normalizes and validates fb, then filters dictionary with it.
func Solve(dictionary []string, fb Feedback) ([]string, error) {
	fb = Normalize(fb)
	if err := Validate(fb, WordLength); err != nil {
		return nil, err
	}
	return Filter(dictionary, fb), nil
}
