package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/robalobadob/wordle-solver/internal/feedback"
	"github.com/robalobadob/wordle-solver/internal/solver"
)

var (
	ErrTargetLength = errors.New("target has wrong length")
	ErrRawFeedback  = errors.New("expected: absent <letters> | misplaced <letter> <positions> | confirmed <letter> <positions>")
)

// maxShown caps how many candidates are printed on one line.
const maxShown = 20

// runSolve reads "guess marks" lines from in and prints the candidates left
// after each one. Feedback can also be entered directly, zero-based:
//
//	absent c n
//	misplaced r 1 3
//	confirmed e 4
//
// It returns at EOF or on "q".
func runSolve(in io.Reader, out io.Writer, dict []string) error {
	c := feedback.NewCollector(solver.WordLength)
	var raw solver.Feedback
	candidates := dict
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		fields := strings.Fields(strings.ToLower(sc.Text()))
		switch {
		case len(fields) == 0:
			continue
		case fields[0] == "q" || fields[0] == "quit":
			return nil
		case fields[0] == "p" || fields[0] == "print":
			printCandidates(out, candidates, len(candidates))
			continue
		case fields[0] == "reset":
			c.Reset()
			raw = solver.Feedback{}
			candidates = dict
			fmt.Fprintf(out, "%d candidates\n", len(candidates))
			continue
		case fields[0] == "absent" || fields[0] == "misplaced" || fields[0] == "confirmed":
			next, err := addRaw(raw, fields)
			var list []string
			if err == nil {
				list, err = solver.Solve(dict, mergeFeedback(c.Feedback(), next))
			}
			if err != nil {
				fmt.Fprintln(out, "error:", err)
				continue
			}
			raw, candidates = next, list
			printCandidates(out, candidates, maxShown)
			continue
		case len(fields) != 2:
			fmt.Fprintln(out, "expected: <guess> <marks>, e.g. crane bygbg")
			continue
		}

		next := c.Clone()
		marks, err := feedback.ParseMarks(fields[1])
		if err == nil {
			err = next.Add(fields[0], marks)
		}
		var list []string
		if err == nil {
			list, err = solver.Solve(dict, mergeFeedback(next.Feedback(), raw))
		}
		if err != nil {
			fmt.Fprintln(out, "error:", err)
			continue
		}
		c, candidates = next, list
		printCandidates(out, candidates, maxShown)
	}
}

// addRaw returns a copy of fb extended by one absent/misplaced/confirmed
// command. Absent takes letters; the others take a letter and positions.
func addRaw(fb solver.Feedback, fields []string) (solver.Feedback, error) {
	next := mergeFeedback(solver.Feedback{}, fb)
	if len(fields) < 2 {
		return fb, fmt.Errorf("%s: %w", fields[0], ErrRawFeedback)
	}
	if fields[0] == "absent" {
		for _, f := range fields[1:] {
			for _, r := range f {
				next.Absent = append(next.Absent, string(r))
			}
		}
		return next, nil
	}

	letter := fields[1]
	var at []int
	for _, f := range fields[2:] {
		i, err := strconv.Atoi(f)
		if err != nil {
			return fb, fmt.Errorf("%s %s: position %q: %w", fields[0], letter, f, ErrRawFeedback)
		}
		at = append(at, i)
	}
	target := next.Misplaced
	if fields[0] == "confirmed" {
		target = next.Confirmed
	}
	target[letter] = append(target[letter], at...)
	return next, nil
}

// mergeFeedback returns a new Feedback holding both a and b.
func mergeFeedback(a, b solver.Feedback) solver.Feedback {
	out := solver.Feedback{
		Misplaced: make(map[string][]int),
		Confirmed: make(map[string][]int),
	}
	for _, fb := range []solver.Feedback{a, b} {
		out.Absent = append(out.Absent, fb.Absent...)
		for k, v := range fb.Misplaced {
			out.Misplaced[k] = append(out.Misplaced[k], v...)
		}
		for k, v := range fb.Confirmed {
			out.Confirmed[k] = append(out.Confirmed[k], v...)
		}
	}
	return out
}

// runSimulate scores each guess read from in against target and reports the
// marks and the remaining candidates, until the target is guessed or EOF.
func runSimulate(in io.Reader, out io.Writer, dict []string, target string) error {
	target = strings.ToLower(strings.TrimSpace(target))
	if len(target) != solver.WordLength {
		return fmt.Errorf("%q: %w", target, ErrTargetLength)
	}
	c := feedback.NewCollector(solver.WordLength)
	dropped := false
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "guess: ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		guess := strings.ToLower(strings.TrimSpace(sc.Text()))
		if guess == "" {
			continue
		}
		marks := feedback.Score(guess, target)
		if err := c.Add(guess, marks); err != nil {
			fmt.Fprintln(out, "error:", err)
			continue
		}
		candidates := solver.Filter(dict, c.Feedback())
		fmt.Fprintf(out, "%s %s\n", guess, feedback.FormatMarks(marks))
		if feedback.Solved(marks) {
			fmt.Fprintf(out, "solved in %d guesses\n", c.Len())
			return nil
		}
		printCandidates(out, candidates, maxShown)
		// Accumulated yellows can over-count a letter, and a yellow plus green
		// without a black is read as an exact position set.
		if !dropped && slices.Contains(dict, target) && !slices.Contains(candidates, target) {
			dropped = true
			fmt.Fprintf(out, "note: %s no longer matches the collected feedback\n", target)
		}
	}
}

func printCandidates(out io.Writer, candidates []string, limit int) {
	switch len(candidates) {
	case 0:
		fmt.Fprintln(out, "0 candidates")
		return
	case 1:
		fmt.Fprintf(out, "1 candidate: %s\n", candidates[0])
		return
	}
	fmt.Fprintf(out, "%d candidates\n", len(candidates))
	shown := candidates
	if limit < len(shown) {
		shown = shown[:limit]
	}
	fmt.Fprint(out, strings.Join(shown, " "))
	if n := len(candidates) - len(shown); n > 0 {
		fmt.Fprintf(out, " ... (+%d more)", n)
	}
	fmt.Fprintln(out)
}
