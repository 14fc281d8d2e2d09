package feedback

// Score evaluates guess against answer with the standard two-pass algorithm.
//
// Pass 1:
//   - Mark exact matches as Hit.
//   - Count remaining (non-hit) answer letters.
//
// Pass 2:
//   - For each non-hit guess letter: if there is remaining count for that letter,
//     mark Present and decrement the count; otherwise mark Miss.
//
// Both words are expected to be lower-case and of equal length; on a length
// mismatch every position is a Miss.
func Score(guess, answer string) []Mark {
	n := len(guess)
	res := make([]Mark, n)
	if len(answer) != n {
		for i := range res {
			res[i] = MarkMiss
		}
		return res
	}

	counts := make(map[byte]int, n)
	for i := 0; i < n; i++ {
		if guess[i] == answer[i] {
			res[i] = MarkHit
		} else {
			counts[answer[i]]++
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == MarkHit {
			continue
		}
		if c := guess[i]; counts[c] > 0 {
			res[i] = MarkPresent
			counts[c]--
		} else {
			res[i] = MarkMiss
		}
	}
	return res
}

// Solved reports whether every mark is a Hit.
func Solved(marks []Mark) bool {
	if len(marks) == 0 {
		return false
	}
	for _, m := range marks {
		if m != MarkHit {
			return false
		}
	}
	return true
}
