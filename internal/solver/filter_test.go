package solver

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-solver/internal/words"
)

var small = []string{"crane", "trace", "brake", "drake", "blare"}

func TestFilterNoConstraints(t *testing.T) {
	got := Filter(small, Feedback{})
	assert.Equal(t, small, got)

	got[0] = "xxxxx"
	assert.Equal(t, "crane", small[0], "result must not alias the dictionary")
}

func TestFilterEmptyDictionary(t *testing.T) {
	got := Filter(nil, Feedback{Absent: []string{"a"}, Confirmed: map[string][]int{"e": {4}}})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterScenarios(t *testing.T) {
	tests := []struct {
		name string
		dict []string
		fb   Feedback
		want []string
	}{
		{
			name: "absent c, r not at 2, e at 4",
			dict: small,
			fb: Feedback{
				Absent:    []string{"c"},
				Misplaced: map[string][]int{"r": {2}},
				Confirmed: map[string][]int{"e": {4}},
			},
			want: []string{"brake", "drake", "blare"},
		},
		{
			name: "r not at 1",
			dict: small,
			fb: Feedback{
				Absent:    []string{"c"},
				Misplaced: map[string][]int{"r": {1}},
				Confirmed: map[string][]int{"e": {4}},
			},
			want: []string{"blare"},
		},
		{
			name: "absence only",
			dict: small,
			fb:   Feedback{Absent: []string{"k", "n"}},
			want: []string{"trace", "blare"},
		},
		{
			name: "misplaced letter missing from word",
			dict: small,
			fb:   Feedback{Misplaced: map[string][]int{"d": {4}}},
			want: []string{"drake"},
		},
		{
			name: "misplaced with no positions only requires presence",
			dict: small,
			fb:   Feedback{Misplaced: map[string][]int{"b": nil}},
			want: []string{"brake", "blare"},
		},
		{
			name: "confirmed must match exactly",
			dict: []string{"eerie", "elite", "theme", "crane"},
			fb:   Feedback{Confirmed: map[string][]int{"e": {4}}},
			want: []string{"crane"},
		},
		{
			name: "confirmed set with two positions",
			dict: []string{"eerie", "elite", "theme", "crane"},
			fb:   Feedback{Confirmed: map[string][]int{"e": {0, 4}}},
			want: []string{"elite"},
		},
		{
			name: "overlap with confirmed caps the count",
			dict: []string{"eerie", "elite", "theme", "crane", "trace"},
			fb: Feedback{
				Absent:    []string{"e"},
				Confirmed: map[string][]int{"e": {4}},
			},
			want: []string{"crane", "trace"},
		},
		{
			name: "overlap with misplaced and confirmed allows both",
			dict: []string{"eerie", "elite", "theme", "crane", "speed"},
			fb: Feedback{
				Absent:    []string{"e"},
				Misplaced: map[string][]int{"e": {2}},
				Confirmed: map[string][]int{"e": {4}},
			},
			want: []string{"elite", "theme"},
		},
		{
			name: "misplaced and confirmed without absent stays exact",
			dict: []string{"elite", "theme", "crane"},
			fb: Feedback{
				Misplaced: map[string][]int{"e": {2}},
				Confirmed: map[string][]int{"e": {4}},
			},
			want: []string{"crane"},
		},
		{
			name: "confirmed pair with misplaced elsewhere",
			dict: []string{"eerie", "elite", "theme", "crane"},
			fb: Feedback{
				Misplaced: map[string][]int{"e": {1}},
				Confirmed: map[string][]int{"e": {0, 4}},
			},
			want: []string{"elite"},
		},
		{
			name: "overlap with misplaced only",
			dict: []string{"eager", "crane", "speed", "alert"},
			fb: Feedback{
				Absent:    []string{"e"},
				Misplaced: map[string][]int{"e": {1}},
			},
			want: []string{"crane", "alert"},
		},
		{
			name: "every overlap letter is capped",
			dict: []string{"agate", "eager", "crane"},
			fb: Feedback{
				Absent:    []string{"e", "a"},
				Misplaced: map[string][]int{"e": {1}, "a": {0}},
			},
			want: []string{"crane"},
		},
		{
			name: "duplicate absent letters collapse",
			dict: small,
			fb:   Feedback{Absent: []string{"c", "c", "c"}},
			want: []string{"brake", "drake", "blare"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Filter(tt.dict, tt.fb))
		})
	}
}

func TestFilterCandidates(t *testing.T) {
	got := FilterCandidates(small, []string{"c"}, map[string][]int{"r": {2}}, map[string][]int{"e": {4}})
	assert.Equal(t, []string{"brake", "drake", "blare"}, got)
}

func TestFilterDoesNotMutateFeedback(t *testing.T) {
	fb := Feedback{
		Absent:    []string{"e", "c"},
		Misplaced: map[string][]int{"r": {2, 2}},
		Confirmed: map[string][]int{"e": {4}},
	}
	_ = Filter(small, fb)
	assert.Equal(t, []string{"e", "c"}, fb.Absent)
	assert.Equal(t, []int{2, 2}, fb.Misplaced["r"])
	assert.Equal(t, []int{4}, fb.Confirmed["e"])
}

func TestFilterProperties(t *testing.T) {
	dict, err := words.Load(context.Background(), words.Source{Length: WordLength})
	require.NoError(t, err)

	feedbacks := []Feedback{
		{Absent: []string{"s", "t"}},
		{Absent: []string{"a"}, Misplaced: map[string][]int{"r": {0}}},
		{Misplaced: map[string][]int{"e": {0}, "a": {1}}, Confirmed: map[string][]int{"t": {2}}},
		{Absent: []string{"e", "o"}, Confirmed: map[string][]int{"e": {4}}},
		{Absent: []string{"r", "i"}, Misplaced: map[string][]int{"r": {0}}, Confirmed: map[string][]int{"r": {2}}},
		{Misplaced: map[string][]int{"e": {2}}, Confirmed: map[string][]int{"e": {4}}},
		{Misplaced: map[string][]int{"e": {0}}, Confirmed: map[string][]int{"e": {2, 4}}},
	}
	for _, fb := range feedbacks {
		got := Filter(dict, fb)

		assert.Equal(t, got, Filter(got, fb), "filtering is idempotent")
		assertSubsequence(t, dict, got)

		overlap := map[string]bool{}
		for _, a := range fb.Absent {
			_, m := fb.Misplaced[a]
			_, c := fb.Confirmed[a]
			overlap[a] = m || c
		}
		for _, w := range got {
			for _, a := range fb.Absent {
				if !overlap[a] {
					assert.NotContains(t, w, a)
					continue
				}
				want := len(fb.Misplaced[a]) + len(fb.Confirmed[a])
				assert.Equal(t, want, strings.Count(w, a), "overlap letter %q in %q", a, w)
			}
			for k, pos := range fb.Misplaced {
				assert.Contains(t, w, k)
				assert.NotEqual(t, positionSet(pos), positionsOf(w, letterOf(k)))
			}
			for k, pos := range fb.Confirmed {
				if _, ok := fb.Misplaced[k]; ok && overlap[k] {
					assert.True(t, positionsOf(w, letterOf(k)).covers(positionSet(pos)), "%q covers %v", w, pos)
					continue
				}
				assert.Equal(t, positionSet(pos), positionsOf(w, letterOf(k)), "confirmed %q in %q", k, w)
			}
		}
	}
}

// assertSubsequence checks that got keeps the relative order of dict.
func assertSubsequence(t *testing.T, dict, got []string) {
	t.Helper()
	i := 0
	for _, w := range dict {
		if i < len(got) && got[i] == w {
			i++
		}
	}
	assert.Equal(t, len(got), i, "result is not an ordered subsequence of the dictionary")
}

func TestPositionsOf(t *testing.T) {
	assert.Equal(t, positionSet([]int{0, 1, 4}), positionsOf("eerie", 'e'))
	assert.Equal(t, positions(0), positionsOf("crane", 'z'))
	assert.Equal(t, 3, positionsOf("eerie", 'e').size())
	assert.True(t, containsLetter("crane", 'n'))
	assert.False(t, containsLetter("crane", 'z'))
}
