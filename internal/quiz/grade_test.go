package quiz

import (
	"testing"

	"skillmuse/internal/models"
)

func questions(correct ...int) []models.Question {
	out := make([]models.Question, 0, len(correct))
	for _, c := range correct {
		out = append(out, models.Question{
			Question:     "q",
			Options:      []string{"a", "b", "c", "d"},
			CorrectIndex: c,
		})
	}
	return out
}

func TestGrade(t *testing.T) {
	cases := []struct {
		name        string
		questions   []models.Question
		answers     []int
		wantScore   int
		wantCorrect int
		wantTotal   int
	}{
		{"all correct", questions(0, 1, 2), []int{0, 1, 2}, 100, 3, 3},
		{"all wrong", questions(0, 1, 2), []int{3, 3, 3}, 0, 0, 3},
		{"two of three rounds up", questions(0, 1, 2), []int{0, 1, 3}, 67, 2, 3},
		{"one of three rounds down", questions(0, 1, 2), []int{0, 3, 3}, 33, 1, 3},
		{"missing answers count wrong", questions(0, 1, 2), []int{0}, 33, 1, 3},
		{"extra answers ignored", questions(0), []int{0, 1, 2, 3}, 100, 1, 1},
		{"no questions", nil, []int{0, 1}, 0, 0, 0},
		{"no answers", questions(0, 1), nil, 0, 0, 2},
	}
	for _, tc := range cases {
		got := Grade(tc.questions, tc.answers)
		if got.Score != tc.wantScore || got.CorrectCount != tc.wantCorrect || got.Total != tc.wantTotal {
			t.Fatalf("%s: got %+v want score=%d correct=%d total=%d",
				tc.name, got, tc.wantScore, tc.wantCorrect, tc.wantTotal)
		}
	}
}

func TestGradeScoreBounds(t *testing.T) {
	for n := 1; n <= 7; n++ {
		qs := questions(make([]int, n)...)
		for c := 0; c <= n; c++ {
			answers := make([]int, n)
			for i := range answers {
				if i < c {
					answers[i] = 0
				} else {
					answers[i] = 1
				}
			}
			got := Grade(qs, answers)
			if got.Score < 0 || got.Score > 100 {
				t.Fatalf("score out of range: %d (n=%d c=%d)", got.Score, n, c)
			}
		}
	}
}
