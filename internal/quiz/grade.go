// Package quiz scores multiple-choice submissions.
package quiz

import (
	"math"

	"skillmuse/internal/models"
)

type GradeResult struct {
	Score        int `json:"score"`
	CorrectCount int `json:"correctCount"`
	Total        int `json:"total"`
}

// Grade counts answers matching each question's correct index and returns a
// rounded percentage. Extra answers beyond the question list are ignored; a
// lesson with no questions grades to zero rather than dividing by zero.
func Grade(questions []models.Question, answers []int) GradeResult {
	total := len(questions)
	if total == 0 {
		return GradeResult{Score: 0, CorrectCount: 0, Total: 0}
	}
	correct := 0
	for i, answer := range answers {
		if i >= total {
			break
		}
		if answer == questions[i].CorrectIndex {
			correct++
		}
	}
	score := int(math.Round(100 * float64(correct) / float64(total)))
	return GradeResult{Score: score, CorrectCount: correct, Total: total}
}
