package api

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"skillmuse/internal/apperr"
	"skillmuse/internal/models"
	"skillmuse/internal/quiz"
	"skillmuse/internal/storage"
)

func (s *Server) handleSubmitQuiz(w http.ResponseWriter, r *http.Request) {
	lessonID, err := pathID(r, "lessonID")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	var req struct {
		Answers []int `json:"answers"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeErr(w, r, err)
		return
	}
	if req.Answers == nil {
		s.writeErr(w, r, apperr.Validation("answers is required"))
		return
	}

	uid := userID(r)
	l, err := s.store.Lessons.GetLesson(r.Context(), uid, lessonID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.writeErr(w, r, apperr.NotFound("lesson"))
			return
		}
		s.writeErr(w, r, apperr.Persistence("get lesson", err))
		return
	}

	graded := quiz.Grade(l.Quiz.Questions, req.Answers)

	saved, err := s.store.Quiz.CreateQuizResult(r.Context(), models.QuizResult{
		ID:       uuid.NewString(),
		LessonID: l.ID,
		UserID:   uid,
		Score:    graded.Score,
		Answers:  req.Answers,
	})
	if err != nil {
		s.writeErr(w, r, apperr.Persistence("save quiz result", err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"score":        graded.Score,
		"correctCount": graded.CorrectCount,
		"total":        graded.Total,
		"quizResultId": saved.ID,
	})
}
