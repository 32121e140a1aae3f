package api

import (
	"net/http"
	"strings"
	"time"

	"skillmuse/internal/apperr"
	"skillmuse/internal/models"
)

func (s *Server) handleUpsertProgress(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SkillID   string `json:"skill_id"`
		LessonID  string `json:"lesson_id"`
		QuizScore *int   `json:"quiz_score"`
		Completed bool   `json:"completed"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeErr(w, r, err)
		return
	}
	if strings.TrimSpace(req.SkillID) == "" {
		s.writeErr(w, r, apperr.Validation("skill_id is required"))
		return
	}
	if strings.TrimSpace(req.LessonID) == "" {
		s.writeErr(w, r, apperr.Validation("lesson_id is required"))
		return
	}
	if req.QuizScore != nil && (*req.QuizScore < 0 || *req.QuizScore > 100) {
		s.writeErr(w, r, apperr.Validation("quiz_score must be between 0 and 100"))
		return
	}

	p := models.Progress{
		UserID:    userID(r),
		SkillID:   req.SkillID,
		LessonID:  req.LessonID,
		QuizScore: req.QuizScore,
		Completed: req.Completed,
	}
	if req.Completed {
		now := time.Now().UTC()
		p.CompletedAt = &now
	}

	saved, err := s.store.Progress.UpsertProgress(r.Context(), p)
	if err != nil {
		s.writeErr(w, r, apperr.Persistence("save progress", err))
		return
	}
	writeJSON(w, http.StatusOK, saved)
}
