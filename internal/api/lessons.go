package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"skillmuse/internal/apperr"
	"skillmuse/internal/extract"
	"skillmuse/internal/models"
	"skillmuse/internal/storage"
)

func (s *Server) handleListSkillLessons(w http.ResponseWriter, r *http.Request) {
	skillID, err := pathID(r, "skillID")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	lessons, err := s.store.SkillLessons.ListSkillLessons(r.Context(), userID(r), skillID)
	if err != nil {
		s.writeErr(w, r, apperr.Persistence("list lessons", err))
		return
	}
	writeJSON(w, http.StatusOK, lessons)
}

func (s *Server) handleGetSkillLesson(w http.ResponseWriter, r *http.Request) {
	skillID, err := pathID(r, "skillID")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	lessonID, err := pathID(r, "lessonID")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	l, err := s.store.SkillLessons.GetSkillLesson(r.Context(), userID(r), skillID, lessonID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.writeErr(w, r, apperr.NotFound("lesson"))
			return
		}
		s.writeErr(w, r, apperr.Persistence("get lesson", err))
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleListLessons(w http.ResponseWriter, r *http.Request) {
	lessons, err := s.store.Lessons.ListLessons(r.Context(), userID(r))
	if err != nil {
		s.writeErr(w, r, apperr.Persistence("list lessons", err))
		return
	}
	writeJSON(w, http.StatusOK, lessons)
}

func (s *Server) handleGetLesson(w http.ResponseWriter, r *http.Request) {
	lessonID, err := pathID(r, "lessonID")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	l, err := s.store.Lessons.GetLesson(r.Context(), userID(r), lessonID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.writeErr(w, r, apperr.NotFound("lesson"))
			return
		}
		s.writeErr(w, r, apperr.Persistence("get lesson", err))
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// handleGenerateLesson serves the flat lesson flow that predates skills:
// extract, generate and save in one request, with no skill linkage.
func (s *Server) handleGenerateLesson(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SourceType  string `json:"sourceType"`
		SourceValue string `json:"sourceValue"`
		UserGoal    string `json:"userGoal"`
		Difficulty  string `json:"difficulty"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeErr(w, r, err)
		return
	}
	contentType := models.ContentType(strings.TrimSpace(req.SourceType))
	if !contentType.Valid() {
		s.writeErr(w, r, apperr.Validation("sourceType must be one of url, text, notes, youtube, pdf"))
		return
	}
	// Same restriction as the skill content route: pdf sources name a
	// server-side path and are only accepted through the upload endpoint.
	if contentType == models.ContentTypePDF {
		s.writeErr(w, r, apperr.Validation("pdf content must be sent to the upload endpoint"))
		return
	}
	if strings.TrimSpace(req.SourceValue) == "" {
		s.writeErr(w, r, apperr.Validation("sourceValue is required"))
		return
	}
	difficulty := models.Difficulty(req.Difficulty)
	if req.Difficulty != "" && !difficulty.Valid() {
		s.writeErr(w, r, apperr.Validation("difficulty must be beginner, intermediate or advanced"))
		return
	}

	text, err := s.extractor.Extract(r.Context(), extract.Source{Type: contentType, Value: req.SourceValue})
	if err != nil {
		s.writeErr(w, r, err)
		return
	}

	result := s.generator.Generate(r.Context(), text, req.UserGoal)
	p := result.Payload

	saved, err := s.store.Lessons.CreateLesson(r.Context(), models.Lesson{
		ID:               uuid.NewString(),
		UserID:           userID(r),
		Title:            p.SkillName,
		ShortDescription: p.ShortDescription,
		SourceType:       string(contentType),
		SourceValue:      req.SourceValue,
		Summary:          p.Summary,
		Visual:           p.Visual,
		Quiz:             p.Quiz,
		Difficulty:       difficulty,
	})
	if err != nil {
		s.writeErr(w, r, apperr.Persistence("save lesson", err))
		return
	}
	w.Header().Set(generationSourceHeader, result.Source)
	writeJSON(w, http.StatusOK, saved)
}
