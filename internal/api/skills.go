package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"skillmuse/internal/apperr"
	"skillmuse/internal/models"
	"skillmuse/internal/storage"
)

// pathID returns the named URL parameter when it is a well-formed UUID.
// Malformed ids short-circuit to NOT_FOUND before any query runs.
func pathID(r *http.Request, name string) (string, error) {
	raw := chi.URLParam(r, name)
	if _, err := uuid.Parse(raw); err != nil {
		return "", apperr.NotFound(strings.TrimSuffix(name, "ID"))
	}
	return raw, nil
}

func (s *Server) handleListSkills(w http.ResponseWriter, r *http.Request) {
	skills, err := s.store.Skills.ListSkills(r.Context(), userID(r))
	if err != nil {
		s.writeErr(w, r, apperr.Persistence("list skills", err))
		return
	}
	writeJSON(w, http.StatusOK, skills)
}

func (s *Server) handleCreateSkill(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SkillName   string   `json:"skill_name"`
		Description string   `json:"description"`
		Difficulty  string   `json:"difficulty"`
		Outcomes    []string `json:"learning_outcomes"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeErr(w, r, err)
		return
	}
	req.SkillName = strings.TrimSpace(req.SkillName)
	if req.SkillName == "" {
		s.writeErr(w, r, apperr.Validation("skill_name is required"))
		return
	}
	difficulty := models.Difficulty(req.Difficulty)
	if req.Difficulty == "" {
		difficulty = models.DifficultyBeginner
	} else if !difficulty.Valid() {
		s.writeErr(w, r, apperr.Validation("difficulty must be beginner, intermediate or advanced"))
		return
	}
	if req.Outcomes == nil {
		req.Outcomes = []string{}
	}

	skill, err := s.store.Skills.CreateSkill(r.Context(), models.Skill{
		ID:               uuid.NewString(),
		SkillName:        req.SkillName,
		Description:      strings.TrimSpace(req.Description),
		Difficulty:       difficulty,
		LearningOutcomes: req.Outcomes,
		CreatedByUserID:  userID(r),
	})
	if err != nil {
		s.writeErr(w, r, apperr.Persistence("create skill", err))
		return
	}
	writeJSON(w, http.StatusCreated, skill)
}

func (s *Server) handleGetSkill(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "skillID")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	skill, err := s.store.Skills.GetSkill(r.Context(), userID(r), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.writeErr(w, r, apperr.NotFound("skill"))
			return
		}
		s.writeErr(w, r, apperr.Persistence("get skill", err))
		return
	}
	writeJSON(w, http.StatusOK, skill)
}

func (s *Server) handleDeleteSkill(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "skillID")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	if err := s.store.Skills.DeleteSkill(r.Context(), userID(r), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.writeErr(w, r, apperr.NotFound("skill"))
			return
		}
		s.writeErr(w, r, apperr.Persistence("delete skill", err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}
