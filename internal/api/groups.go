package api

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"skillmuse/internal/apperr"
	"skillmuse/internal/models"
)

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.store.Groups.ListGroups(r.Context(), userID(r))
	if err != nil {
		s.writeErr(w, r, apperr.Persistence("list groups", err))
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GroupName   string `json:"group_name"`
		Description string `json:"description"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeErr(w, r, err)
		return
	}
	req.GroupName = strings.TrimSpace(req.GroupName)
	if req.GroupName == "" {
		s.writeErr(w, r, apperr.Validation("group_name is required"))
		return
	}

	uid := userID(r)
	group, err := s.store.Groups.CreateGroup(r.Context(), models.Group{
		ID:              uuid.NewString(),
		GroupName:       req.GroupName,
		Description:     strings.TrimSpace(req.Description),
		CreatedByUserID: uid,
	})
	if err != nil {
		s.writeErr(w, r, apperr.Persistence("create group", err))
		return
	}

	// The group is still usable without the membership row, so a failure
	// here does not fail the request.
	if err := s.store.Groups.AddGroupMember(r.Context(), models.GroupMember{
		GroupID: group.ID,
		UserID:  uid,
		Role:    "admin",
	}); err != nil {
		s.log.Warn("creator membership insert failed",
			zap.String("group_id", group.ID), zap.Error(err))
	}

	writeJSON(w, http.StatusCreated, group)
}

func (s *Server) handleAddGroupMember(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "groupID")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	var req struct {
		UserID string `json:"user_id"`
		Role   string `json:"role"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeErr(w, r, err)
		return
	}
	req.UserID = strings.TrimSpace(req.UserID)
	if req.UserID == "" {
		s.writeErr(w, r, apperr.Validation("user_id is required"))
		return
	}
	if req.Role == "" {
		req.Role = "member"
	}

	if err := s.store.Groups.AddGroupMember(r.Context(), models.GroupMember{
		GroupID: groupID,
		UserID:  req.UserID,
		Role:    req.Role,
	}); err != nil {
		s.writeErr(w, r, apperr.Persistence("add group member", err))
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"group_id": groupID, "user_id": req.UserID, "role": req.Role})
}
