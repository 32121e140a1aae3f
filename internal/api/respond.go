package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"skillmuse/internal/apperr"
)

type errorBody struct {
	Error   apperr.Code    `json:"error"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr serves the stable error envelope. Messages for 5xx codes stay
// generic; the wrapped cause goes to the log only.
func (s *Server) writeErr(w http.ResponseWriter, r *http.Request, err error) {
	code := apperr.CodeOf(err)
	status := apperr.HTTPStatus(code)

	msg := ""
	var ae *apperr.Error
	if errors.As(err, &ae) {
		msg = ae.Message
	}
	if status >= 500 {
		s.log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("code", string(code)),
			zap.Error(err))
		switch code {
		case apperr.CodeUpstream:
			msg = "Lesson generation failed. Please retry."
		case apperr.CodePersistence:
			msg = "Unable to save changes. Please retry."
		default:
			msg = "Internal server error."
		}
	}

	writeJSON(w, status, errorBody{Error: code, Message: msg})
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.Validation("malformed JSON request body")
	}
	return nil
}
