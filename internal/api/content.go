package api

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"skillmuse/internal/apperr"
	"skillmuse/internal/extract"
	"skillmuse/internal/models"
	"skillmuse/internal/storage"
)

// generationSourceHeader reports which provider path produced the lesson
// ("openai", "groq" or "mock"). Success bodies are the resource itself, so
// the provenance rides on a header.
const generationSourceHeader = "X-Generation-Source"

func (s *Server) handleCreateContent(w http.ResponseWriter, r *http.Request) {
	skillID, err := pathID(r, "skillID")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	var req struct {
		SourceType  string `json:"sourceType"`
		SourceValue string `json:"sourceValue"`
		UserGoal    string `json:"userGoal"`
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
	// PDF extraction reads a server-side path, so it is only reachable via
	// the upload route, which controls where the file lands. Accepting a
	// client-supplied path here would let callers read arbitrary files.
	if contentType == models.ContentTypePDF {
		s.writeErr(w, r, apperr.Validation("pdf content must be sent to the upload endpoint"))
		return
	}
	if strings.TrimSpace(req.SourceValue) == "" {
		s.writeErr(w, r, apperr.Validation("sourceValue is required"))
		return
	}

	src := extract.Source{Type: contentType, Value: req.SourceValue}
	s.runContentPipeline(w, r, skillID, src, req.SourceValue, req.UserGoal)
}

func (s *Server) handleUploadContent(w http.ResponseWriter, r *http.Request) {
	skillID, err := pathID(r, "skillID")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		s.writeErr(w, r, apperr.Validation("malformed multipart request"))
		return
	}
	fh := firstFile(r.MultipartForm.File)
	if fh == nil {
		s.writeErr(w, r, apperr.Validation("a PDF file is required"))
		return
	}
	if !strings.HasSuffix(strings.ToLower(fh.Filename), ".pdf") {
		s.writeErr(w, r, apperr.Validation("only PDF uploads are supported"))
		return
	}

	path, err := savePDFUpload(s.cfg.DataDir, fh)
	if err != nil {
		s.writeErr(w, r, apperr.Internal(err))
		return
	}

	goal := r.FormValue("userGoal")
	src := extract.Source{Type: models.ContentTypePDF, Value: path}
	s.runContentPipeline(w, r, skillID, src, filepath.Base(fh.Filename), goal)
}

// runContentPipeline is the single extract-generate-persist path shared by
// JSON content creation and PDF upload. The content row is written before
// lesson generation; a failed lesson insert leaves it in place so the source
// stays inspectable.
func (s *Server) runContentPipeline(w http.ResponseWriter, r *http.Request, skillID string, src extract.Source, sourceValue, goal string) {
	ctx := r.Context()
	uid := userID(r)

	skill, err := s.store.Skills.GetSkill(ctx, uid, skillID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.writeErr(w, r, apperr.NotFound("skill"))
			return
		}
		s.writeErr(w, r, apperr.Persistence("get skill", err))
		return
	}

	text, err := s.extractor.Extract(ctx, src)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}

	content, err := s.store.Content.CreateContent(ctx, models.SkillContent{
		ID:              uuid.NewString(),
		SkillID:         skill.ID,
		ContentType:     src.Type,
		SourceValue:     sourceValue,
		ExtractedText:   text,
		CreatedByUserID: uid,
	})
	if err != nil {
		s.writeErr(w, r, apperr.Persistence("save content", err))
		return
	}

	if goal == "" {
		goal = skill.SkillName
	}
	result := s.generator.Generate(ctx, text, goal)

	saved, err := s.store.SkillLessons.CreateSkillLesson(ctx, models.SkillLesson{
		ID:               uuid.NewString(),
		SkillID:          skill.ID,
		ContentID:        content.ID,
		Title:            result.Payload.SkillName,
		ShortDescription: result.Payload.ShortDescription,
		LearningOutcomes: result.Payload.LearningOutcomes,
		LessonData:       result.Payload,
		CreatedByUserID:  uid,
	})
	if err != nil {
		s.log.Warn("lesson insert failed after content was saved",
			zap.String("content_id", content.ID), zap.Error(err))
		s.writeErr(w, r, apperr.Persistence("save lesson", err))
		return
	}

	w.Header().Set(generationSourceHeader, result.Source)
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleListContent(w http.ResponseWriter, r *http.Request) {
	skillID, err := pathID(r, "skillID")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	content, err := s.store.Content.ListContentBySkill(r.Context(), userID(r), skillID)
	if err != nil {
		s.writeErr(w, r, apperr.Persistence("list content", err))
		return
	}
	writeJSON(w, http.StatusOK, content)
}

func firstFile(files map[string][]*multipart.FileHeader) *multipart.FileHeader {
	if fhs := files["file"]; len(fhs) > 0 {
		return fhs[0]
	}
	for _, fhs := range files {
		if len(fhs) > 0 {
			return fhs[0]
		}
	}
	return nil
}

// savePDFUpload streams the upload to disk under a content-addressed name so
// re-uploads of the same file overwrite rather than accumulate.
func savePDFUpload(dstDir string, fh *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return "", fmt.Errorf("ensure upload dir: %w", err)
	}
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp(dstDir, "upload-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		_ = tmp.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(tmp, h), src); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	finalPath := filepath.Join(dstDir, fmt.Sprintf("%x.pdf", h.Sum(nil)))
	if err := os.Rename(tmp.Name(), finalPath); err != nil {
		return "", fmt.Errorf("atomic move upload: %w", err)
	}
	return finalPath, nil
}
