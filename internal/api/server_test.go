package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"skillmuse/internal/config"
	"skillmuse/internal/extract"
	"skillmuse/internal/lesson"
	"skillmuse/internal/models"
	"skillmuse/internal/providers"
	"skillmuse/internal/storage"
)

func testServer(t *testing.T) http.Handler {
	t.Helper()
	cfg := config.Config{
		FrontendURL:        "http://localhost:8080",
		LLMProviders:       "mock",
		FetchTimeoutSecs:   2,
		ExtractMaxChars:    10000,
		GenerateInputChars: 8000,
		GenerateMaxTokens:  2000,
		ContentMinChars:    100,
	}
	m, err := providers.NewManager(cfg)
	require.NoError(t, err)
	store := storage.NewMemoryStore()
	g := lesson.NewGenerator(cfg, m, nil, zap.NewNop())
	return NewServer(cfg, store, extract.New(cfg), g, zap.NewNop()).Routes()
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func createSkill(t *testing.T, h http.Handler, name string) models.Skill {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/skills", map[string]any{
		"skill_name": name,
		"difficulty": "beginner",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	return decode[models.Skill](t, rec)
}

func longText() string {
	return strings.Repeat("Go routines and channels are the backbone of concurrency. ", 4)
}

func TestHealthz(t *testing.T) {
	h := testServer(t)
	rec := doJSON(t, h, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestSkillRoundTrip(t *testing.T) {
	h := testServer(t)

	skill := createSkill(t, h, "Go Concurrency")
	require.NotEmpty(t, skill.ID)
	require.Equal(t, models.DifficultyBeginner, skill.Difficulty)
	require.Equal(t, DemoUserID, skill.CreatedByUserID)

	rec := doJSON(t, h, http.MethodGet, "/api/skills", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	skills := decode[[]models.Skill](t, rec)
	require.Len(t, skills, 1)
	require.Equal(t, skill.ID, skills[0].ID)

	rec = doJSON(t, h, http.MethodGet, "/api/skills/"+skill.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodDelete, "/api/skills/"+skill.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/skills/"+skill.ID, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decode[map[string]any](t, rec)
	require.Equal(t, "NOT_FOUND", body["error"])
}

func TestCreateSkillValidation(t *testing.T) {
	h := testServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/skills", map[string]any{"skill_name": "  "})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[map[string]any](t, rec)
	require.Equal(t, "VALIDATION_ERROR", body["error"])

	rec = doJSON(t, h, http.MethodPost, "/api/skills", map[string]any{
		"skill_name": "x", "difficulty": "impossible",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContentPipelineMockLesson(t *testing.T) {
	h := testServer(t)
	skill := createSkill(t, h, "HVAC Basics")

	rec := doJSON(t, h, http.MethodPost, "/api/skills/"+skill.ID+"/content", map[string]any{
		"sourceType":  "text",
		"sourceValue": longText(),
		"userGoal":    "HVAC Safety",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "mock", rec.Header().Get("X-Generation-Source"))

	created := decode[models.SkillLesson](t, rec)
	require.Equal(t, skill.ID, created.SkillID)
	require.NotEmpty(t, created.ContentID)
	require.Equal(t, "HVAC Safety", created.LessonData.SkillName)
	require.Len(t, created.LessonData.LearningOutcomes, 3)
	require.Len(t, created.LessonData.Summary.MainPoints, 5)
	require.Len(t, created.LessonData.Visual.Slides, 3)
	require.Len(t, created.LessonData.Quiz.Questions, 3)
	for _, q := range created.LessonData.Quiz.Questions {
		require.Len(t, q.Options, 4)
		require.GreaterOrEqual(t, q.CorrectIndex, 0)
		require.LessOrEqual(t, q.CorrectIndex, 3)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/skills/"+skill.ID+"/content-list", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	contents := decode[[]models.SkillContent](t, rec)
	require.Len(t, contents, 1)
	require.Equal(t, contents[0].ID, created.ContentID)

	rec = doJSON(t, h, http.MethodGet, "/api/skills/"+skill.ID+"/lessons", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	lessons := decode[[]models.SkillLesson](t, rec)
	require.Len(t, lessons, 1)

	rec = doJSON(t, h, http.MethodGet, fmt.Sprintf("/api/skills/%s/lessons/%s", skill.ID, lessons[0].ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestContentTooShortLeavesNoRows(t *testing.T) {
	h := testServer(t)
	skill := createSkill(t, h, "Short Content")

	rec := doJSON(t, h, http.MethodPost, "/api/skills/"+skill.ID+"/content", map[string]any{
		"sourceType":  "text",
		"sourceValue": "way too short",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[map[string]any](t, rec)
	require.Equal(t, "VALIDATION_ERROR", body["error"])

	rec = doJSON(t, h, http.MethodGet, "/api/skills/"+skill.ID+"/content-list", nil)
	require.Empty(t, decode[[]models.SkillContent](t, rec))
	rec = doJSON(t, h, http.MethodGet, "/api/skills/"+skill.ID+"/lessons", nil)
	require.Empty(t, decode[[]models.SkillLesson](t, rec))
}

func TestContentUnknownSkill(t *testing.T) {
	h := testServer(t)
	rec := doJSON(t, h, http.MethodPost, "/api/skills/0b6f2995-4fca-4a94-a6d2-4f7a4337ffa5/content", map[string]any{
		"sourceType":  "text",
		"sourceValue": longText(),
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPDFPathRejectedOnJSONRoutes(t *testing.T) {
	h := testServer(t)
	skill := createSkill(t, h, "Local Files")

	rec := doJSON(t, h, http.MethodPost, "/api/skills/"+skill.ID+"/content", map[string]any{
		"sourceType":  "pdf",
		"sourceValue": "/etc/passwd",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[map[string]any](t, rec)
	require.Equal(t, "VALIDATION_ERROR", body["error"])

	rec = doJSON(t, h, http.MethodPost, "/api/lessons/generate", map[string]any{
		"sourceType":  "pdf",
		"sourceValue": "/etc/passwd",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Nothing was extracted or saved for either attempt.
	rec = doJSON(t, h, http.MethodGet, "/api/skills/"+skill.ID+"/content-list", nil)
	require.Empty(t, decode[[]models.SkillContent](t, rec))
	rec = doJSON(t, h, http.MethodGet, "/api/lessons", nil)
	require.Empty(t, decode[[]models.Lesson](t, rec))
}

func TestContentInvalidSourceType(t *testing.T) {
	h := testServer(t)
	skill := createSkill(t, h, "Bad Source")
	rec := doJSON(t, h, http.MethodPost, "/api/skills/"+skill.ID+"/content", map[string]any{
		"sourceType":  "carrier-pigeon",
		"sourceValue": longText(),
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLegacyLessonGenerateAndQuiz(t *testing.T) {
	h := testServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/lessons/generate", map[string]any{
		"sourceType":  "text",
		"sourceValue": longText(),
		"userGoal":    "Quiz Me",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "mock", rec.Header().Get("X-Generation-Source"))
	created := decode[models.Lesson](t, rec)
	require.Equal(t, "Quiz Me", created.Title)
	require.Len(t, created.Quiz.Questions, 3)

	rec = doJSON(t, h, http.MethodGet, "/api/lessons", nil)
	require.Len(t, decode[[]models.Lesson](t, rec), 1)

	// Mock quiz answer key is 0, 2, 1.
	rec = doJSON(t, h, http.MethodPost, "/api/lessons/"+created.ID+"/quiz", map[string]any{
		"answers": []int{0, 2, 1},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	perfect := decode[map[string]any](t, rec)
	require.Equal(t, float64(100), perfect["score"])
	require.Equal(t, float64(3), perfect["correctCount"])
	require.Equal(t, float64(3), perfect["total"])
	require.NotEmpty(t, perfect["quizResultId"])

	rec = doJSON(t, h, http.MethodPost, "/api/lessons/"+created.ID+"/quiz", map[string]any{
		"answers": []int{0, 0, 0},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	partial := decode[map[string]any](t, rec)
	require.Equal(t, float64(33), partial["score"])
	require.Equal(t, float64(1), partial["correctCount"])
}

func TestQuizUnknownLesson(t *testing.T) {
	h := testServer(t)
	rec := doJSON(t, h, http.MethodPost, "/api/lessons/0b6f2995-4fca-4a94-a6d2-4f7a4337ffa5/quiz", map[string]any{
		"answers": []int{0},
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGroupCreateAddsCreatorAsAdmin(t *testing.T) {
	h := testServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/groups", map[string]any{"group_name": "Study Crew"})
	require.Equal(t, http.StatusCreated, rec.Code)
	group := decode[models.Group](t, rec)
	require.Equal(t, DemoUserID, group.CreatedByUserID)

	// A second user joins, then sees the group in their listing.
	rec = doJSON(t, h, http.MethodPost, "/api/groups/"+group.ID+"/members", map[string]any{
		"user_id": "other-user",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/groups", nil)
	req.Header.Set("X-User-ID", "other-user")
	other := httptest.NewRecorder()
	h.ServeHTTP(other, req)
	require.Equal(t, http.StatusOK, other.Code)
	groups := decode[[]models.Group](t, other)
	require.Len(t, groups, 1)
	require.Equal(t, group.ID, groups[0].ID)
}

func TestProgressUpsert(t *testing.T) {
	h := testServer(t)
	score := 85

	rec := doJSON(t, h, http.MethodPost, "/api/progress", map[string]any{
		"skill_id":   "0b6f2995-4fca-4a94-a6d2-4f7a4337ffa5",
		"lesson_id":  "1c7f2995-4fca-4a94-a6d2-4f7a4337ffa6",
		"quiz_score": score,
		"completed":  true,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	p := decode[models.Progress](t, rec)
	require.NotNil(t, p.QuizScore)
	require.Equal(t, score, *p.QuizScore)
	require.True(t, p.Completed)
	require.NotNil(t, p.CompletedAt)

	// Re-submitting without a score keeps the previous one.
	rec = doJSON(t, h, http.MethodPost, "/api/progress", map[string]any{
		"skill_id":  "0b6f2995-4fca-4a94-a6d2-4f7a4337ffa5",
		"lesson_id": "1c7f2995-4fca-4a94-a6d2-4f7a4337ffa6",
		"completed": true,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	p = decode[models.Progress](t, rec)
	require.NotNil(t, p.QuizScore)
	require.Equal(t, score, *p.QuizScore)
}

func TestUsersAreIsolated(t *testing.T) {
	h := testServer(t)
	createSkill(t, h, "Mine")

	req := httptest.NewRequest(http.MethodGet, "/api/skills", nil)
	req.Header.Set("X-User-ID", "someone-else")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decode[[]models.Skill](t, rec))
}

func TestMethodNotAllowed(t *testing.T) {
	h := testServer(t)
	rec := doJSON(t, h, http.MethodDelete, "/api/lessons", nil)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	body := decode[map[string]any](t, rec)
	require.Equal(t, "METHOD_NOT_ALLOWED", body["error"])
}
