package lesson

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"skillmuse/internal/config"
	"skillmuse/internal/models"
	"skillmuse/internal/providers"
)

// AuditRecord describes one generation attempt for the call log.
type AuditRecord struct {
	Operation string
	Provider  string
	Model     string
	Status    string
	ErrorType providers.ErrorType
}

// AuditFunc receives generation attempts. Failures inside the sink are the
// sink's problem; the generator never lets auditing fail a request.
type AuditFunc func(ctx context.Context, rec AuditRecord)

// Result is a generated lesson plus which path produced it, so callers and
// tests can assert whether the real provider or the mock fallback ran.
type Result struct {
	Payload models.LessonPayload
	Source  string
	Model   string
}

type Generator struct {
	provider   providers.ChatProvider
	ref        providers.ProviderRef
	inputChars int
	maxTokens  int
	audit      AuditFunc
	log        *zap.Logger
}

func NewGenerator(cfg config.Config, m *providers.Manager, audit AuditFunc, log *zap.Logger) *Generator {
	p, ref := m.Primary()
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{
		provider:   p,
		ref:        ref,
		inputChars: cfg.GenerateInputChars,
		maxTokens:  cfg.GenerateMaxTokens,
		audit:      audit,
		log:        log,
	}
}

// Generate turns extracted content into a lesson payload. It never returns an
// error for provider or parse failures; those degrade to the deterministic
// mock payload with Source "mock".
func (g *Generator) Generate(ctx context.Context, content, goal string) Result {
	userPrompt := buildUserPrompt(content, goal, g.inputChars)
	req := providers.ChatRequest{
		Operation: "lesson_generate",
		Messages: []providers.Message{
			{Role: providers.RoleSystem, Content: systemPrompt},
			{Role: providers.RoleUser, Content: userPrompt},
		},
		JSONMode:  true,
		MaxTokens: g.maxTokens,
	}

	resp, info, err := g.provider.Chat(ctx, req)
	if err != nil {
		g.record(ctx, info, "failed", err)
		g.log.Warn("lesson generation call failed, using mock payload",
			zap.String("provider", info.Name), zap.Error(err))
		return g.mockResult(goal)
	}

	payload, parseErr := parsePayload(resp.Text)
	if parseErr != nil {
		// One corrective round trip before giving up.
		retryReq := req
		retryReq.Messages = append(append([]providers.Message{}, req.Messages...),
			providers.Message{Role: providers.RoleAssistant, Content: resp.Text},
			providers.Message{Role: providers.RoleUser, Content: fixJSONPrompt},
		)
		retryResp, retryInfo, retryErr := g.provider.Chat(ctx, retryReq)
		if retryErr != nil {
			g.record(ctx, retryInfo, "failed", retryErr)
			g.log.Warn("lesson generation retry failed, using mock payload",
				zap.String("provider", retryInfo.Name), zap.Error(retryErr))
			return g.mockResult(goal)
		}
		payload, parseErr = parsePayload(retryResp.Text)
		if parseErr != nil {
			g.record(ctx, retryInfo, "invalid", parseErr)
			g.log.Warn("lesson generation reply unusable after retry, using mock payload",
				zap.String("provider", retryInfo.Name), zap.Error(parseErr))
			return g.mockResult(goal)
		}
		info = retryInfo
	}

	if info.Name == "mock" && goal != "" {
		payload.SkillName = goal
	}
	g.record(ctx, info, "ok", nil)
	return Result{Payload: payload, Source: info.Name, Model: info.Model}
}

func (g *Generator) mockResult(goal string) Result {
	return Result{Payload: MockPayload(goal), Source: "mock", Model: "mock-llm-v1"}
}

func (g *Generator) record(ctx context.Context, info providers.ProviderInfo, status string, err error) {
	if g.audit == nil {
		return
	}
	g.audit(ctx, AuditRecord{
		Operation: "lesson_generate",
		Provider:  info.Name,
		Model:     info.Model,
		Status:    status,
		ErrorType: providers.ClassifyError(err),
	})
}

// rawLesson mirrors the model's snake_case reply.
type rawLesson struct {
	SkillName        string   `json:"skill_name"`
	ShortDescription string   `json:"short_description"`
	LearningOutcomes []string `json:"learning_outcomes"`
	Summary          struct {
		MainPoints []string `json:"main_points"`
	} `json:"summary"`
	Visual struct {
		Slides []struct {
			Title   string   `json:"title"`
			Body    string   `json:"body"`
			Bullets []string `json:"bullets"`
		} `json:"slides"`
	} `json:"visual"`
	Quiz struct {
		Questions []struct {
			Question     string   `json:"question"`
			Options      []string `json:"options"`
			CorrectIndex int      `json:"correct_index"`
			Explanation  string   `json:"explanation"`
		} `json:"questions"`
	} `json:"quiz"`
}

func parsePayload(text string) (models.LessonPayload, error) {
	raw := stripCodeFence(text)
	if _, err := validateRaw(raw); err != nil {
		return models.LessonPayload{}, err
	}
	var rl rawLesson
	if err := json.Unmarshal([]byte(raw), &rl); err != nil {
		return models.LessonPayload{}, fmt.Errorf("decode lesson reply: %w", err)
	}
	return normalizePayload(rl), nil
}

// normalizePayload is the single snake_case to camelCase boundary.
func normalizePayload(rl rawLesson) models.LessonPayload {
	out := models.LessonPayload{
		SkillName:        rl.SkillName,
		ShortDescription: rl.ShortDescription,
		LearningOutcomes: rl.LearningOutcomes,
		Summary:          models.Summary{MainPoints: rl.Summary.MainPoints},
	}
	if out.LearningOutcomes == nil {
		out.LearningOutcomes = []string{}
	}
	if out.Summary.MainPoints == nil {
		out.Summary.MainPoints = []string{}
	}
	out.Visual.Slides = make([]models.Slide, 0, len(rl.Visual.Slides))
	for _, s := range rl.Visual.Slides {
		out.Visual.Slides = append(out.Visual.Slides, models.Slide{
			Title:   s.Title,
			Body:    s.Body,
			Bullets: s.Bullets,
		})
	}
	out.Quiz.Questions = make([]models.Question, 0, len(rl.Quiz.Questions))
	for _, q := range rl.Quiz.Questions {
		out.Quiz.Questions = append(out.Quiz.Questions, models.Question{
			Question:     q.Question,
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
			Explanation:  q.Explanation,
		})
	}
	return out
}
