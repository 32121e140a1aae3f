package lesson

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"skillmuse/internal/config"
	"skillmuse/internal/providers"
)

// scriptedProvider replays canned replies (or errors) in order.
type scriptedProvider struct {
	name    string
	replies []string
	errs    []error
	calls   int
}

func (p *scriptedProvider) Chat(_ context.Context, _ providers.ChatRequest) (providers.ChatResponse, providers.ProviderInfo, error) {
	i := p.calls
	p.calls++
	info := providers.ProviderInfo{Name: p.name, Model: "test-model"}
	if i < len(p.errs) && p.errs[i] != nil {
		return providers.ChatResponse{}, info, p.errs[i]
	}
	reply := ""
	if i < len(p.replies) {
		reply = p.replies[i]
	}
	return providers.ChatResponse{Text: reply}, info, nil
}

func testGenerator(p providers.ChatProvider, name string, audit AuditFunc) *Generator {
	return &Generator{
		provider:   p,
		ref:        providers.ProviderRef{Name: name},
		inputChars: 8000,
		maxTokens:  2000,
		audit:      audit,
		log:        zap.NewNop(),
	}
}

func TestGenerateViaMockProviderParsesFullPath(t *testing.T) {
	cfg := config.Config{LLMProviders: "mock", GenerateInputChars: 8000, GenerateMaxTokens: 2000}
	m, err := providers.NewManager(cfg)
	require.NoError(t, err)
	g := NewGenerator(cfg, m, nil, nil)

	res := g.Generate(context.Background(), "some extracted learning content", "Go Basics")
	require.Equal(t, "mock", res.Source)
	require.Equal(t, MockPayload("Go Basics"), res.Payload)
	require.Equal(t, "Go Basics", res.Payload.SkillName)
	require.Len(t, res.Payload.Summary.MainPoints, 5)
	require.Len(t, res.Payload.Visual.Slides, 3)
	require.Len(t, res.Payload.Quiz.Questions, 3)
}

func TestGenerateProviderErrorFallsBackToMock(t *testing.T) {
	var records []AuditRecord
	p := &scriptedProvider{name: "openai", errs: []error{errors.New("insufficient_quota")}}
	g := testGenerator(p, "openai", func(_ context.Context, rec AuditRecord) {
		records = append(records, rec)
	})

	res := g.Generate(context.Background(), "content", "My Goal")
	require.Equal(t, "mock", res.Source)
	require.Equal(t, "My Goal", res.Payload.SkillName)
	require.Equal(t, MockPayload("My Goal"), res.Payload)

	require.Len(t, records, 1)
	require.Equal(t, "failed", records[0].Status)
	require.Equal(t, providers.ErrorQuota, records[0].ErrorType)
}

func TestGenerateRetriesOnceOnBadJSON(t *testing.T) {
	good := `{
		"skill_name": "Retry Skill",
		"short_description": "desc",
		"learning_outcomes": ["a"],
		"summary": {"main_points": ["p1"]},
		"visual": {"slides": [{"title": "t", "body": "b", "bullets": ["x"]}]},
		"quiz": {"questions": [{"question": "q", "options": ["1","2","3","4"], "correct_index": 3, "explanation": "e"}]}
	}`
	p := &scriptedProvider{name: "openai", replies: []string{"not json at all", good}}
	g := testGenerator(p, "openai", nil)

	res := g.Generate(context.Background(), "content", "")
	require.Equal(t, 2, p.calls)
	require.Equal(t, "openai", res.Source)
	require.Equal(t, "Retry Skill", res.Payload.SkillName)
	require.Equal(t, 3, res.Payload.Quiz.Questions[0].CorrectIndex)
}

func TestGenerateBadJSONTwiceFallsBackToMock(t *testing.T) {
	var records []AuditRecord
	p := &scriptedProvider{name: "openai", replies: []string{"{broken", "{still broken"}}
	g := testGenerator(p, "openai", func(_ context.Context, rec AuditRecord) {
		records = append(records, rec)
	})

	res := g.Generate(context.Background(), "content", "Fallback Goal")
	require.Equal(t, 2, p.calls)
	require.Equal(t, "mock", res.Source)
	require.Equal(t, MockPayload("Fallback Goal"), res.Payload)

	require.Len(t, records, 1)
	require.Equal(t, "invalid", records[0].Status)
	require.Equal(t, providers.ErrorMalformed, records[0].ErrorType)
}

func TestGenerateStripsCodeFence(t *testing.T) {
	fenced := "```json\n{" +
		`"skill_name": "Fenced", "short_description": "d", "learning_outcomes": [],` +
		`"summary": {"main_points": []}, "visual": {"slides": []}, "quiz": {"questions": []}` +
		"}\n```"
	p := &scriptedProvider{name: "openai", replies: []string{fenced}}
	g := testGenerator(p, "openai", nil)

	res := g.Generate(context.Background(), "content", "")
	require.Equal(t, "openai", res.Source)
	require.Equal(t, "Fenced", res.Payload.SkillName)
	require.NotNil(t, res.Payload.LearningOutcomes)
	require.NotNil(t, res.Payload.Visual.Slides)
}

func TestGenerateMissingSectionsRejectedBySchema(t *testing.T) {
	// Valid JSON but missing quiz: schema failure on both attempts.
	partial := `{"skill_name": "X", "short_description": "d", "learning_outcomes": [], "summary": {"main_points": []}, "visual": {"slides": []}}`
	p := &scriptedProvider{name: "openai", replies: []string{partial, partial}}
	g := testGenerator(p, "openai", nil)

	res := g.Generate(context.Background(), "content", "")
	require.Equal(t, "mock", res.Source)
}
