package providers

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// OpenAIProvider serves chat completions through the OpenAI SDK. With a custom
// base URL it also covers Groq and other OpenAI-compatible APIs.
type OpenAIProvider struct {
	name   string
	client *openai.Client
	model  string
}

func NewOpenAIProvider(apiKey, model string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai API key is missing")
	}
	if model == "" {
		model = "gpt-4o"
	}
	return &OpenAIProvider{
		name:   "openai",
		client: openai.NewClient(apiKey),
		model:  model,
	}, nil
}

func NewGroqProvider(apiKey, model string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("groq API key is missing")
	}
	if model == "" {
		model = "llama-3.1-8b-instant"
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = groqBaseURL
	return &OpenAIProvider{
		name:   "groq",
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}, nil
}

func (p *OpenAIProvider) Chat(ctx context.Context, req ChatRequest) (ChatResponse, ProviderInfo, error) {
	info := ProviderInfo{Name: p.name, Model: p.model}

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}

	chatReq := openai.ChatCompletionRequest{
		Model:     p.model,
		Messages:  messages,
		MaxTokens: req.MaxTokens,
	}
	if req.JSONMode {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return ChatResponse{}, info, fmt.Errorf("%s chat completion failed: %w", p.name, err)
	}
	if len(resp.Choices) == 0 {
		return ChatResponse{}, info, fmt.Errorf("%s returned empty choices", p.name)
	}
	return ChatResponse{Text: resp.Choices[0].Message.Content}, info, nil
}
