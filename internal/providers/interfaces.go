package providers

import "context"

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Operation string    `json:"operation"`
	Messages  []Message `json:"messages"`
	JSONMode  bool      `json:"json_mode"`
	MaxTokens int       `json:"max_tokens"`
}

type ChatResponse struct {
	Text string `json:"text"`
}

type ProviderInfo struct {
	Name  string `json:"name"`
	Model string `json:"model"`
}

// ChatProvider is a chat-completion backend. Implementations must be safe for
// concurrent use.
type ChatProvider interface {
	Chat(ctx context.Context, req ChatRequest) (ChatResponse, ProviderInfo, error)
}
