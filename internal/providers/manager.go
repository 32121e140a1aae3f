package providers

import (
	"fmt"
	"strings"

	"skillmuse/internal/config"
)

type NamedProvider struct {
	Ref      ProviderRef
	Provider ChatProvider
}

// Manager holds the configured chat providers in preference order. Real
// providers whose credentials are absent are skipped at build time, so a
// keyless deployment resolves to the mock provider without ever dialing out.
type Manager struct {
	chatProviders []NamedProvider
}

func NewManager(cfg config.Config) (*Manager, error) {
	refs := ParseProviderList(cfg.LLMProviders)

	m := &Manager{}
	for _, ref := range refs {
		p, err := buildProvider(ref, cfg)
		if err != nil {
			return nil, err
		}
		if p == nil {
			continue // credentials missing
		}
		m.chatProviders = append(m.chatProviders, NamedProvider{Ref: ref, Provider: p})
	}
	if len(m.chatProviders) == 0 {
		m.chatProviders = []NamedProvider{{Ref: ProviderRef{Raw: "mock", Name: "mock"}, Provider: NewMockProvider()}}
	}
	return m, nil
}

// Primary returns the first usable provider, preferring real ones over mock.
func (m *Manager) Primary() (ChatProvider, ProviderRef) {
	for i := range m.chatProviders {
		if strings.ToLower(m.chatProviders[i].Ref.Name) != "mock" {
			return m.chatProviders[i].Provider, m.chatProviders[i].Ref
		}
	}
	return m.chatProviders[0].Provider, m.chatProviders[0].Ref
}

func (m *Manager) Count() int {
	return len(m.chatProviders)
}

func buildProvider(ref ProviderRef, cfg config.Config) (ChatProvider, error) {
	switch strings.ToLower(ref.Name) {
	case "mock":
		return NewMockProvider(), nil
	case "openai":
		if cfg.OpenAIKey == "" {
			return nil, nil
		}
		model := ref.Model
		if model == "" {
			model = cfg.OpenAIModel
		}
		return NewOpenAIProvider(cfg.OpenAIKey, model)
	case "groq":
		if cfg.GroqKey == "" {
			return nil, nil
		}
		model := ref.Model
		if model == "" {
			model = cfg.GroqModel
		}
		return NewGroqProvider(cfg.GroqKey, model)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", ref.Name)
	}
}
