package providers

import "context"

// MockProvider returns a deterministic lesson body in the model's snake_case
// wire shape, so keyless deployments exercise the full parse and
// normalization path without any network call.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) Chat(ctx context.Context, req ChatRequest) (ChatResponse, ProviderInfo, error) {
	_ = ctx
	_ = req
	return ChatResponse{Text: mockLessonJSON}, ProviderInfo{Name: "mock", Model: "mock-llm-v1"}, nil
}

const mockLessonJSON = `{
  "skill_name": "Sample Skill",
  "short_description": "This is a sample lesson generated in mock mode. OpenAI API key is missing or the API call failed.",
  "learning_outcomes": [
    "Understand the sample flow",
    "Learn basic concepts",
    "Apply knowledge in practice"
  ],
  "summary": {
    "main_points": [
      "Point 1: This is a demonstration point",
      "Point 2: Another key concept to understand",
      "Point 3: Practical application of the skill",
      "Point 4: Best practices and tips",
      "Point 5: Common mistakes to avoid"
    ]
  },
  "visual": {
    "slides": [
      {
        "title": "Introduction to Sample Skill",
        "body": "This is a demo slide body explaining the basics of the skill.",
        "bullets": [
          "Bullet A: Key concept one",
          "Bullet B: Key concept two",
          "Bullet C: Key concept three"
        ]
      },
      {
        "title": "Advanced Concepts",
        "body": "This slide covers more advanced topics and techniques.",
        "bullets": [
          "Advanced technique A",
          "Advanced technique B"
        ]
      },
      {
        "title": "Practical Examples",
        "body": "Real-world examples and use cases for this skill.",
        "bullets": [
          "Example scenario 1",
          "Example scenario 2"
        ]
      }
    ]
  },
  "quiz": {
    "questions": [
      {
        "question": "What is the main purpose of this sample lesson?",
        "options": [
          "To demonstrate the flow",
          "To test the system",
          "To provide real content",
          "To show errors"
        ],
        "correct_index": 0,
        "explanation": "This is a mock lesson to verify the system works end-to-end."
      },
      {
        "question": "How many learning outcomes are in this mock lesson?",
        "options": ["One", "Two", "Three", "Four"],
        "correct_index": 2,
        "explanation": "The mock lesson contains three learning outcomes."
      },
      {
        "question": "What should you do if the AI provider is unavailable?",
        "options": [
          "Crash the application",
          "Use mock data",
          "Show an error page",
          "Skip lesson generation"
        ],
        "correct_index": 1,
        "explanation": "The system should fall back to mock data when the provider is unavailable."
      }
    ]
  }
}`
