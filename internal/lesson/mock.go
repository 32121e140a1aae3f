package lesson

import "skillmuse/internal/models"

// MockPayload is the deterministic fallback lesson. Its shape matches the mock
// provider's canned reply exactly, so callers see the same lesson whether the
// provider was never configured or a real call failed.
func MockPayload(goal string) models.LessonPayload {
	skillName := "Sample Skill"
	if goal != "" {
		skillName = goal
	}
	return models.LessonPayload{
		SkillName:        skillName,
		ShortDescription: "This is a sample lesson generated in mock mode. OpenAI API key is missing or the API call failed.",
		LearningOutcomes: []string{
			"Understand the sample flow",
			"Learn basic concepts",
			"Apply knowledge in practice",
		},
		Summary: models.Summary{
			MainPoints: []string{
				"Point 1: This is a demonstration point",
				"Point 2: Another key concept to understand",
				"Point 3: Practical application of the skill",
				"Point 4: Best practices and tips",
				"Point 5: Common mistakes to avoid",
			},
		},
		Visual: models.Visual{
			Slides: []models.Slide{
				{
					Title: "Introduction to Sample Skill",
					Body:  "This is a demo slide body explaining the basics of the skill.",
					Bullets: []string{
						"Bullet A: Key concept one",
						"Bullet B: Key concept two",
						"Bullet C: Key concept three",
					},
				},
				{
					Title: "Advanced Concepts",
					Body:  "This slide covers more advanced topics and techniques.",
					Bullets: []string{
						"Advanced technique A",
						"Advanced technique B",
					},
				},
				{
					Title: "Practical Examples",
					Body:  "Real-world examples and use cases for this skill.",
					Bullets: []string{
						"Example scenario 1",
						"Example scenario 2",
					},
				},
			},
		},
		Quiz: models.Quiz{
			Questions: []models.Question{
				{
					Question: "What is the main purpose of this sample lesson?",
					Options: []string{
						"To demonstrate the flow",
						"To test the system",
						"To provide real content",
						"To show errors",
					},
					CorrectIndex: 0,
					Explanation:  "This is a mock lesson to verify the system works end-to-end.",
				},
				{
					Question:     "How many learning outcomes are in this mock lesson?",
					Options:      []string{"One", "Two", "Three", "Four"},
					CorrectIndex: 2,
					Explanation:  "The mock lesson contains three learning outcomes.",
				},
				{
					Question: "What should you do if the AI provider is unavailable?",
					Options: []string{
						"Crash the application",
						"Use mock data",
						"Show an error page",
						"Skip lesson generation",
					},
					CorrectIndex: 1,
					Explanation:  "The system should fall back to mock data when the provider is unavailable.",
				},
			},
		},
	}
}
