package lesson

import "strings"

// systemPrompt instructs the model to return the strict lesson JSON shape.
// The model replies in snake_case; normalization to the application shape
// happens in normalizePayload and nowhere else.
const systemPrompt = `You are an AI learning designer for a product called SkillMuse.
Your job is to read learning content and convert it into a structured skill-based visual learning lesson.

Follow these rules:
- If a skill name/goal is provided, use it. Otherwise, infer the skill from the content.
- Create a skill_name that is clear and descriptive.
- Create a short_description (1-2 sentences).
- Generate 2-4 learning_outcomes that describe what the learner will achieve (e.g., "Understand HVAC safety basics", "Explain three core AI concepts").
- Identify 5-8 main_points in the summary.
- Create 5-7 slides. Each slide must have:
    - title (max 7 words)
    - body (1-2 sentences)
    - bullets (max 3 bullet points)
- Create 3-5 multiple-choice quiz questions.
- Each question must have:
    - question (the question text)
    - options (array of 4 strings)
    - correct_index (0-3)
    - explanation (one short sentence)
- All output must be valid JSON ONLY. No commentary.

Return JSON in this exact format:

{
  "skill_name": "string",
  "short_description": "string",
  "learning_outcomes": ["string"],
  "summary": {
    "main_points": ["string"]
  },
  "visual": {
    "slides": [
      {
        "title": "string",
        "body": "string",
        "bullets": ["string"]
      }
    ]
  },
  "quiz": {
    "questions": [
      {
        "question": "string",
        "options": ["string","string","string","string"],
        "correct_index": 0,
        "explanation": "string"
      }
    ]
  }
}`

const fixJSONPrompt = "Fix your JSON. Output valid JSON only."

func buildUserPrompt(content, goal string, maxChars int) string {
	content = truncate(content, maxChars)
	if strings.TrimSpace(goal) != "" {
		return "Skill Goal: " + strings.TrimSpace(goal) + "\n\nLearning content:\n\n" + content
	}
	return "Learning content:\n\n" + content
}

// truncate caps s at max characters on a rune boundary.
func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}
