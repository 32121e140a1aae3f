package models

// LessonPayload is the normalized AI-generated lesson. Field casing is camelCase
// on the wire; the generator maps the model's snake_case output exactly once, so
// every handler serves the same shape.
type LessonPayload struct {
	SkillName        string   `json:"skillName"`
	ShortDescription string   `json:"shortDescription"`
	LearningOutcomes []string `json:"learningOutcomes"`
	Summary          Summary  `json:"summary"`
	Visual           Visual   `json:"visual"`
	Quiz             Quiz     `json:"quiz"`
}

type Summary struct {
	MainPoints []string `json:"mainPoints"`
}

type Visual struct {
	Slides []Slide `json:"slides"`
}

type Slide struct {
	Title   string   `json:"title"`
	Body    string   `json:"body"`
	Bullets []string `json:"bullets,omitempty"`
}

type Quiz struct {
	Questions []Question `json:"questions"`
}

type Question struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation,omitempty"`
}
