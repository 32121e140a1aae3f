package models

import "time"

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

type ContentType string

const (
	ContentTypeURL     ContentType = "url"
	ContentTypeText    ContentType = "text"
	ContentTypeNotes   ContentType = "notes"
	ContentTypeYouTube ContentType = "youtube"
	ContentTypePDF     ContentType = "pdf"
)

func (c ContentType) Valid() bool {
	switch c {
	case ContentTypeURL, ContentTypeText, ContentTypeNotes, ContentTypeYouTube, ContentTypePDF:
		return true
	}
	return false
}

type Skill struct {
	ID               string     `json:"id"`
	SkillName        string     `json:"skill_name"`
	Description      string     `json:"description,omitempty"`
	Difficulty       Difficulty `json:"difficulty_level"`
	LearningOutcomes []string   `json:"learning_outcomes"`
	CreatedByUserID  string     `json:"created_by_user_id"`
	CreatedAt        time.Time  `json:"created_at"`
}

type SkillContent struct {
	ID              string      `json:"id"`
	SkillID         string      `json:"skill_id"`
	ContentType     ContentType `json:"content_type"`
	SourceValue     string      `json:"source_value"`
	ExtractedText   string      `json:"extracted_text,omitempty"`
	CreatedByUserID string      `json:"created_by_user_id"`
	CreatedAt       time.Time   `json:"created_at"`
}

type SkillLesson struct {
	ID               string        `json:"id"`
	SkillID          string        `json:"skill_id"`
	ContentID        string        `json:"content_id,omitempty"`
	Title            string        `json:"title"`
	ShortDescription string        `json:"short_description"`
	LearningOutcomes []string      `json:"learning_outcomes"`
	LessonData       LessonPayload `json:"lesson_data"`
	CreatedByUserID  string        `json:"created_by_user_id"`
	CreatedAt        time.Time     `json:"created_at"`
}

// Lesson is the legacy flat variant with no skill linkage.
type Lesson struct {
	ID               string     `json:"id"`
	UserID           string     `json:"user_id"`
	Title            string     `json:"title"`
	ShortDescription string     `json:"short_description"`
	SourceType       string     `json:"source_type"`
	SourceValue      string     `json:"source_value"`
	Summary          Summary    `json:"summary_json"`
	Visual           Visual     `json:"visual_json"`
	Quiz             Quiz       `json:"quiz_json"`
	Difficulty       Difficulty `json:"difficulty,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

type QuizResult struct {
	ID        string    `json:"id"`
	LessonID  string    `json:"lesson_id"`
	UserID    string    `json:"user_id"`
	Score     int       `json:"score"`
	Answers   []int     `json:"answers_json"`
	CreatedAt time.Time `json:"created_at"`
}

type Group struct {
	ID              string    `json:"id"`
	GroupName       string    `json:"group_name"`
	Description     string    `json:"description,omitempty"`
	CreatedByUserID string    `json:"created_by_user_id"`
	CreatedAt       time.Time `json:"created_at"`
}

type GroupMember struct {
	GroupID   string    `json:"group_id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type Progress struct {
	UserID      string     `json:"user_id"`
	SkillID     string     `json:"skill_id"`
	LessonID    string     `json:"lesson_id,omitempty"`
	QuizScore   *int       `json:"quiz_score,omitempty"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
