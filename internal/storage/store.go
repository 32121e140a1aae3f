// Package storage persists SkillMuse entities. Handlers depend on the
// interfaces here, so the relational implementation and the in-memory demo
// implementation are interchangeable without touching route logic.
package storage

import (
	"context"
	"errors"

	"skillmuse/internal/models"
)

// ErrNotFound is returned for owner-scoped lookups that match no row.
var ErrNotFound = errors.New("not found")

type SkillStore interface {
	CreateSkill(ctx context.Context, s models.Skill) (models.Skill, error)
	ListSkills(ctx context.Context, userID string) ([]models.Skill, error)
	GetSkill(ctx context.Context, userID, id string) (models.Skill, error)
	DeleteSkill(ctx context.Context, userID, id string) error
}

type ContentStore interface {
	CreateContent(ctx context.Context, c models.SkillContent) (models.SkillContent, error)
	ListContentBySkill(ctx context.Context, userID, skillID string) ([]models.SkillContent, error)
}

type SkillLessonStore interface {
	CreateSkillLesson(ctx context.Context, l models.SkillLesson) (models.SkillLesson, error)
	ListSkillLessons(ctx context.Context, userID, skillID string) ([]models.SkillLesson, error)
	GetSkillLesson(ctx context.Context, userID, skillID, id string) (models.SkillLesson, error)
}

type LessonStore interface {
	CreateLesson(ctx context.Context, l models.Lesson) (models.Lesson, error)
	ListLessons(ctx context.Context, userID string) ([]models.Lesson, error)
	GetLesson(ctx context.Context, userID, id string) (models.Lesson, error)
}

type QuizStore interface {
	CreateQuizResult(ctx context.Context, r models.QuizResult) (models.QuizResult, error)
	ListQuizResults(ctx context.Context, userID, lessonID string) ([]models.QuizResult, error)
}

type GroupStore interface {
	CreateGroup(ctx context.Context, g models.Group) (models.Group, error)
	ListGroups(ctx context.Context, userID string) ([]models.Group, error)
	AddGroupMember(ctx context.Context, m models.GroupMember) error
}

type ProgressStore interface {
	UpsertProgress(ctx context.Context, p models.Progress) (models.Progress, error)
}

type AuditStore interface {
	InsertLLMCall(ctx context.Context, rec LLMCallRecord) error
}

// Store bundles one implementation of every repository.
type Store struct {
	Skills       SkillStore
	Content      ContentStore
	SkillLessons SkillLessonStore
	Lessons      LessonStore
	Quiz         QuizStore
	Groups       GroupStore
	Progress     ProgressStore
	Audit        AuditStore
}

func NewPostgresStore(db *DB) *Store {
	return &Store{
		Skills:       NewSkillRepo(db),
		Content:      NewContentRepo(db),
		SkillLessons: NewSkillLessonRepo(db),
		Lessons:      NewLessonRepo(db),
		Quiz:         NewQuizRepo(db),
		Groups:       NewGroupRepo(db),
		Progress:     NewProgressRepo(db),
		Audit:        NewLLMAuditRepo(db),
	}
}

func NewMemoryStore() *Store {
	m := newMemory()
	return &Store{
		Skills:       m,
		Content:      m,
		SkillLessons: m,
		Lessons:      m,
		Quiz:         m,
		Groups:       m,
		Progress:     m,
		Audit:        m,
	}
}
