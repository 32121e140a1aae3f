package storage

import (
	"context"
	"fmt"

	"skillmuse/internal/models"
)

type ProgressRepo struct {
	db *DB
}

func NewProgressRepo(db *DB) *ProgressRepo {
	return &ProgressRepo{db: db}
}

func (r *ProgressRepo) UpsertProgress(ctx context.Context, p models.Progress) (models.Progress, error) {
	err := r.db.Pool.QueryRow(ctx, `
INSERT INTO progress (user_id, skill_id, lesson_id, quiz_score, completed, completed_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, now())
ON CONFLICT (user_id, lesson_id)
DO UPDATE SET
  skill_id = EXCLUDED.skill_id,
  quiz_score = COALESCE(EXCLUDED.quiz_score, progress.quiz_score),
  completed = EXCLUDED.completed,
  completed_at = COALESCE(EXCLUDED.completed_at, progress.completed_at),
  updated_at = now()
RETURNING quiz_score, completed, completed_at, updated_at`,
		p.UserID, p.SkillID, p.LessonID, p.QuizScore, p.Completed, p.CompletedAt).
		Scan(&p.QuizScore, &p.Completed, &p.CompletedAt, &p.UpdatedAt)
	if err != nil {
		return models.Progress{}, fmt.Errorf("upsert progress: %w", err)
	}
	return p, nil
}
