package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"skillmuse/internal/models"
)

// LessonRepo stores the legacy flat lessons that are not linked to a skill.
type LessonRepo struct {
	db *DB
}

func NewLessonRepo(db *DB) *LessonRepo {
	return &LessonRepo{db: db}
}

func (r *LessonRepo) CreateLesson(ctx context.Context, l models.Lesson) (models.Lesson, error) {
	summary, err := json.Marshal(l.Summary)
	if err != nil {
		return models.Lesson{}, fmt.Errorf("marshal summary: %w", err)
	}
	visual, err := json.Marshal(l.Visual)
	if err != nil {
		return models.Lesson{}, fmt.Errorf("marshal visual: %w", err)
	}
	quiz, err := json.Marshal(l.Quiz)
	if err != nil {
		return models.Lesson{}, fmt.Errorf("marshal quiz: %w", err)
	}
	err = r.db.Pool.QueryRow(ctx, `
INSERT INTO lessons (id, user_id, title, short_description, source_type, source_value, summary_json, visual_json, quiz_json, difficulty)
VALUES ($1, $2, $3, NULLIF($4,''), $5, $6, $7, $8, $9, NULLIF($10,''))
RETURNING created_at`,
		l.ID, l.UserID, l.Title, l.ShortDescription, l.SourceType, l.SourceValue, summary, visual, quiz, string(l.Difficulty)).
		Scan(&l.CreatedAt)
	if err != nil {
		return models.Lesson{}, fmt.Errorf("insert lesson: %w", err)
	}
	return l, nil
}

func (r *LessonRepo) ListLessons(ctx context.Context, userID string) ([]models.Lesson, error) {
	rows, err := r.db.Pool.Query(ctx, `
SELECT id::text, user_id, title, COALESCE(short_description,''), source_type, source_value,
       summary_json, visual_json, quiz_json, COALESCE(difficulty,''), created_at
FROM lessons
WHERE user_id=$1
ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	defer rows.Close()

	out := make([]models.Lesson, 0)
	for rows.Next() {
		l, err := scanLesson(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lessons: %w", err)
	}
	return out, nil
}

func (r *LessonRepo) GetLesson(ctx context.Context, userID, id string) (models.Lesson, error) {
	row := r.db.Pool.QueryRow(ctx, `
SELECT id::text, user_id, title, COALESCE(short_description,''), source_type, source_value,
       summary_json, visual_json, quiz_json, COALESCE(difficulty,''), created_at
FROM lessons
WHERE user_id=$1 AND id=$2`, userID, id)
	l, err := scanLesson(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Lesson{}, ErrNotFound
		}
		return models.Lesson{}, err
	}
	return l, nil
}

func scanLesson(row pgx.Row) (models.Lesson, error) {
	var l models.Lesson
	var difficulty string
	var summary, visual, quiz []byte
	if err := row.Scan(&l.ID, &l.UserID, &l.Title, &l.ShortDescription, &l.SourceType, &l.SourceValue, &summary, &visual, &quiz, &difficulty, &l.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Lesson{}, err
		}
		return models.Lesson{}, fmt.Errorf("scan lesson: %w", err)
	}
	if err := json.Unmarshal(summary, &l.Summary); err != nil {
		return models.Lesson{}, fmt.Errorf("decode summary: %w", err)
	}
	if err := json.Unmarshal(visual, &l.Visual); err != nil {
		return models.Lesson{}, fmt.Errorf("decode visual: %w", err)
	}
	if err := json.Unmarshal(quiz, &l.Quiz); err != nil {
		return models.Lesson{}, fmt.Errorf("decode quiz: %w", err)
	}
	l.Difficulty = models.Difficulty(difficulty)
	return l, nil
}
