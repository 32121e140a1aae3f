package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"skillmuse/internal/models"
)

type SkillLessonRepo struct {
	db *DB
}

func NewSkillLessonRepo(db *DB) *SkillLessonRepo {
	return &SkillLessonRepo{db: db}
}

func (r *SkillLessonRepo) CreateSkillLesson(ctx context.Context, l models.SkillLesson) (models.SkillLesson, error) {
	data, err := json.Marshal(l.LessonData)
	if err != nil {
		return models.SkillLesson{}, fmt.Errorf("marshal lesson data: %w", err)
	}
	err = r.db.Pool.QueryRow(ctx, `
INSERT INTO skill_lessons (id, skill_id, content_id, title, short_description, learning_outcomes, lesson_data, created_by_user_id)
VALUES ($1, $2, NULLIF($3,'')::uuid, $4, NULLIF($5,''), $6, $7, $8)
RETURNING created_at`,
		l.ID, l.SkillID, l.ContentID, l.Title, l.ShortDescription, l.LearningOutcomes, data, l.CreatedByUserID).
		Scan(&l.CreatedAt)
	if err != nil {
		return models.SkillLesson{}, fmt.Errorf("insert skill lesson: %w", err)
	}
	return l, nil
}

func (r *SkillLessonRepo) ListSkillLessons(ctx context.Context, userID, skillID string) ([]models.SkillLesson, error) {
	rows, err := r.db.Pool.Query(ctx, `
SELECT id::text, skill_id::text, COALESCE(content_id::text,''), title, COALESCE(short_description,''),
       learning_outcomes, lesson_data, created_by_user_id, created_at
FROM skill_lessons
WHERE created_by_user_id=$1 AND skill_id=$2
ORDER BY created_at DESC`, userID, skillID)
	if err != nil {
		return nil, fmt.Errorf("list skill lessons: %w", err)
	}
	defer rows.Close()

	out := make([]models.SkillLesson, 0)
	for rows.Next() {
		l, err := scanSkillLesson(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate skill lessons: %w", err)
	}
	return out, nil
}

func (r *SkillLessonRepo) GetSkillLesson(ctx context.Context, userID, skillID, id string) (models.SkillLesson, error) {
	row := r.db.Pool.QueryRow(ctx, `
SELECT id::text, skill_id::text, COALESCE(content_id::text,''), title, COALESCE(short_description,''),
       learning_outcomes, lesson_data, created_by_user_id, created_at
FROM skill_lessons
WHERE created_by_user_id=$1 AND skill_id=$2 AND id=$3`, userID, skillID, id)
	l, err := scanSkillLesson(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.SkillLesson{}, ErrNotFound
		}
		return models.SkillLesson{}, err
	}
	return l, nil
}

func scanSkillLesson(row pgx.Row) (models.SkillLesson, error) {
	var l models.SkillLesson
	var data []byte
	if err := row.Scan(&l.ID, &l.SkillID, &l.ContentID, &l.Title, &l.ShortDescription, &l.LearningOutcomes, &data, &l.CreatedByUserID, &l.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.SkillLesson{}, err
		}
		return models.SkillLesson{}, fmt.Errorf("scan skill lesson: %w", err)
	}
	if err := json.Unmarshal(data, &l.LessonData); err != nil {
		return models.SkillLesson{}, fmt.Errorf("decode lesson data: %w", err)
	}
	return l, nil
}
