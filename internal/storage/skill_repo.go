package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"skillmuse/internal/models"
)

type SkillRepo struct {
	db *DB
}

func NewSkillRepo(db *DB) *SkillRepo {
	return &SkillRepo{db: db}
}

func (r *SkillRepo) CreateSkill(ctx context.Context, s models.Skill) (models.Skill, error) {
	err := r.db.Pool.QueryRow(ctx, `
INSERT INTO skills (id, skill_name, description, difficulty_level, learning_outcomes, created_by_user_id)
VALUES ($1, $2, NULLIF($3,''), $4, $5, $6)
RETURNING created_at`,
		s.ID, s.SkillName, s.Description, string(s.Difficulty), s.LearningOutcomes, s.CreatedByUserID).
		Scan(&s.CreatedAt)
	if err != nil {
		return models.Skill{}, fmt.Errorf("insert skill: %w", err)
	}
	return s, nil
}

func (r *SkillRepo) ListSkills(ctx context.Context, userID string) ([]models.Skill, error) {
	rows, err := r.db.Pool.Query(ctx, `
SELECT id::text, skill_name, COALESCE(description,''), difficulty_level, learning_outcomes, created_by_user_id, created_at
FROM skills
WHERE created_by_user_id=$1
ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	defer rows.Close()

	out := make([]models.Skill, 0)
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate skills: %w", err)
	}
	return out, nil
}

func (r *SkillRepo) GetSkill(ctx context.Context, userID, id string) (models.Skill, error) {
	row := r.db.Pool.QueryRow(ctx, `
SELECT id::text, skill_name, COALESCE(description,''), difficulty_level, learning_outcomes, created_by_user_id, created_at
FROM skills
WHERE created_by_user_id=$1 AND id=$2`, userID, id)
	s, err := scanSkill(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Skill{}, ErrNotFound
		}
		return models.Skill{}, err
	}
	return s, nil
}

func (r *SkillRepo) DeleteSkill(ctx context.Context, userID, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM skills WHERE created_by_user_id=$1 AND id=$2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete skill: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanSkill(row pgx.Row) (models.Skill, error) {
	var s models.Skill
	var difficulty string
	if err := row.Scan(&s.ID, &s.SkillName, &s.Description, &difficulty, &s.LearningOutcomes, &s.CreatedByUserID, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Skill{}, err
		}
		return models.Skill{}, fmt.Errorf("scan skill: %w", err)
	}
	s.Difficulty = models.Difficulty(difficulty)
	return s, nil
}
