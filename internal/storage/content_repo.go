package storage

import (
	"context"
	"fmt"

	"skillmuse/internal/models"
)

type ContentRepo struct {
	db *DB
}

func NewContentRepo(db *DB) *ContentRepo {
	return &ContentRepo{db: db}
}

func (r *ContentRepo) CreateContent(ctx context.Context, c models.SkillContent) (models.SkillContent, error) {
	err := r.db.Pool.QueryRow(ctx, `
INSERT INTO skill_content (id, skill_id, content_type, source_value, extracted_text, created_by_user_id)
VALUES ($1, $2, $3, $4, NULLIF($5,''), $6)
RETURNING created_at`,
		c.ID, c.SkillID, string(c.ContentType), c.SourceValue, c.ExtractedText, c.CreatedByUserID).
		Scan(&c.CreatedAt)
	if err != nil {
		return models.SkillContent{}, fmt.Errorf("insert skill content: %w", err)
	}
	return c, nil
}

func (r *ContentRepo) ListContentBySkill(ctx context.Context, userID, skillID string) ([]models.SkillContent, error) {
	rows, err := r.db.Pool.Query(ctx, `
SELECT id::text, skill_id::text, content_type, source_value, COALESCE(extracted_text,''), created_by_user_id, created_at
FROM skill_content
WHERE created_by_user_id=$1 AND skill_id=$2
ORDER BY created_at DESC`, userID, skillID)
	if err != nil {
		return nil, fmt.Errorf("list skill content: %w", err)
	}
	defer rows.Close()

	out := make([]models.SkillContent, 0)
	for rows.Next() {
		var c models.SkillContent
		var contentType string
		if err := rows.Scan(&c.ID, &c.SkillID, &contentType, &c.SourceValue, &c.ExtractedText, &c.CreatedByUserID, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan skill content: %w", err)
		}
		c.ContentType = models.ContentType(contentType)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate skill content: %w", err)
	}
	return out, nil
}
