package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"skillmuse/internal/models"
)

type QuizRepo struct {
	db *DB
}

func NewQuizRepo(db *DB) *QuizRepo {
	return &QuizRepo{db: db}
}

func (r *QuizRepo) CreateQuizResult(ctx context.Context, res models.QuizResult) (models.QuizResult, error) {
	answers, err := json.Marshal(res.Answers)
	if err != nil {
		return models.QuizResult{}, fmt.Errorf("marshal answers: %w", err)
	}
	err = r.db.Pool.QueryRow(ctx, `
INSERT INTO quiz_results (id, lesson_id, user_id, score, answers_json)
VALUES ($1, $2, $3, $4, $5)
RETURNING created_at`,
		res.ID, res.LessonID, res.UserID, res.Score, answers).
		Scan(&res.CreatedAt)
	if err != nil {
		return models.QuizResult{}, fmt.Errorf("insert quiz result: %w", err)
	}
	return res, nil
}

func (r *QuizRepo) ListQuizResults(ctx context.Context, userID, lessonID string) ([]models.QuizResult, error) {
	rows, err := r.db.Pool.Query(ctx, `
SELECT id::text, lesson_id::text, user_id, score, answers_json, created_at
FROM quiz_results
WHERE user_id=$1 AND lesson_id=$2
ORDER BY created_at DESC`, userID, lessonID)
	if err != nil {
		return nil, fmt.Errorf("list quiz results: %w", err)
	}
	defer rows.Close()

	out := make([]models.QuizResult, 0)
	for rows.Next() {
		var res models.QuizResult
		var answers []byte
		if err := rows.Scan(&res.ID, &res.LessonID, &res.UserID, &res.Score, &answers, &res.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan quiz result: %w", err)
		}
		if err := json.Unmarshal(answers, &res.Answers); err != nil {
			return nil, fmt.Errorf("decode answers: %w", err)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quiz results: %w", err)
	}
	return out, nil
}
