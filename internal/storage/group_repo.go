package storage

import (
	"context"
	"fmt"

	"skillmuse/internal/models"
)

type GroupRepo struct {
	db *DB
}

func NewGroupRepo(db *DB) *GroupRepo {
	return &GroupRepo{db: db}
}

func (r *GroupRepo) CreateGroup(ctx context.Context, g models.Group) (models.Group, error) {
	err := r.db.Pool.QueryRow(ctx, `
INSERT INTO groups (id, group_name, description, created_by_user_id)
VALUES ($1, $2, NULLIF($3,''), $4)
RETURNING created_at`,
		g.ID, g.GroupName, g.Description, g.CreatedByUserID).
		Scan(&g.CreatedAt)
	if err != nil {
		return models.Group{}, fmt.Errorf("insert group: %w", err)
	}
	return g, nil
}

func (r *GroupRepo) ListGroups(ctx context.Context, userID string) ([]models.Group, error) {
	rows, err := r.db.Pool.Query(ctx, `
SELECT DISTINCT g.id::text, g.group_name, COALESCE(g.description,''), g.created_by_user_id, g.created_at
FROM groups g
LEFT JOIN group_members m ON m.group_id = g.id
WHERE g.created_by_user_id=$1 OR m.user_id=$1
ORDER BY g.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()

	out := make([]models.Group, 0)
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.GroupName, &g.Description, &g.CreatedByUserID, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate groups: %w", err)
	}
	return out, nil
}

func (r *GroupRepo) AddGroupMember(ctx context.Context, m models.GroupMember) error {
	_, err := r.db.Pool.Exec(ctx, `
INSERT INTO group_members (group_id, user_id, role)
VALUES ($1, $2, $3)
ON CONFLICT (group_id, user_id) DO UPDATE SET role = EXCLUDED.role`,
		m.GroupID, m.UserID, m.Role)
	if err != nil {
		return fmt.Errorf("insert group member: %w", err)
	}
	return nil
}
