package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/marcelofalero/swse-architech/internal/domain"
)

type GroupRepo struct {
	db *sql.DB
}

func NewGroupRepo(db *sql.DB) *GroupRepo {
	return &GroupRepo{db: db}
}

func (r *GroupRepo) Create(ctx context.Context, g *domain.Group) (*domain.Group, error) {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_groups (id, name, owner_id) VALUES (?, ?, ?)`,
		g.ID, g.Name, g.OwnerID)
	if err != nil {
		return nil, mapDBError(err)
	}
	return r.GetByID(ctx, g.ID)
}

func (r *GroupRepo) GetByID(ctx context.Context, id string) (*domain.Group, error) {
	var g domain.Group
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, owner_id, created_at FROM user_groups WHERE id = ?`, id).
		Scan(&g.ID, &g.Name, &g.OwnerID, &g.CreatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}
	return &g, nil
}

// AddMember is idempotent: adding an existing member is a no-op.
func (r *GroupRepo) AddMember(ctx context.Context, groupID, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO group_members (group_id, user_id) VALUES (?, ?)
		 ON CONFLICT (group_id, user_id) DO NOTHING`,
		groupID, userID)
	return mapDBError(err)
}

func (r *GroupRepo) RemoveMember(ctx context.Context, groupID, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM group_members WHERE group_id = ? AND user_id = ?`,
		groupID, userID)
	return mapDBError(err)
}

func (r *GroupRepo) ListMembers(ctx context.Context, groupID string) ([]domain.GroupMembership, error) {
	return r.listMemberships(ctx,
		`SELECT group_id, user_id FROM group_members WHERE group_id = ?`, groupID)
}

func (r *GroupRepo) ListMembershipsForUser(ctx context.Context, userID string) ([]domain.GroupMembership, error) {
	return r.listMemberships(ctx,
		`SELECT group_id, user_id FROM group_members WHERE user_id = ?`, userID)
}

func (r *GroupRepo) listMemberships(ctx context.Context, query, arg string) ([]domain.GroupMembership, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.GroupMembership
	for rows.Next() {
		var m domain.GroupMembership
		if err := rows.Scan(&m.GroupID, &m.UserID); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
