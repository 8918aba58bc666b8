package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/marcelofalero/swse-architech/internal/domain"
)

type GrantRepo struct {
	db *sql.DB
}

func NewGrantRepo(db *sql.DB) *GrantRepo {
	return &GrantRepo{db: db}
}

// Upsert writes a grant keyed by (target, grantee, granteeType),
// replacing the access level if the key already exists. The single
// statement keeps the write all-or-nothing.
func (r *GrantRepo) Upsert(ctx context.Context, g *domain.Grant) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO permissions (target_id, grantee_id, grantee_type, access_level)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (target_id, grantee_id, grantee_type)
		DO UPDATE SET access_level = excluded.access_level`,
		g.TargetID, g.GranteeID, g.GranteeType, g.AccessLevel)
	return mapDBError(err)
}

func (r *GrantRepo) ListForTarget(ctx context.Context, targetID string) ([]domain.Grant, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT target_id, grantee_id, grantee_type, access_level
		 FROM permissions WHERE target_id = ?`, targetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanGrants(rows)
}

// ListForTargets fetches grants for a batch of targets in one query,
// keyed by target ID. Targets without grants are absent from the map.
func (r *GrantRepo) ListForTargets(ctx context.Context, targetIDs []string) (map[string][]domain.Grant, error) {
	if len(targetIDs) == 0 {
		return map[string][]domain.Grant{}, nil
	}

	placeholders := strings.Repeat("?,", len(targetIDs))
	args := make([]interface{}, len(targetIDs))
	for i, id := range targetIDs {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT target_id, grantee_id, grantee_type, access_level
		 FROM permissions WHERE target_id IN (`+placeholders[:len(placeholders)-1]+`)`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	grants, err := scanGrants(rows)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]domain.Grant, len(targetIDs))
	for _, g := range grants {
		out[g.TargetID] = append(out[g.TargetID], g)
	}
	return out, nil
}

func scanGrants(rows *sql.Rows) ([]domain.Grant, error) {
	var out []domain.Grant
	for rows.Next() {
		var g domain.Grant
		if err := rows.Scan(&g.TargetID, &g.GranteeID, &g.GranteeType, &g.AccessLevel); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
