package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/marcelofalero/swse-architech/internal/domain"
)

type ResourceRepo struct {
	db *sql.DB
}

func NewResourceRepo(db *sql.DB) *ResourceRepo {
	return &ResourceRepo{db: db}
}

func (r *ResourceRepo) Create(ctx context.Context, res *domain.Resource) (*domain.Resource, error) {
	if res.ID == "" {
		res.ID = uuid.NewString()
	}
	data, err := json.Marshal(res.Data)
	if err != nil {
		return nil, err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO resources (id, owner_id, name, type, data, visibility) VALUES (?, ?, ?, ?, ?, ?)`,
		res.ID, res.OwnerID, res.Name, res.Type, string(data), res.Visibility)
	if err != nil {
		return nil, mapDBError(err)
	}
	return r.GetByID(ctx, res.ID)
}

func (r *ResourceRepo) GetByID(ctx context.Context, id string) (*domain.Resource, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, owner_id, name, type, data, visibility, created_at, updated_at
		 FROM resources WHERE id = ?`, id)
	return scanResource(row.Scan)
}

func (r *ResourceRepo) ListByType(ctx context.Context, resourceType string) ([]domain.Resource, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, owner_id, name, type, data, visibility, created_at, updated_at
		 FROM resources WHERE type = ? ORDER BY created_at, id`, resourceType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Resource
	for rows.Next() {
		res, err := scanResource(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}

func (r *ResourceRepo) Update(ctx context.Context, res *domain.Resource) error {
	data, err := json.Marshal(res.Data)
	if err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx,
		`UPDATE resources SET name = ?, data = ?, visibility = ?, updated_at = ? WHERE id = ?`,
		res.Name, string(data), res.Visibility, time.Now().Unix(), res.ID)
	if err != nil {
		return mapDBError(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound("resource %s not found", res.ID)
	}
	return nil
}

func (r *ResourceRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM resources WHERE id = ?`, id)
	if err != nil {
		return mapDBError(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound("resource %s not found", id)
	}
	return nil
}

func scanResource(scan func(dest ...interface{}) error) (*domain.Resource, error) {
	var res domain.Resource
	var data string
	err := scan(&res.ID, &res.OwnerID, &res.Name, &res.Type, &data,
		&res.Visibility, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}
	if err := json.Unmarshal([]byte(data), &res.Data); err != nil {
		return nil, err
	}
	return &res, nil
}
