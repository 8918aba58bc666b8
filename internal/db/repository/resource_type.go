package repository

import (
	"context"
	"database/sql"

	"github.com/marcelofalero/swse-architech/internal/domain"
)

type ResourceTypeRepo struct {
	db *sql.DB
}

func NewResourceTypeRepo(db *sql.DB) *ResourceTypeRepo {
	return &ResourceTypeRepo{db: db}
}

func (r *ResourceTypeRepo) List(ctx context.Context) ([]domain.ResourceType, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, schema, created_at FROM resource_types ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ResourceType
	for rows.Next() {
		var t domain.ResourceType
		var schema string
		if err := rows.Scan(&t.Name, &schema, &t.CreatedAt); err != nil {
			return nil, err
		}
		t.Schema = []byte(schema)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *ResourceTypeRepo) GetByName(ctx context.Context, name string) (*domain.ResourceType, error) {
	var t domain.ResourceType
	var schema string
	err := r.db.QueryRowContext(ctx,
		`SELECT name, schema, created_at FROM resource_types WHERE name = ?`, name).
		Scan(&t.Name, &schema, &t.CreatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}
	t.Schema = []byte(schema)
	return &t, nil
}

func (r *ResourceTypeRepo) Create(ctx context.Context, t *domain.ResourceType) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO resource_types (name, schema) VALUES (?, ?)`,
		t.Name, string(t.Schema))
	return mapDBError(err)
}
