package service

import (
	"context"
	"encoding/json"

	"github.com/marcelofalero/swse-architech/internal/domain"
)

// TypeService manages the resource-type registry.
type TypeService struct {
	types     domain.ResourceTypeRepository
	validator *SchemaValidator
}

func NewTypeService(types domain.ResourceTypeRepository, validator *SchemaValidator) *TypeService {
	return &TypeService{types: types, validator: validator}
}

func (s *TypeService) List(ctx context.Context) ([]domain.ResourceType, error) {
	return s.types.List(ctx)
}

func (s *TypeService) Get(ctx context.Context, name string) (*domain.ResourceType, error) {
	return s.types.GetByName(ctx, name)
}

// Create registers a resource type. The schema must at least be valid
// JSON; compilation problems surface on first use of the type.
func (s *TypeService) Create(ctx context.Context, actorID string, t *domain.ResourceType) error {
	if actorID == "" {
		return domain.ErrUnauthorized("authentication required")
	}
	if t.Name == "" {
		return domain.ErrValidation("type name is required")
	}
	if !json.Valid(t.Schema) {
		return domain.ErrValidation("schema must be valid JSON")
	}
	if err := s.types.Create(ctx, t); err != nil {
		return err
	}
	s.validator.Invalidate(t.Name)
	return nil
}

// DefaultTypes are the resource types seeded into an empty registry.
// Names are plural to match the REST paths.
var DefaultTypes = map[string]string{
	"ships":          `{"type": "object", "properties": {"configuration": {"type": "object"}, "manifest": {"type": "array"}}, "required": ["configuration", "manifest"]}`,
	"libraries":      `{"type": "object", "properties": {"components": {"type": "array"}, "ships": {"type": "array"}}}`,
	"hangars":        `{"type": "object", "properties": {"ships": {"type": "array"}}, "required": ["ships"]}`,
	"configurations": `{"type": "object"}`,
}

// SeedDefaults registers DefaultTypes when the registry is empty.
// Idempotent across restarts.
func (s *TypeService) SeedDefaults(ctx context.Context) error {
	existing, err := s.types.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for name, schema := range DefaultTypes {
		if err := s.types.Create(ctx, &domain.ResourceType{Name: name, Schema: []byte(schema)}); err != nil {
			return err
		}
	}
	return nil
}
