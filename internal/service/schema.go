package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/marcelofalero/swse-architech/internal/domain"
)

// SchemaValidator checks resource data payloads against the JSON Schema
// registered for their resource type. Compiled schemas are cached per
// type; the cache is invalidated when a type is registered or replaced.
type SchemaValidator struct {
	types domain.ResourceTypeRepository
	cache sync.Map // type name -> *jsonschema.Schema
}

func NewSchemaValidator(types domain.ResourceTypeRepository) *SchemaValidator {
	return &SchemaValidator{types: types}
}

// Validate checks data against the schema for resourceType. An unknown
// type and a non-conforming payload are both validation errors.
func (v *SchemaValidator) Validate(ctx context.Context, resourceType string, data map[string]interface{}) error {
	schema, err := v.schemaFor(ctx, resourceType)
	if err != nil {
		return err
	}
	if err := schema.Validate(data); err != nil {
		return domain.ErrValidation("data does not match %s schema: %v", resourceType, err)
	}
	return nil
}

// Invalidate drops the compiled schema for a type.
func (v *SchemaValidator) Invalidate(resourceType string) {
	v.cache.Delete(resourceType)
}

func (v *SchemaValidator) schemaFor(ctx context.Context, resourceType string) (*jsonschema.Schema, error) {
	if cached, ok := v.cache.Load(resourceType); ok {
		return cached.(*jsonschema.Schema), nil
	}

	t, err := v.types.GetByName(ctx, resourceType)
	if errors.As(err, new(*domain.NotFoundError)) {
		return nil, domain.ErrValidation("unknown resource type: %s", resourceType)
	}
	if err != nil {
		return nil, err
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", strings.NewReader(string(t.Schema))); err != nil {
		return nil, domain.ErrValidation("invalid schema for type %s: %v", resourceType, err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, domain.ErrValidation("invalid schema for type %s: %v", resourceType, err)
	}

	v.cache.Store(resourceType, schema)
	return schema, nil
}
