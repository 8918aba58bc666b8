package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcelofalero/swse-architech/internal/domain"
)

func TestSeedDefaultsIsIdempotent(t *testing.T) {
	env := newTestEnv(t) // already seeded once

	require.NoError(t, env.typeSvc.SeedDefaults(ctx))

	all, err := env.typeSvc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(DefaultTypes))
}

func TestCreateType(t *testing.T) {
	env := newTestEnv(t)

	var unauthorized *domain.UnauthorizedError
	var validation *domain.ValidationError
	var conflict *domain.ConflictError

	err := env.typeSvc.Create(ctx, "", &domain.ResourceType{Name: "droids", Schema: []byte(`{}`)})
	require.ErrorAs(t, err, &unauthorized)

	err = env.typeSvc.Create(ctx, "u1", &domain.ResourceType{Name: "", Schema: []byte(`{}`)})
	require.ErrorAs(t, err, &validation)

	err = env.typeSvc.Create(ctx, "u1", &domain.ResourceType{Name: "droids", Schema: []byte(`nope`)})
	require.ErrorAs(t, err, &validation)

	err = env.typeSvc.Create(ctx, "u1", &domain.ResourceType{
		Name:   "droids",
		Schema: []byte(`{"type":"object","required":["model"]}`),
	})
	require.NoError(t, err)

	err = env.typeSvc.Create(ctx, "u1", &domain.ResourceType{Name: "droids", Schema: []byte(`{}`)})
	require.ErrorAs(t, err, &conflict)

	// The new type gates resource creation immediately.
	_, err = env.resource.Create(ctx, "u1", "droids", domain.CreateResourceRequest{Name: "r2"})
	require.ErrorAs(t, err, &validation)

	res, err := env.resource.Create(ctx, "u1", "droids", domain.CreateResourceRequest{
		Name: "r2",
		Data: map[string]interface{}{"model": "astromech"},
	})
	require.NoError(t, err)
	assert.Equal(t, "droids", res.Type)
}
