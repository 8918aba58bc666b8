package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/marcelofalero/swse-architech/internal/auth"
	internaldb "github.com/marcelofalero/swse-architech/internal/db"
	"github.com/marcelofalero/swse-architech/internal/db/repository"
	"github.com/marcelofalero/swse-architech/internal/domain"
)

var ctx = context.Background()

// testEnv wires real repositories over a temp SQLite DB with all default
// resource types seeded.
type testEnv struct {
	users     *repository.UserRepo
	resources *repository.ResourceRepo
	grants    *repository.GrantRepo
	groups    *repository.GroupRepo
	types     *repository.ResourceTypeRepo

	account  *AccountService
	resource *ResourceService
	sharing  *SharingService
	group    *GroupService
	typeSvc  *TypeService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, _ := internaldb.OpenTestSQLite(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	env := &testEnv{
		users:     repository.NewUserRepo(db),
		resources: repository.NewResourceRepo(db),
		grants:    repository.NewGrantRepo(db),
		groups:    repository.NewGroupRepo(db),
		types:     repository.NewResourceTypeRepo(db),
	}
	validator := NewSchemaValidator(env.types)
	tokens := auth.NewTokenService(nil)

	env.account = NewAccountService(env.users, tokens, "test-secret", "test-audience", logger)
	env.resource = NewResourceService(env.resources, env.grants, env.groups, validator, logger)
	env.sharing = NewSharingService(env.resources, env.grants, env.groups, logger)
	env.group = NewGroupService(env.groups)
	env.typeSvc = NewTypeService(env.types, validator)

	require.NoError(t, env.typeSvc.SeedDefaults(ctx))
	return env
}

// createShip creates a ship resource owned by ownerID.
func (e *testEnv) createShip(t *testing.T, ownerID, name, visibility string) *RankedResource {
	t.Helper()
	res, err := e.resource.Create(ctx, ownerID, "ships", domain.CreateResourceRequest{
		Name: name,
		Data: map[string]interface{}{
			"configuration": map[string]interface{}{},
			"manifest":      []interface{}{},
		},
		Visibility: visibility,
	})
	require.NoError(t, err)
	return res
}
