package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcelofalero/swse-architech/internal/access"
	"github.com/marcelofalero/swse-architech/internal/domain"
)

func TestCreateRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	var unauthorized *domain.UnauthorizedError
	_, err := env.resource.Create(ctx, "", "ships", domain.CreateResourceRequest{})
	require.ErrorAs(t, err, &unauthorized)
}

func TestCreateValidatesAgainstTypeSchema(t *testing.T) {
	env := newTestEnv(t)

	var validation *domain.ValidationError

	// ships requires configuration and manifest.
	_, err := env.resource.Create(ctx, "owner", "ships", domain.CreateResourceRequest{
		Name: "bad",
		Data: map[string]interface{}{"configuration": map[string]interface{}{}},
	})
	require.ErrorAs(t, err, &validation)

	// Unknown type.
	_, err = env.resource.Create(ctx, "owner", "speeders", domain.CreateResourceRequest{Name: "bad"})
	require.ErrorAs(t, err, &validation)

	// Bad visibility.
	_, err = env.resource.Create(ctx, "owner", "configurations", domain.CreateResourceRequest{
		Name: "bad", Visibility: "secret",
	})
	require.ErrorAs(t, err, &validation)

	// configurations accepts any object.
	res, err := env.resource.Create(ctx, "owner", "configurations", domain.CreateResourceRequest{
		Name: "ok",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.VisibilityPrivate, res.Visibility)
	assert.Equal(t, access.RankAdmin, res.Rank)
}

func TestListVisibility(t *testing.T) {
	env := newTestEnv(t)

	public := env.createShip(t, "owner", "public ship", domain.VisibilityPublic)
	private := env.createShip(t, "owner", "private ship", domain.VisibilityPrivate)
	shared := env.createShip(t, "owner", "shared ship", domain.VisibilityPrivate)
	require.NoError(t, env.sharing.Grant(ctx, "owner", shared.ID, "viewer", domain.GranteeUser, "read"))

	ids := func(list []RankedResource) []string {
		var out []string
		for _, r := range list {
			out = append(out, r.ID)
		}
		return out
	}

	// Anonymous sees only the public resource, at read rank.
	list, err := env.resource.List(ctx, "", "ships")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, public.ID, list[0].ID)
	assert.Equal(t, access.RankRead, list[0].Rank)

	// The owner sees everything at admin rank.
	list, err = env.resource.List(ctx, "owner", "ships")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{public.ID, private.ID, shared.ID}, ids(list))
	for _, r := range list {
		assert.Equal(t, access.RankAdmin, r.Rank)
	}

	// The viewer sees public plus the shared one.
	list, err = env.resource.List(ctx, "viewer", "ships")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{public.ID, shared.ID}, ids(list))
}

func TestAnonymousReadsPublicResource(t *testing.T) {
	env := newTestEnv(t)
	ship := env.createShip(t, "owner", "display ship", domain.VisibilityPublic)

	got, err := env.resource.Get(ctx, "", ship.ID)
	require.NoError(t, err)
	assert.Equal(t, access.RankRead, got.Rank)

	// Anonymous callers never reach write on anything.
	var unauthorized *domain.UnauthorizedError
	_, err = env.resource.Update(ctx, "", ship.ID, domain.CreateResourceRequest{})
	require.ErrorAs(t, err, &unauthorized)
}

func TestExistenceHidingMatchesMissingID(t *testing.T) {
	env := newTestEnv(t)
	ship := env.createShip(t, "owner", "secret ship", domain.VisibilityPrivate)

	// A stranger gets the same outcome for a real-but-hidden id as for a
	// nonexistent one.
	var hiddenErr, missingErr *domain.NotFoundError
	_, err := env.resource.Get(ctx, "stranger", ship.ID)
	require.ErrorAs(t, err, &hiddenErr)
	_, err = env.resource.Get(ctx, "stranger", "does-not-exist")
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, missingErr.Message, hiddenErr.Message)
}

func TestUpdateRevalidatesData(t *testing.T) {
	env := newTestEnv(t)
	ship := env.createShip(t, "owner", "Falcon", domain.VisibilityPrivate)

	var validation *domain.ValidationError
	_, err := env.resource.Update(ctx, "owner", ship.ID, domain.CreateResourceRequest{
		Name: "Falcon",
		Data: map[string]interface{}{"manifest": "not an array"},
	})
	require.ErrorAs(t, err, &validation)
}
