// Package service implements the application services gating every
// resource operation through the access-control resolver.
package service

import (
	"context"

	"github.com/marcelofalero/swse-architech/internal/access"
	"github.com/marcelofalero/swse-architech/internal/domain"
)

// rankFor loads the grant and membership snapshot for a resource and
// resolves the actor's rank over it. The snapshot is point-in-time: a
// concurrent grant or revoke landing after the read is not observed, and
// the caller acts on the rank it was given. There is no per-resource
// lock.
func rankFor(ctx context.Context, grants domain.GrantRepository, groups domain.GroupRepository, actorID string, res *domain.Resource) (access.Rank, error) {
	// Owners and anonymous callers need no snapshot at all.
	if actorID == "" || res.OwnerID == actorID {
		return access.RankOf(actorID, res, nil, nil), nil
	}

	grantRows, err := grants.ListForTarget(ctx, res.ID)
	if err != nil {
		return access.RankNone, err
	}
	memberships, err := groups.ListMembershipsForUser(ctx, actorID)
	if err != nil {
		return access.RankNone, err
	}
	return access.RankOf(actorID, res, grantRows, memberships), nil
}
