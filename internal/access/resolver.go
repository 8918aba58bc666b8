package access

import "github.com/marcelofalero/swse-architech/internal/domain"

// RankOf computes the effective rank of a principal over a resource from
// a snapshot of its grants and the store's group memberships.
//
// The computation is a pure max-reduction:
//
//	baseline  public resources grant read to everyone, anonymous included
//	owner     ownership dominates everything else
//	grants    direct user grants and group grants expanded through
//	          memberships contribute their level; only the maximum is kept
//
// principalID may be empty (anonymous); anonymous callers never exceed
// the public baseline. Concurrent grant changes after the snapshot are
// not observed; callers act on a point-in-time decision.
func RankOf(principalID string, res *domain.Resource, grants []domain.Grant, memberships []domain.GroupMembership) Rank {
	baseline := RankNone
	if res.Visibility == domain.VisibilityPublic {
		baseline = RankRead
	}
	if principalID == "" {
		return baseline
	}
	if res.OwnerID == principalID {
		return RankAdmin
	}

	groups := make(map[string]bool, len(memberships))
	for _, m := range memberships {
		if m.UserID == principalID {
			groups[m.GroupID] = true
		}
	}

	best := baseline
	for _, g := range grants {
		if g.TargetID != res.ID {
			continue
		}
		applies := (g.GranteeType == domain.GranteeUser && g.GranteeID == principalID) ||
			(g.GranteeType == domain.GranteeGroup && groups[g.GranteeID])
		if !applies {
			continue
		}
		if r := ParseRank(g.AccessLevel); r > best {
			best = r
		}
	}
	return best
}

// Authorize reports whether a resolved rank satisfies the rank an action
// requires.
func Authorize(rank, required Rank) bool {
	return rank >= required
}

// Gate converts a resolved rank into the outcome the calling handler must
// surface for an action requiring the given rank. A caller with no rank
// at all is told the resource does not exist; a caller with some rank but
// not enough is told the action is forbidden.
func Gate(rank, required Rank) error {
	if Authorize(rank, required) {
		return nil
	}
	if rank == RankNone {
		return domain.ErrNotFound("resource not found")
	}
	return domain.ErrAccessDenied("insufficient access")
}
