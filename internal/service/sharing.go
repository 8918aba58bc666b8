package service

import (
	"context"
	"log/slog"

	"github.com/marcelofalero/swse-architech/internal/access"
	"github.com/marcelofalero/swse-architech/internal/domain"
)

// SharingService mutates grant records. It is the only write path for
// grants; the resolver itself never writes state.
type SharingService struct {
	resources domain.ResourceRepository
	grants    domain.GrantRepository
	groups    domain.GroupRepository
	logger    *slog.Logger
}

func NewSharingService(resources domain.ResourceRepository, grants domain.GrantRepository, groups domain.GroupRepository, logger *slog.Logger) *SharingService {
	return &SharingService{resources: resources, grants: grants, groups: groups, logger: logger}
}

// Grant records or updates a grant on a target resource. The actor must
// hold admin rank over the target: an absent target is NotFound, any
// resolved rank below admin is denied.
func (s *SharingService) Grant(ctx context.Context, actorID, targetID, granteeID, granteeType, accessLevel string) error {
	if actorID == "" {
		return domain.ErrUnauthorized("authentication required")
	}
	if granteeType != domain.GranteeUser && granteeType != domain.GranteeGroup {
		return domain.ErrValidation("grantee_type must be \"user\" or \"group\"")
	}
	if !access.ValidAccessLevel(accessLevel) {
		return domain.ErrValidation("access_level must be \"read\", \"write\", or \"admin\"")
	}
	if granteeID == "" {
		return domain.ErrValidation("grantee_id is required")
	}

	res, err := s.resources.GetByID(ctx, targetID)
	if err != nil {
		return err
	}

	rank, err := rankFor(ctx, s.grants, s.groups, actorID, res)
	if err != nil {
		return err
	}
	if !access.Authorize(rank, access.RankAdmin) {
		return domain.ErrAccessDenied("admin access required to share")
	}

	if err := s.grants.Upsert(ctx, &domain.Grant{
		TargetID:    targetID,
		GranteeID:   granteeID,
		GranteeType: granteeType,
		AccessLevel: accessLevel,
	}); err != nil {
		return err
	}
	s.logger.Info("grant recorded",
		"target", targetID, "grantee", granteeID,
		"grantee_type", granteeType, "level", accessLevel, "actor", actorID)
	return nil
}
