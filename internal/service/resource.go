package service

import (
	"context"
	"log/slog"

	"github.com/marcelofalero/swse-architech/internal/access"
	"github.com/marcelofalero/swse-architech/internal/domain"
)

// RankedResource pairs a resource with the caller's resolved rank so the
// API layer can shape hypermedia links without re-resolving.
type RankedResource struct {
	domain.Resource
	Rank access.Rank
}

// ResourceService implements resource CRUD. Every read, write, and
// delete resolves the caller's rank before acting; reads below RankRead
// are answered as if the resource did not exist.
type ResourceService struct {
	resources domain.ResourceRepository
	grants    domain.GrantRepository
	groups    domain.GroupRepository
	validator *SchemaValidator
	logger    *slog.Logger
}

func NewResourceService(resources domain.ResourceRepository, grants domain.GrantRepository, groups domain.GroupRepository, validator *SchemaValidator, logger *slog.Logger) *ResourceService {
	return &ResourceService{
		resources: resources,
		grants:    grants,
		groups:    groups,
		validator: validator,
		logger:    logger,
	}
}

// Create creates a resource owned by the actor. The data payload must
// satisfy the registered schema for resourceType.
func (s *ResourceService) Create(ctx context.Context, actorID, resourceType string, req domain.CreateResourceRequest) (*RankedResource, error) {
	if actorID == "" {
		return nil, domain.ErrUnauthorized("authentication required")
	}
	visibility, err := normalizeVisibility(req.Visibility)
	if err != nil {
		return nil, err
	}
	if req.Data == nil {
		req.Data = map[string]interface{}{}
	}
	if err := s.validator.Validate(ctx, resourceType, req.Data); err != nil {
		return nil, err
	}

	res, err := s.resources.Create(ctx, &domain.Resource{
		OwnerID:    actorID,
		Name:       req.Name,
		Type:       resourceType,
		Data:       req.Data,
		Visibility: visibility,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("resource created", "id", res.ID, "type", resourceType, "owner", actorID)
	return &RankedResource{Resource: *res, Rank: access.RankAdmin}, nil
}

// Get returns a resource the actor can read. Callers with no rank get
// NotFound whether or not the id exists.
func (s *ResourceService) Get(ctx context.Context, actorID, id string) (*RankedResource, error) {
	res, err := s.resources.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rank, err := rankFor(ctx, s.grants, s.groups, actorID, res)
	if err != nil {
		return nil, err
	}
	if err := access.Gate(rank, access.RankRead); err != nil {
		return nil, err
	}
	return &RankedResource{Resource: *res, Rank: rank}, nil
}

// List returns the resources of a type the actor can see: public ones,
// owned ones, and ones granted directly or through a group.
func (s *ResourceService) List(ctx context.Context, actorID, resourceType string) ([]RankedResource, error) {
	all, err := s.resources.ListByType(ctx, resourceType)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(all))
	for i, res := range all {
		ids[i] = res.ID
	}
	grantsByTarget, err := s.grants.ListForTargets(ctx, ids)
	if err != nil {
		return nil, err
	}
	var memberships []domain.GroupMembership
	if actorID != "" {
		if memberships, err = s.groups.ListMembershipsForUser(ctx, actorID); err != nil {
			return nil, err
		}
	}

	visible := []RankedResource{}
	for _, res := range all {
		rank := access.RankOf(actorID, &res, grantsByTarget[res.ID], memberships)
		if access.Authorize(rank, access.RankRead) {
			visible = append(visible, RankedResource{Resource: res, Rank: rank})
		}
	}
	return visible, nil
}

// Update replaces a resource's caller-editable fields. Requires write
// rank; the new data payload is re-validated against the type schema.
func (s *ResourceService) Update(ctx context.Context, actorID, id string, req domain.CreateResourceRequest) (*RankedResource, error) {
	if actorID == "" {
		return nil, domain.ErrUnauthorized("authentication required")
	}
	res, err := s.resources.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rank, err := rankFor(ctx, s.grants, s.groups, actorID, res)
	if err != nil {
		return nil, err
	}
	if err := access.Gate(rank, access.RankWrite); err != nil {
		return nil, err
	}

	visibility, err := normalizeVisibility(req.Visibility)
	if err != nil {
		return nil, err
	}
	if req.Data == nil {
		req.Data = map[string]interface{}{}
	}
	if err := s.validator.Validate(ctx, res.Type, req.Data); err != nil {
		return nil, err
	}

	res.Name = req.Name
	res.Data = req.Data
	res.Visibility = visibility
	if err := s.resources.Update(ctx, res); err != nil {
		return nil, err
	}

	updated, err := s.resources.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &RankedResource{Resource: *updated, Rank: rank}, nil
}

// Delete removes a resource. Requires admin rank.
func (s *ResourceService) Delete(ctx context.Context, actorID, id string) error {
	if actorID == "" {
		return domain.ErrUnauthorized("authentication required")
	}
	res, err := s.resources.GetByID(ctx, id)
	if err != nil {
		return err
	}
	rank, err := rankFor(ctx, s.grants, s.groups, actorID, res)
	if err != nil {
		return err
	}
	if err := access.Gate(rank, access.RankAdmin); err != nil {
		return err
	}
	if err := s.resources.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("resource deleted", "id", id, "actor", actorID)
	return nil
}

func normalizeVisibility(v string) (string, error) {
	switch v {
	case "":
		return domain.VisibilityPrivate, nil
	case domain.VisibilityPublic, domain.VisibilityPrivate:
		return v, nil
	default:
		return "", domain.ErrValidation("visibility must be \"public\" or \"private\"")
	}
}
