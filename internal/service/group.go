package service

import (
	"context"

	"github.com/marcelofalero/swse-architech/internal/domain"
)

// GroupService manages groups and their memberships. Groups exist so
// that a single grant with grantee_type "group" can cover many users;
// only the group's owner may manage its membership.
type GroupService struct {
	groups domain.GroupRepository
}

func NewGroupService(groups domain.GroupRepository) *GroupService {
	return &GroupService{groups: groups}
}

func (s *GroupService) Create(ctx context.Context, actorID, name string) (*domain.Group, error) {
	if actorID == "" {
		return nil, domain.ErrUnauthorized("authentication required")
	}
	if name == "" {
		return nil, domain.ErrValidation("group name is required")
	}
	return s.groups.Create(ctx, &domain.Group{Name: name, OwnerID: actorID})
}

func (s *GroupService) Get(ctx context.Context, id string) (*domain.Group, error) {
	return s.groups.GetByID(ctx, id)
}

func (s *GroupService) AddMember(ctx context.Context, actorID, groupID, userID string) error {
	if err := s.requireOwner(ctx, actorID, groupID); err != nil {
		return err
	}
	if userID == "" {
		return domain.ErrValidation("user_id is required")
	}
	return s.groups.AddMember(ctx, groupID, userID)
}

func (s *GroupService) RemoveMember(ctx context.Context, actorID, groupID, userID string) error {
	if err := s.requireOwner(ctx, actorID, groupID); err != nil {
		return err
	}
	return s.groups.RemoveMember(ctx, groupID, userID)
}

func (s *GroupService) ListMembers(ctx context.Context, actorID, groupID string) ([]domain.GroupMembership, error) {
	if err := s.requireOwner(ctx, actorID, groupID); err != nil {
		return nil, err
	}
	return s.groups.ListMembers(ctx, groupID)
}

func (s *GroupService) requireOwner(ctx context.Context, actorID, groupID string) error {
	if actorID == "" {
		return domain.ErrUnauthorized("authentication required")
	}
	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if group.OwnerID != actorID {
		return domain.ErrAccessDenied("only the group owner may manage members")
	}
	return nil
}
