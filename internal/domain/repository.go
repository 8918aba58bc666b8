package domain

import "context"

// UserRepository persists registered accounts.
type UserRepository interface {
	Create(ctx context.Context, u *User) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// ResourceRepository persists shared resources. "No rows" is reported as a
// NotFoundError; a failed or unreachable store surfaces as any other error
// and must propagate to the request boundary.
type ResourceRepository interface {
	Create(ctx context.Context, r *Resource) (*Resource, error)
	GetByID(ctx context.Context, id string) (*Resource, error)
	ListByType(ctx context.Context, resourceType string) ([]Resource, error)
	Update(ctx context.Context, r *Resource) error
	Delete(ctx context.Context, id string) error
}

// GrantRepository persists permission grants. Upsert is the only write:
// a grant for an existing (target, grantee, granteeType) key replaces the
// access level in place.
type GrantRepository interface {
	Upsert(ctx context.Context, g *Grant) error
	ListForTarget(ctx context.Context, targetID string) ([]Grant, error)
	ListForTargets(ctx context.Context, targetIDs []string) (map[string][]Grant, error)
}

// GroupRepository persists groups and their memberships.
type GroupRepository interface {
	Create(ctx context.Context, g *Group) (*Group, error)
	GetByID(ctx context.Context, id string) (*Group, error)
	AddMember(ctx context.Context, groupID, userID string) error
	RemoveMember(ctx context.Context, groupID, userID string) error
	ListMembers(ctx context.Context, groupID string) ([]GroupMembership, error)
	ListMembershipsForUser(ctx context.Context, userID string) ([]GroupMembership, error)
}

// ResourceTypeRepository persists the resource-type registry.
type ResourceTypeRepository interface {
	List(ctx context.Context) ([]ResourceType, error)
	GetByName(ctx context.Context, name string) (*ResourceType, error)
	Create(ctx context.Context, t *ResourceType) error
}
