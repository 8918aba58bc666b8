package domain

// Grantee types for a Grant.
const (
	GranteeUser  = "user"
	GranteeGroup = "group"
)

// Grant is a stored permission entry linking a resource to a grantee at a
// given access level. At most one Grant exists per
// (TargetID, GranteeID, GranteeType); re-granting the same key replaces
// the access level.
type Grant struct {
	TargetID    string
	GranteeID   string
	GranteeType string // "user" or "group"
	AccessLevel string // "read", "write", "admin"
}
