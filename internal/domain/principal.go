package domain

import "time"

// Principal is the authenticated actor behind a request. It is
// reconstructed per request from a verified token and never persisted.
type Principal struct {
	ID    string
	Email string
	Name  string
}

// User is a registered account row.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string // empty for federated-only accounts
	CreatedAt    time.Time
}

// Group represents a named collection of users.
type Group struct {
	ID        string
	Name      string
	OwnerID   string
	CreatedAt time.Time
}

// GroupMembership links a user into a group. Memberships are consulted
// only to expand group grants to member users.
type GroupMembership struct {
	GroupID string
	UserID  string
}
