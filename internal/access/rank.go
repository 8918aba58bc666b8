// Package access implements the rank-based access-control resolver. It is
// the single source of truth for whether a principal may act on a
// resource; it never reads or writes storage itself.
package access

// Rank is an ordered access level. All comparisons are integer
// comparisons; access-level strings exist only at the storage and wire
// edges.
type Rank int

const (
	RankNone Rank = iota
	RankRead
	RankWrite
	RankAdmin
)

var rankNames = map[Rank]string{
	RankNone:  "none",
	RankRead:  "read",
	RankWrite: "write",
	RankAdmin: "admin",
}

func (r Rank) String() string {
	if s, ok := rankNames[r]; ok {
		return s
	}
	return "none"
}

// ParseRank maps a stored access-level string onto its Rank. Unknown
// levels map to RankNone, so a corrupted grant row can never widen
// access.
func ParseRank(level string) Rank {
	switch level {
	case "read":
		return RankRead
	case "write":
		return RankWrite
	case "admin":
		return RankAdmin
	default:
		return RankNone
	}
}

// ValidAccessLevel reports whether level names a grantable rank.
// RankNone is not grantable.
func ValidAccessLevel(level string) bool {
	return level == "read" || level == "write" || level == "admin"
}
