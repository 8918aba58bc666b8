package domain

// Claims is the payload of a session or federated identity token.
// Local session tokens carry sub/email/name/exp; federated tokens
// additionally carry aud (and kid in the token header).
type Claims struct {
	Sub   string `json:"sub"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Aud   string `json:"aud,omitempty"`
	Exp   int64  `json:"exp"`
}

// Principal converts verified claims into the request principal.
func (c Claims) Principal() Principal {
	return Principal{ID: c.Sub, Email: c.Email, Name: c.Name}
}
