package models

import "time"

// Principal is the authenticated actor resolved for one request.
// It is carried on the request context, never in process globals.
type Principal struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// IsSuperAdmin reports whether the principal carries the super_admin role
func (p Principal) IsSuperAdmin() bool {
	return p.Role == RoleSuperAdmin
}

// Session is the Redis-backed browser session. Notices are one-shot
// messages queued for the next rendered page.
type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Notices   []string  `json:"notices,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Principal returns the principal stored on the session
func (s *Session) Principal() Principal {
	return Principal{Username: s.Username, Role: s.Role}
}
