package models

import (
	"fmt"
	"strings"
	"time"
)

// Role is a closed set of capability levels ordered VIEWER < EDITOR < ADMIN.
type Role string

const (
	RoleViewer Role = "VIEWER"
	RoleEditor Role = "EDITOR"
	RoleAdmin  Role = "ADMIN"
)

// Roles lists every role in ascending rank
var Roles = []Role{RoleViewer, RoleEditor, RoleAdmin}

// Rank returns the position of the role in the hierarchy, 0 for unknown roles.
func (r Role) Rank() int {
	switch r {
	case RoleViewer:
		return 1
	case RoleEditor:
		return 2
	case RoleAdmin:
		return 3
	default:
		return 0
	}
}

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	return r.Rank() > 0
}

// Satisfies reports whether r ranks at or above required.
// Unknown roles never satisfy anything.
func (r Role) Satisfies(required Role) bool {
	return r.Valid() && required.Valid() && r.Rank() >= required.Rank()
}

// LoginPath is where unauthenticated callers are sent
const LoginPath = "/login"

// Landing is the dashboard path a user with this role is sent to.
func (r Role) Landing() string {
	switch r {
	case RoleAdmin:
		return "/admin"
	case RoleEditor:
		return "/editor"
	default:
		return "/viewer"
	}
}

// ParseRole parses a role name case-insensitively
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Profile is the per-user row carrying the role.
type Profile struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Role      Role      `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// HasRole reports whether the profile satisfies the required role. Nil profiles never do.
func (p *Profile) HasRole(required Role) bool {
	if p == nil {
		return false
	}
	return p.Role.Satisfies(required)
}
