package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Role is the gallery permission level of a user. Values are ordered: a
// higher role implies every capability of the ones below it. The numeric
// values are part of the client bootstrap contract and must not be renumbered.
type Role int

const (
	RoleLimitedGuest Role = iota + 1
	RoleGuest
	RoleUser
	RoleAdmin
	RoleDeveloper
)

// String returns the display name of the role
func (r Role) String() string {
	switch r {
	case RoleLimitedGuest:
		return "LimitedGuest"
	case RoleGuest:
		return "Guest"
	case RoleUser:
		return "User"
	case RoleAdmin:
		return "Admin"
	case RoleDeveloper:
		return "Developer"
	default:
		return "Unknown"
	}
}

// ParseRole maps a role name to its Role value
func ParseRole(name string) (Role, bool) {
	switch name {
	case "LimitedGuest":
		return RoleLimitedGuest, true
	case "Guest":
		return RoleGuest, true
	case "User":
		return RoleUser, true
	case "Admin":
		return RoleAdmin, true
	case "Developer":
		return RoleDeveloper, true
	default:
		return 0, false
	}
}

// User represents a gallery account. PasswordHash stores the bcrypt hash for
// local login; it never leaves the server.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           string     `bun:"id,pk,type:uuid"`
	Name         string     `bun:"name,notnull,unique"`
	PasswordHash string     `bun:"password_hash,notnull"`
	Role         Role       `bun:"role,notnull"`
	CreatedAt    time.Time  `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt    time.Time  `bun:"updated_at,notnull,default:current_timestamp"`
	DisabledAt   *time.Time `bun:"disabled_at"`
}
