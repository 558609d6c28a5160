package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Session tracks an issued session token. Exactly one of UserID or SharingKey
// is set: login sessions reference a user, share sessions record that a
// sharing password was already verified for one sharing key.
type Session struct {
	bun.BaseModel `bun:"table:sessions,alias:sess"`

	ID         string    `bun:"id,pk,type:uuid"`
	UserID     *string   `bun:"user_id,type:uuid"` // FK to users(id), nullable
	SharingKey *string   `bun:"sharing_key"`       // set for share sessions
	TokenHash  string    `bun:"token_hash,notnull,unique"` // SHA256 hash of the cookie value
	ExpiresAt  time.Time `bun:"expires_at,notnull"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp"`
	LastUsedAt time.Time `bun:"last_used_at,notnull,default:current_timestamp"`
	UserAgent  *string   `bun:"user_agent"`
	IPAddress  *string   `bun:"ip_address"`
	Revoked    bool      `bun:"revoked,notnull,default:false"`
}

// Valid reports whether the session is usable at the given instant
func (s *Session) Valid(now time.Time) bool {
	return !s.Revoked && s.ExpiresAt.After(now)
}
