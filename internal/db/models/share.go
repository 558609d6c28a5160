package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Share represents one public sharing entry. SharingKey is the opaque token
// embedded in public URLs; it is unique and immutable once issued. Destroying
// the owning user does not rewrite issued keys, it only makes them resolve to
// nothing.
type Share struct {
	bun.BaseModel `bun:"table:shares,alias:sh"`

	ID           string     `bun:"id,pk,type:uuid"`
	SharingKey   string     `bun:"sharing_key,notnull,unique"`
	OwnerID      string     `bun:"owner_id,notnull,type:uuid"` // FK to users(id)
	PasswordHash *string    `bun:"password_hash"`              // bcrypt hash, nil for open shares
	ExpiresAt    *time.Time `bun:"expires_at"`
	CreatedAt    time.Time  `bun:"created_at,notnull,default:current_timestamp"`
}

// Expired reports whether the share's expiry has passed at the given instant.
// Shares without an expiry never expire.
func (s *Share) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && s.ExpiresAt.Before(now)
}

// HasPassword reports whether the share carries its own credential
func (s *Share) HasPassword() bool {
	return s.PasswordHash != nil && *s.PasswordHash != ""
}
