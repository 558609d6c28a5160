package repository

import (
	"context"
	"errors"

	"github.com/pixfolio/pixfolio/internal/db/models"
)

var (
	// ErrUserNotFound is returned when a user lookup matches no row
	ErrUserNotFound = errors.New("user not found")

	// ErrShareNotFound is returned when a share lookup matches no row
	ErrShareNotFound = errors.New("share not found")

	// ErrSessionNotFound is returned when a session lookup matches no row
	ErrSessionNotFound = errors.New("session not found")
)

// UserRepository exposes persistence operations for gallery users.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByName(ctx context.Context, name string) (*models.User, error)
	SetPasswordHash(ctx context.Context, id string, passwordHash string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.User, error)
}

// ShareRepository exposes persistence operations for sharing entries.
type ShareRepository interface {
	Create(ctx context.Context, share *models.Share) error
	GetBySharingKey(ctx context.Context, sharingKey string) (*models.Share, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Share, error)
	List(ctx context.Context) ([]models.Share, error)
	DeleteBySharingKey(ctx context.Context, sharingKey string) error
}

// SessionRepository exposes persistence operations for session tokens.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.Session, error)
	Touch(ctx context.Context, id string) error
	Revoke(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context) (int64, error)
}
