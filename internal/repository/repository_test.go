package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pixfolio/pixfolio/internal/db/bunx"
	"github.com/pixfolio/pixfolio/internal/db/models"
	"github.com/pixfolio/pixfolio/internal/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

// setupTestDB opens an in-memory SQLite database and applies all migrations
func setupTestDB(t *testing.T) *bun.DB {
	t.Helper()

	db, err := bunx.NewDB(":memory:", 1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = bunx.Close(db) })

	migrator := migrate.NewMigrator(db, migrations.Migrations)
	ctx := context.Background()
	require.NoError(t, migrator.Init(ctx))
	_, err = migrator.Migrate(ctx)
	require.NoError(t, err)

	return db
}

// createTestUser inserts a user row and returns it
func createTestUser(t *testing.T, db *bun.DB, name string, role models.Role) *models.User {
	t.Helper()

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         name,
		PasswordHash: "$2a$12$not.a.real.hash.but.sufficient.for.storage",
		Role:         role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, NewBunUserRepository(db).Create(context.Background(), user))
	return user
}

func TestBunUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBunUserRepository(db)
	ctx := context.Background()

	t.Run("create and fetch", func(t *testing.T) {
		user := createTestUser(t, db, "alice", models.RoleUser)

		got, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", got.Name)
		assert.Equal(t, models.RoleUser, got.Role)
		assert.NotZero(t, got.CreatedAt)

		got, err = repo.GetByName(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("unknown id maps to sentinel error", func(t *testing.T) {
		_, err := repo.GetByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("set password hash", func(t *testing.T) {
		user := createTestUser(t, db, "bob", models.RoleUser)

		require.NoError(t, repo.SetPasswordHash(ctx, user.ID, "new-hash"))
		got, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "new-hash", got.PasswordHash)

		err = repo.SetPasswordHash(ctx, uuid.NewString(), "x")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		user := createTestUser(t, db, "carol", models.RoleAdmin)

		require.NoError(t, repo.Delete(ctx, user.ID))
		_, err := repo.GetByID(ctx, user.ID)
		assert.ErrorIs(t, err, ErrUserNotFound)

		assert.ErrorIs(t, repo.Delete(ctx, user.ID), ErrUserNotFound)
	})
}

func TestBunShareRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBunShareRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner", models.RoleUser)

	newShare := func(key string) *models.Share {
		return &models.Share{
			ID:         uuid.NewString(),
			SharingKey: key,
			OwnerID:    owner.ID,
			CreatedAt:  time.Now(),
		}
	}

	t.Run("create and fetch by sharing key", func(t *testing.T) {
		share := newShare("k3yOne")
		require.NoError(t, repo.Create(ctx, share))

		got, err := repo.GetBySharingKey(ctx, "k3yOne")
		require.NoError(t, err)
		assert.Equal(t, share.ID, got.ID)
		assert.Equal(t, owner.ID, got.OwnerID)
		assert.Nil(t, got.PasswordHash)
		assert.Nil(t, got.ExpiresAt)
	})

	t.Run("duplicate sharing key is rejected", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, newShare("dupKey")))
		assert.Error(t, repo.Create(ctx, newShare("dupKey")))
	})

	t.Run("unknown key maps to sentinel error", func(t *testing.T) {
		_, err := repo.GetBySharingKey(ctx, "no-such-key")
		assert.ErrorIs(t, err, ErrShareNotFound)
	})

	t.Run("list by owner", func(t *testing.T) {
		other := createTestUser(t, db, "other", models.RoleUser)
		otherShare := &models.Share{
			ID:         uuid.NewString(),
			SharingKey: "otherKey",
			OwnerID:    other.ID,
			CreatedAt:  time.Now(),
		}
		require.NoError(t, repo.Create(ctx, otherShare))

		shares, err := repo.ListByOwner(ctx, other.ID)
		require.NoError(t, err)
		require.Len(t, shares, 1)
		assert.Equal(t, "otherKey", shares[0].SharingKey)
	})

	t.Run("delete by sharing key", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, newShare("gone")))
		require.NoError(t, repo.DeleteBySharingKey(ctx, "gone"))

		_, err := repo.GetBySharingKey(ctx, "gone")
		assert.ErrorIs(t, err, ErrShareNotFound)
		assert.ErrorIs(t, repo.DeleteBySharingKey(ctx, "gone"), ErrShareNotFound)
	})

	t.Run("deleting the owner cascades to shares", func(t *testing.T) {
		doomed := createTestUser(t, db, "doomed", models.RoleUser)
		share := &models.Share{
			ID:         uuid.NewString(),
			SharingKey: "orphaned",
			OwnerID:    doomed.ID,
			CreatedAt:  time.Now(),
		}
		require.NoError(t, repo.Create(ctx, share))

		require.NoError(t, NewBunUserRepository(db).Delete(ctx, doomed.ID))
		_, err := repo.GetBySharingKey(ctx, "orphaned")
		assert.ErrorIs(t, err, ErrShareNotFound)
	})
}

func TestBunSessionRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBunSessionRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "sessuser", models.RoleUser)

	newSession := func(hash string, expiresAt time.Time) *models.Session {
		return &models.Session{
			ID:         uuid.NewString(),
			UserID:     &user.ID,
			TokenHash:  hash,
			ExpiresAt:  expiresAt,
			CreatedAt:  time.Now(),
			LastUsedAt: time.Now(),
		}
	}

	t.Run("create and fetch by token hash", func(t *testing.T) {
		sess := newSession("hash-1", time.Now().Add(time.Hour))
		require.NoError(t, repo.Create(ctx, sess))

		got, err := repo.GetByTokenHash(ctx, "hash-1")
		require.NoError(t, err)
		assert.Equal(t, sess.ID, got.ID)
		assert.True(t, got.Valid(time.Now()))
	})

	t.Run("revoke", func(t *testing.T) {
		sess := newSession("hash-2", time.Now().Add(time.Hour))
		require.NoError(t, repo.Create(ctx, sess))
		require.NoError(t, repo.Revoke(ctx, sess.ID))

		got, err := repo.GetByTokenHash(ctx, "hash-2")
		require.NoError(t, err)
		assert.False(t, got.Valid(time.Now()))
	})

	t.Run("delete expired", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, newSession("hash-old", time.Now().Add(-time.Hour))))
		require.NoError(t, repo.Create(ctx, newSession("hash-new", time.Now().Add(time.Hour))))

		n, err := repo.DeleteExpired(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, int64(1))

		_, err = repo.GetByTokenHash(ctx, "hash-old")
		assert.ErrorIs(t, err, ErrSessionNotFound)
		_, err = repo.GetByTokenHash(ctx, "hash-new")
		assert.NoError(t, err)
	})
}
