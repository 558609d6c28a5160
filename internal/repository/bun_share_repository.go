package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pixfolio/pixfolio/internal/db/models"
	"github.com/uptrace/bun"
)

// BunShareRepository implements ShareRepository using Bun ORM
type BunShareRepository struct {
	db *bun.DB
}

// NewBunShareRepository creates a new Bun-based share repository
func NewBunShareRepository(db *bun.DB) *BunShareRepository {
	return &BunShareRepository{db: db}
}

// Create inserts a new sharing entry into the database
func (r *BunShareRepository) Create(ctx context.Context, share *models.Share) error {
	_, err := r.db.NewInsert().
		Model(share).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create share: %w", err)
	}
	return nil
}

// GetBySharingKey retrieves a share by its sharing key
func (r *BunShareRepository) GetBySharingKey(ctx context.Context, sharingKey string) (*models.Share, error) {
	share := new(models.Share)
	err := r.db.NewSelect().
		Model(share).
		Where("sharing_key = ?", sharingKey).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShareNotFound
		}
		return nil, fmt.Errorf("get share by sharing key: %w", err)
	}
	return share, nil
}

// ListByOwner retrieves all shares issued by one user
func (r *BunShareRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Share, error) {
	var shares []models.Share
	err := r.db.NewSelect().
		Model(&shares).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shares by owner: %w", err)
	}
	return shares, nil
}

// List retrieves all shares
func (r *BunShareRepository) List(ctx context.Context) ([]models.Share, error) {
	var shares []models.Share
	err := r.db.NewSelect().
		Model(&shares).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shares: %w", err)
	}
	return shares, nil
}

// DeleteBySharingKey revokes a share by removing its row
func (r *BunShareRepository) DeleteBySharingKey(ctx context.Context, sharingKey string) error {
	result, err := r.db.NewDelete().
		Model((*models.Share)(nil)).
		Where("sharing_key = ?", sharingKey).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete share: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrShareNotFound
	}
	return nil
}
