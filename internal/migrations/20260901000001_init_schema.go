package migrations

import (
	"context"
	"fmt"

	"github.com/pixfolio/pixfolio/internal/db/models"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(up_20260901000001, down_20260901000001)
}

// up_20260901000001 initializes the users, shares and sessions tables
func up_20260901000001(ctx context.Context, db *bun.DB) error {
	// 1. Create users table
	fmt.Print(" [up] creating users table...")
	_, err := db.NewCreateTable().
		Model((*models.User)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}
	fmt.Println(" OK")

	// 2. Create shares table
	fmt.Print(" [up] creating shares table...")
	_, err = db.NewCreateTable().
		Model((*models.Share)(nil)).
		IfNotExists().
		ForeignKey(`(owner_id) REFERENCES users (id) ON DELETE CASCADE`).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create shares table: %w", err)
	}

	// Lookup by sharing key is the hot path of the public route
	_, err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_shares_sharing_key ON shares(sharing_key)`)
	if err != nil {
		return fmt.Errorf("failed to create index on sharing_key: %w", err)
	}
	fmt.Println(" OK")

	// 3. Create sessions table
	fmt.Print(" [up] creating sessions table...")
	_, err = db.NewCreateTable().
		Model((*models.Session)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create sessions table: %w", err)
	}

	_, err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_token_hash ON sessions(token_hash)`)
	if err != nil {
		return fmt.Errorf("failed to create index on token_hash: %w", err)
	}
	fmt.Println(" OK")

	return nil
}

// down_20260901000001 drops all tables created by the init migration
func down_20260901000001(ctx context.Context, db *bun.DB) error {
	for _, model := range []interface{}{
		(*models.Session)(nil),
		(*models.Share)(nil),
		(*models.User)(nil),
	} {
		_, err := db.NewDropTable().
			Model(model).
			IfExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to drop table: %w", err)
		}
	}
	return nil
}
