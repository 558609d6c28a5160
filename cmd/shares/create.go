package shares

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pixfolio/pixfolio/internal/config"
	"github.com/pixfolio/pixfolio/internal/db/bunx"
	"github.com/pixfolio/pixfolio/internal/db/models"
	"github.com/pixfolio/pixfolio/internal/repository"
	"github.com/pixfolio/pixfolio/internal/services/sharing"
	"github.com/spf13/cobra"
)

var (
	ownerFlag    string
	passwordFlag string
	expiresFlag  time.Duration
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Issue a new sharing link",
	RunE: func(cmd *cobra.Command, args []string) error {
		if ownerFlag == "" {
			return fmt.Errorf("--owner flag is required")
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		db, err := bunx.NewDB(cfg.DatabaseURL, cfg.MaxDBConnections)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer bunx.Close(db)

		userRepo := repository.NewBunUserRepository(db)
		owner, err := userRepo.GetByName(cmd.Context(), ownerFlag)
		if err != nil {
			return fmt.Errorf("failed to look up owner: %w", err)
		}

		sharingKey, err := sharing.GenerateSharingKey()
		if err != nil {
			return fmt.Errorf("failed to generate sharing key: %w", err)
		}

		share := &models.Share{
			ID:         uuid.NewString(),
			SharingKey: sharingKey,
			OwnerID:    owner.ID,
			CreatedAt:  time.Now(),
		}

		if passwordFlag != "" {
			hash, err := sharing.HashSharePassword(passwordFlag)
			if err != nil {
				return fmt.Errorf("failed to hash share password: %w", err)
			}
			share.PasswordHash = &hash
		}

		if expiresFlag > 0 {
			expiresAt := time.Now().Add(expiresFlag)
			share.ExpiresAt = &expiresAt
		}

		shareRepo := repository.NewBunShareRepository(db)
		if err := shareRepo.Create(cmd.Context(), share); err != nil {
			return fmt.Errorf("failed to create share: %w", err)
		}

		fmt.Printf("Created share for %s\n", owner.Name)
		fmt.Printf("  %s/share/%s\n", cfg.ServerURL, share.SharingKey)
		if share.ExpiresAt != nil {
			fmt.Printf("  expires %s\n", share.ExpiresAt.Format(time.RFC3339))
		}
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&ownerFlag, "owner", "", "Login name of the owning user (required)")
	createCmd.Flags().StringVar(&passwordFlag, "password", "", "Protect the share with a password")
	createCmd.Flags().DurationVar(&expiresFlag, "expires", 0, "Lifetime of the share (e.g. 168h); 0 means no expiry")

	SharesCmd.AddCommand(createCmd)
}
