package shares

import (
	"fmt"
	"time"

	"github.com/pixfolio/pixfolio/internal/config"
	"github.com/pixfolio/pixfolio/internal/db/bunx"
	"github.com/pixfolio/pixfolio/internal/db/models"
	"github.com/pixfolio/pixfolio/internal/repository"
	"github.com/spf13/cobra"
)

var listOwnerFlag string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List sharing links",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		db, err := bunx.NewDB(cfg.DatabaseURL, cfg.MaxDBConnections)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer bunx.Close(db)

		shareRepo := repository.NewBunShareRepository(db)

		var shares []models.Share
		if listOwnerFlag != "" {
			owner, err := repository.NewBunUserRepository(db).GetByName(cmd.Context(), listOwnerFlag)
			if err != nil {
				return fmt.Errorf("failed to look up owner: %w", err)
			}
			shares, err = shareRepo.ListByOwner(cmd.Context(), owner.ID)
			if err != nil {
				return fmt.Errorf("failed to list shares: %w", err)
			}
		} else {
			shares, err = shareRepo.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list shares: %w", err)
			}
		}

		if len(shares) == 0 {
			fmt.Println("No shares found")
			return nil
		}

		now := time.Now()
		for _, share := range shares {
			status := "open"
			if share.HasPassword() {
				status = "password-protected"
			}
			if share.Expired(now) {
				status += ", expired"
			}
			fmt.Printf("%s  (%s)  created %s\n", share.SharingKey, status, share.CreatedAt.Format(time.RFC3339))
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listOwnerFlag, "owner", "", "Only list shares issued by this user")

	SharesCmd.AddCommand(listCmd)
}
