package shares

import (
	"errors"
	"fmt"

	"github.com/pixfolio/pixfolio/internal/config"
	"github.com/pixfolio/pixfolio/internal/db/bunx"
	"github.com/pixfolio/pixfolio/internal/repository"
	"github.com/spf13/cobra"
)

var revokeCmd = &cobra.Command{
	Use:   "revoke <sharing-key>",
	Short: "Revoke a sharing link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sharingKey := args[0]

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
		if err := shareRepo.DeleteBySharingKey(cmd.Context(), sharingKey); err != nil {
			if errors.Is(err, repository.ErrShareNotFound) {
				return fmt.Errorf("no share with key %s", sharingKey)
			}
			return fmt.Errorf("failed to revoke share: %w", err)
		}

		fmt.Printf("Revoked share %s\n", sharingKey)
		return nil
	},
}

func init() {
	SharesCmd.AddCommand(revokeCmd)
}
