package cmd

import (
	"fmt"
	"os"

	"github.com/pixfolio/pixfolio/cmd/shares"
	"github.com/pixfolio/pixfolio/cmd/users"
	"github.com/pixfolio/pixfolio/internal/config"
	"github.com/spf13/cobra"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "pixfolio",
	Short: "Self-hosted media gallery server",
	Long: `pixfolio serves a personal media gallery with public sharing links.
Shares are opaque keys, optionally password-protected, that expose a
restricted view of the owning account to anonymous visitors.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		return nil
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().String("db-url", "", "Database connection URL (env: DATABASE_URL)")
	rootCmd.PersistentFlags().String("server-addr", "", "Server bind address (env: SERVER_ADDR)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging (env: DEBUG)")

	// Add subcommands
	rootCmd.AddCommand(users.UsersCmd)
	rootCmd.AddCommand(shares.SharesCmd)
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
