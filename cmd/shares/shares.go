// Package shares contains the sharing-link management subcommands
package shares

import "github.com/spf13/cobra"

// SharesCmd is the parent command for share management
var SharesCmd = &cobra.Command{
	Use:   "shares",
	Short: "Manage public sharing links",
}
