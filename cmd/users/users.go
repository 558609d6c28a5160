// Package users contains the user management subcommands
package users

import "github.com/spf13/cobra"

// UsersCmd is the parent command for user management
var UsersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage gallery users",
}
