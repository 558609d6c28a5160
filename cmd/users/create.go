package users

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pixfolio/pixfolio/internal/config"
	"github.com/pixfolio/pixfolio/internal/db/bunx"
	"github.com/pixfolio/pixfolio/internal/db/models"
	"github.com/pixfolio/pixfolio/internal/repository"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var (
	nameFlag     string
	passwordFlag string
	roleFlag     string
	stdinFlag    bool
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new gallery user",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Validate required flags
		if nameFlag == "" {
			return fmt.Errorf("--name flag is required")
		}

		role, ok := models.ParseRole(roleFlag)
		if !ok {
			return fmt.Errorf("invalid role %q (valid: LimitedGuest, Guest, User, Admin, Developer)", roleFlag)
		}

		password := passwordFlag
		if stdinFlag {
			// Read password from stdin
			scanner := bufio.NewScanner(os.Stdin)
			fmt.Print("Enter password: ")
			if scanner.Scan() {
				password = scanner.Text()
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
		}

		if password == "" {
			return fmt.Errorf("password is required (use --password or --stdin)")
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

		// Hash password with bcrypt
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), 12)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		user := &models.User{
			ID:           uuid.NewString(),
			Name:         nameFlag,
			PasswordHash: string(hashedPassword),
			Role:         role,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}

		userRepo := repository.NewBunUserRepository(db)
		if err := userRepo.Create(cmd.Context(), user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		fmt.Printf("Created user %s (%s) with role %s\n", user.Name, user.ID, user.Role)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&nameFlag, "name", "", "Login name (required)")
	createCmd.Flags().StringVar(&passwordFlag, "password", "", "Password (prefer --stdin)")
	createCmd.Flags().StringVar(&roleFlag, "role", "User", "Role: LimitedGuest, Guest, User, Admin, Developer")
	createCmd.Flags().BoolVar(&stdinFlag, "stdin", false, "Read the password from stdin")

	UsersCmd.AddCommand(createCmd)
}
