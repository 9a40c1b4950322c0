package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jellyfin-tools/jellyctl/filter"
	"github.com/jellyfin-tools/jellyctl/jellyfin"
)

var (
	filterExpr   string
	preset       string
	showHidden   bool
	showDisabled bool
	newPassword  string
	noConfirm    bool
	dryRun       bool
)

// userCmd groups the user management commands
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage Jellyfin user accounts",
}

func init() {
	rootCmd.AddCommand(userCmd)

	userListCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	userListCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	userListCmd.Flags().BoolVar(&showHidden, "hidden", false, "include hidden users")
	userListCmd.Flags().BoolVar(&showDisabled, "disabled", false, "include disabled users")

	userCreateCmd.Flags().StringVar(&newPassword, "password", "", "password for the new user")

	userDeleteCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression selecting users to delete")
	userDeleteCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	userDeleteCmd.Flags().BoolVar(&noConfirm, "no-confirm", false, "skip confirmation prompt")
	userDeleteCmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "show what would be deleted without deleting")

	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userGetCmd)
	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userDeleteCmd)
	userCmd.AddCommand(userSetPasswordCmd)
	userCmd.AddCommand(userSetSubtitleModeCmd)
	userCmd.AddCommand(userForgotPasswordCmd)
	userCmd.AddCommand(userRedeemPinCmd)
	userCmd.AddCommand(userPublicCmd)
}

// getFilterExpression resolves the --filter/--preset flags.
func getFilterExpression() (string, error) {
	if filterExpr != "" && preset != "" {
		return "", fmt.Errorf("--filter and --preset are mutually exclusive")
	}
	if preset != "" {
		expr, ok := cfg.Filters[preset]
		if !ok {
			return "", fmt.Errorf("unknown filter preset: %s", preset)
		}
		return expr, nil
	}
	return filterExpr, nil
}

// selectUsers fetches users and applies an optional filter expression.
func selectUsers(ctx context.Context) ([]jellyfin.User, error) {
	expr, err := getFilterExpression()
	if err != nil {
		return nil, err
	}

	users, err := client.Users(ctx, showHidden, showDisabled)
	if err != nil {
		return nil, err
	}

	if expr == "" {
		return users, nil
	}

	matched, err := filter.Select(expr, users)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	return matched, nil
}

func printUserTable(users []jellyfin.User) {
	fmt.Println(strings.Repeat("━", 80))
	fmt.Printf("%-36s %-20s %-8s %-8s %s\n", "ID", "NAME", "ADMIN", "HIDDEN", "DISABLED")
	fmt.Println(strings.Repeat("━", 80))
	for _, user := range users {
		fmt.Printf("%-36s %-20s %-8v %-8v %v\n",
			user.ID, user.Name,
			user.Policy.IsAdministrator,
			user.Policy.IsHidden,
			user.Policy.IsDisabled)
	}
	fmt.Println(strings.Repeat("━", 80))
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users matching the filter criteria",
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := selectUsers(context.Background())
		if err != nil {
			return err
		}

		if len(users) == 0 {
			fmt.Println("No users found matching the filter criteria.")
			return nil
		}

		printUserTable(users)
		return nil
	},
}

var userGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a user by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := client.UserByID(context.Background(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Name:          %s\n", user.Name)
		fmt.Printf("ID:            %s\n", user.ID)
		fmt.Printf("Administrator: %v\n", user.Policy.IsAdministrator)
		fmt.Printf("Hidden:        %v\n", user.Policy.IsHidden)
		fmt.Printf("Disabled:      %v\n", user.Policy.IsDisabled)
		fmt.Printf("Subtitle mode: %s\n", user.Configuration.SubtitleMode)
		if user.LastActivityDate != nil {
			fmt.Printf("Last activity: %s\n", *user.LastActivityDate)
		}
		return nil
	},
}

var userCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := client.CreateUser(context.Background(), args[0], newPassword)
		if err != nil {
			return err
		}

		fmt.Printf("✓ Created user %s (ID: %s)\n", user.Name, user.ID)
		return nil
	},
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete [id...]",
	Short: "Delete users by id or filter expression",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		var targets []jellyfin.User
		if len(args) > 0 {
			if filterExpr != "" || preset != "" {
				return fmt.Errorf("pass either user ids or a filter, not both")
			}
			fetched, err := client.FetchUsers(ctx, args)
			if err != nil {
				return err
			}
			for _, user := range fetched {
				targets = append(targets, *user)
			}
		} else {
			expr, err := getFilterExpression()
			if err != nil {
				return err
			}
			if expr == "" {
				return fmt.Errorf("refusing to delete without ids or a filter expression")
			}
			targets, err = selectUsers(ctx)
			if err != nil {
				return err
			}
		}

		if len(targets) == 0 {
			fmt.Println("No users found matching the criteria.")
			return nil
		}

		printUserTable(targets)

		if dryRun || cfg.Safety.DryRun {
			fmt.Printf("[DRY RUN] Would delete %d user(s)\n", len(targets))
			return nil
		}

		if cfg.Safety.ConfirmDelete && !noConfirm {
			fmt.Printf("Delete %d user(s)? [y/N]: ", len(targets))
			var response string
			fmt.Scanln(&response)
			if strings.ToLower(strings.TrimSpace(response)) != "y" {
				fmt.Println("Deletion cancelled.")
				return nil
			}
		}

		result := client.BatchDeleteUsers(ctx, targets)
		fmt.Printf("✓ Deleted %d of %d user(s)\n", len(result.Successful), result.Requested)
		for _, failed := range result.Failed {
			logger.Error().Err(failed.Err).Str("user", failed.UserName).Msg("Failed to delete user")
			fmt.Printf("✗ %v\n", failed)
		}
		return nil
	},
}

var userSetPasswordCmd = &cobra.Command{
	Use:   "set-password <id> <new-password>",
	Short: "Set a user's password",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.UpdateUserPassword(context.Background(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Println("✓ Password updated")
		return nil
	},
}

var userSetSubtitleModeCmd = &cobra.Command{
	Use:   "set-subtitle-mode <id> <mode>",
	Short: "Set a user's subtitle mode (Default, Always, OnlyForced, None, Smart)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := jellyfin.ParseSubtitleMode(args[1])
		if err != nil {
			return err
		}

		ctx := context.Background()
		user, err := client.UserByID(ctx, args[0])
		if err != nil {
			return err
		}

		conf := user.Configuration
		conf.SubtitleMode = mode
		if err := client.UpdateUserConfiguration(ctx, args[0], conf); err != nil {
			return err
		}

		fmt.Printf("✓ Subtitle mode for %s set to %s\n", user.Name, mode)
		return nil
	},
}

var userForgotPasswordCmd = &cobra.Command{
	Use:   "forgot-password <username>",
	Short: "Start the forgot-password flow for a username",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.ForgotPassword(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Println("✓ Forgot-password flow started, check the server for the PIN")
		return nil
	},
}

var userRedeemPinCmd = &cobra.Command{
	Use:   "redeem-pin <pin>",
	Short: "Redeem a forgot-password PIN",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.RedeemForgotPasswordPin(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Println("✓ PIN redeemed")
		return nil
	},
}

var userPublicCmd = &cobra.Command{
	Use:   "public",
	Short: "List the server's public login-screen users",
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := client.PublicUsers(context.Background())
		if err != nil {
			return err
		}

		if len(users) == 0 {
			fmt.Println("The server exposes no public users.")
			return nil
		}

		printUserTable(users)
		return nil
	},
}
