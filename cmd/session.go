package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jellyfin-tools/jellyctl/jellyfin"
)

var (
	activeWithin int
	itemTypes    []string
	itemLimit    int
	itemUser     string
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List active sessions on the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		sessions, err := client.Sessions(context.Background(), activeWithin)
		if err != nil {
			return err
		}

		if len(sessions) == 0 {
			fmt.Println("No sessions found.")
			return nil
		}

		fmt.Println(strings.Repeat("━", 90))
		fmt.Printf("%-20s %-20s %-25s %s\n", "USER", "CLIENT", "DEVICE", "LAST ACTIVITY")
		fmt.Println(strings.Repeat("━", 90))
		for _, session := range sessions {
			fmt.Printf("%-20s %-20s %-25s %s\n",
				session.UserName, session.Client, session.DeviceName, session.LastActivityDate)
		}
		fmt.Println(strings.Repeat("━", 90))
		return nil
	},
}

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "Browse library items",
}

var itemsSearchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search library items by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID := itemUser
		if userID == "" {
			if session := client.CurrentSession(); session != nil {
				userID = session.User.ID
			}
		}

		result, err := client.Items(context.Background(), jellyfin.ItemsOptions{
			UserID:           userID,
			SearchTerm:       args[0],
			IncludeItemTypes: itemTypes,
			Recursive:        true,
			Limit:            itemLimit,
		})
		if err != nil {
			return err
		}

		if len(result.Items) == 0 {
			fmt.Println("No items found.")
			return nil
		}

		fmt.Println(strings.Repeat("━", 90))
		fmt.Printf("%-45s %-10s %-6s %s\n", "NAME", "TYPE", "YEAR", "RUNTIME")
		fmt.Println(strings.Repeat("━", 90))
		for _, item := range result.Items {
			year := "-"
			if item.ProductionYear > 0 {
				year = fmt.Sprintf("%d", item.ProductionYear)
			}
			runtime := "-"
			if item.RunTimeTicks > 0 {
				runtime = item.Runtime().Round(time.Minute).String()
			}
			fmt.Printf("%-45s %-10s %-6s %s\n", item.Name, item.Type, year, runtime)
		}
		fmt.Println(strings.Repeat("━", 90))
		fmt.Printf("Showing %d of %d item(s)\n", len(result.Items), result.TotalRecordCount)
		return nil
	},
}

func init() {
	sessionsCmd.Flags().IntVar(&activeWithin, "active-within", 0, "only sessions active within this many seconds")

	itemsSearchCmd.Flags().StringSliceVarP(&itemTypes, "type", "t", nil, "item types to include (Movie, Series, Episode, ...)")
	itemsSearchCmd.Flags().IntVarP(&itemLimit, "limit", "l", 25, "maximum number of results")
	itemsSearchCmd.Flags().StringVarP(&itemUser, "user", "u", "", "browse as this user id (defaults to the authenticated user)")

	itemsCmd.AddCommand(itemsSearchCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(itemsCmd)
}
