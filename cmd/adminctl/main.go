// Command adminctl is a terminal client for the Salt & Serenity back office.
// It talks to the same admin API as the browser dashboard, authenticated
// with an ID token.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/saltandserenity/booking/internal/console"
)

var (
	apiURL  string
	siteURL string
	token   string
	timeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "adminctl",
	Short: "Manage leads, events and admin users",
	Long: `adminctl reads and edits the Salt & Serenity back office from a terminal.

Authenticate with an ID token from the login flow, passed with --token or
ADMIN_TOKEN. The API address comes from --api or ADMIN_API_URL. Referral links are
built from the public site address, --site or BASE_URL.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if token == "" {
			return fmt.Errorf("an ID token is required (--token or ADMIN_TOKEN)")
		}
		return nil
	},
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive dashboard",
	RunE:  runTUI,
}

func init() {
	godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&apiURL, "api", envOr("ADMIN_API_URL", "http://localhost:8080"), "Back-office API base URL")
	rootCmd.PersistentFlags().StringVar(&siteURL, "site", envOr("BASE_URL", "https://salt-and-serenity.com"), "Public site base URL for referral links")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("ADMIN_TOKEN"), "ID token for the admin API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(referrersCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(tuiCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func client() *console.APIClient {
	c := console.NewAPIClient(apiURL, token)
	c.HTTPClient.Timeout = timeout
	return c
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
