package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jellyfin-tools/jellyctl/config"
	"github.com/jellyfin-tools/jellyctl/jellyfin"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *jellyfin.Client

	version   = "dev"
	buildTime = "unknown"
)

// SetVersion records the build information injected by the linker.
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "jellyctl",
	Short: "Manage users and sessions on a Jellyfin server",
	Long: `jellyctl is a CLI for the Jellyfin media server API. It manages user
accounts (create, delete, update policy and preferences), inspects active
sessions and browses library items, using filter expressions to select
users in bulk.`,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	rootCmd.AddCommand(versionCmd)
}

// initializeApp loads the configuration, sets up logging and connects to
// the Jellyfin server.
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	var opts []jellyfin.Option
	if cfg.Jellyfin.DeviceName != "" {
		opts = append(opts, jellyfin.WithDeviceName(cfg.Jellyfin.DeviceName))
	}

	client, err = jellyfin.NewClient(cfg.Jellyfin.URL, logger, opts...)
	if err != nil {
		return fmt.Errorf("failed to create Jellyfin client: %w", err)
	}

	// Commands that only hit public endpoints work without credentials;
	// everything else fails fast with the client's auth error.
	if cfg.Jellyfin.Username != "" {
		ctx := context.Background()
		if _, err := client.AuthenticateUserByName(ctx, cfg.Jellyfin.Username, cfg.Jellyfin.Password); err != nil {
			return fmt.Errorf("failed to authenticate with Jellyfin: %w", err)
		}
		logger.Info().Str("user", cfg.Jellyfin.Username).Msg("Authenticated with Jellyfin")
	} else {
		logger.Debug().Msg("No credentials configured, proceeding unauthenticated")
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format; color only when stderr is a terminal
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// versionCmd prints build information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	// Version printing needs no config or server connection.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("jellyctl %s (built %s)\n", version, buildTime)
	},
}
