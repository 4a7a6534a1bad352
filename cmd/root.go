package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// Global flags
var (
	logLevel     string
	logFile      string
	outputFormat string
	outputWidth  int
	maxPages     int
	tokenFlag    string
	baseURLFlag  string
)

// logger is set up before any command runs
var logger = zerolog.Nop()

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dzr",
	Short: "Command-line client for the Deezer API",
	Long: `dzr is a command-line client for the Deezer catalog API.

It reads albums, artists, tracks, playlists, podcasts, charts and users,
follows paginated collections, manages your library when authenticated,
and can export whole collections to a local SQLite archive.

Identifiers can be given as bare ids or as deezer.com links:

  dzr album 302127 tracks
  dzr album https://www.deezer.com/en/album/302127 tracks

Run 'dzr auth' once to authorize dzr against your Deezer account.`,
	Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load .env file if present, so DEEZER_* variables can live next to a project
		_ = godotenv.Load()

		logger = setupLogger(logFile, logLevel)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flags.StringVar(&logFile, "log-file", "", "Log file path (default: stderr)")
	flags.StringVarP(&outputFormat, "output", "o", "", "Output format: json or table (overrides config)")
	flags.IntVarP(&outputWidth, "width", "w", 0, "Fixed title column width in table output (overrides config)")
	flags.IntVar(&maxPages, "pages", 1, "Number of pages to print for paginated results (0 = all)")
	flags.StringVar(&tokenFlag, "token", "", "Access token to use instead of the saved one")
	flags.StringVar(&baseURLFlag, "base-url", "", "Deezer API base URL (overrides config)")
}

// setupLogger creates a logger with the specified configuration
func setupLogger(logFile, logLevel string) zerolog.Logger {
	level := zerolog.WarnLevel
	switch logLevel {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	var output *os.File
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			output = os.Stderr
		} else {
			output = f
		}
	} else {
		output = os.Stderr
	}

	logger := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()

	// Use pretty console output if logging to stderr
	if output == os.Stderr {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	return logger
}
