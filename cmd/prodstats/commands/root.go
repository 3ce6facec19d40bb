package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"prodstats/internal/config"
	"prodstats/internal/logging"
	"prodstats/internal/mcp"
	"prodstats/internal/session"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "prodstats",
	Short: "prodstats aggregates production logs by operator, trim, carpet and sales channel",
	Long: `An MCP Server and dashboard that loads production log spreadsheets and counts completed
operations per category over daily, weekly and per-day-of-week windows.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// The terminal UI owns the screen, so it only logs to the file.
		logging.Init(logging.Options{Verbose: verbose, Console: cmd.Name() != tuiCmd.Name()})

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Str("command", cmd.Name()).
			Msg("prodstats starting")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()
		return mcp.NewServer(cfg, session.New(), Version).Run(ctx)
	},
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.AddCommand(serveCmd, chartCmd, tuiCmd)
}
