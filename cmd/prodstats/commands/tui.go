package commands

import (
	"prodstats/internal/ingest"
	"prodstats/internal/session"
	"prodstats/internal/tui"

	"github.com/spf13/cobra"
)

var (
	tuiSource string
	tuiFile   string
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse production statistics in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		initial, err := sourceFor(cfg, tuiSource, tuiFile)
		if err != nil {
			return err
		}
		sources := tui.Sources{
			Initial: initial,
			Sample:  ingest.NewSampleSource(cfg.SampleDays, cfg.SampleOperationsPerDay),
		}
		if cfg.ExampleDataURL != "" {
			sources.Example = ingest.NewRemoteSource(cfg.ExampleDataURL, cfg.FetchTimeout)
		}
		return tui.Run(ctx, session.New(), sources)
	},
}

func init() {
	tuiCmd.Flags().StringVar(&tuiSource, "source", "sample", "initial data: sample, file, example or none")
	tuiCmd.Flags().StringVar(&tuiFile, "file", "", "workbook path for --source file")
}
