package commands

import (
	"fmt"
	"os"

	"prodstats/internal/dashboard"
	"prodstats/internal/session"
	"prodstats/internal/visuals"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	chartSource      string
	chartFile        string
	chartAxis        string
	chartGranularity string
	chartDate        string
	chartOut         string
	chartOpen        bool
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render one period as a standalone HTML chart",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		src, err := sourceFor(cfg, chartSource, chartFile)
		if err != nil {
			return err
		}
		if src == nil {
			return fmt.Errorf("--source is required")
		}

		sess := session.New()
		state, err := sess.Load(ctx, src)
		if err != nil {
			return err
		}
		res, err := dashboard.Query(state, chartAxis, chartGranularity, chartDate)
		if err != nil {
			return err
		}

		f, err := os.Create(chartOut)
		if err != nil {
			return err
		}
		if err := visuals.RenderHTML(f, res, state.Dataset.Operations); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		log.Info().Str("path", chartOut).Str("period", dashboard.NewView(state).Period).Msg("Chart written")
		fmt.Fprintln(cmd.OutOrStdout(), chartOut)

		if chartOpen {
			return browser.OpenFile(chartOut)
		}
		return nil
	},
}

func init() {
	chartCmd.Flags().StringVar(&chartSource, "source", "sample", "data source: sample, file or example")
	chartCmd.Flags().StringVar(&chartFile, "file", "", "workbook path for --source file")
	chartCmd.Flags().StringVar(&chartAxis, "axis", "operator", "analysis type: operator, trim, carpetType, carpetColour or source")
	chartCmd.Flags().StringVar(&chartGranularity, "granularity", "daily", "daily, weekly or weeklyPerDay")
	chartCmd.Flags().StringVar(&chartDate, "date", "", "period date (YYYY-MM-DD); defaults to the first available date")
	chartCmd.Flags().StringVar(&chartOut, "out", "prodstats-chart.html", "output HTML file")
	chartCmd.Flags().BoolVar(&chartOpen, "open", false, "open the chart in the default browser")
}
