package commands

import (
	"time"

	"prodstats/internal/session"
	"prodstats/internal/web"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	serveOpen   bool
	serveSource string
	serveFile   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard JSON API and chart pages over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		sess := session.New()
		src, err := sourceFor(cfg, serveSource, serveFile)
		if err != nil {
			return err
		}
		if src != nil {
			if _, err := sess.Load(ctx, src); err != nil {
				return err
			}
		}

		srv := web.NewServer(cfg, sess)
		if serveOpen {
			url := "http://" + srv.Addr() + "/charts"
			time.AfterFunc(500*time.Millisecond, func() {
				if err := browser.OpenURL(url); err != nil {
					log.Warn().Err(err).Str("url", url).Msg("Failed to open browser")
				}
			})
		}
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveOpen, "open", false, "open the chart page in the default browser")
	serveCmd.Flags().StringVar(&serveSource, "source", "", "preload data: sample, file or example")
	serveCmd.Flags().StringVar(&serveFile, "file", "", "workbook path for --source file")
}
