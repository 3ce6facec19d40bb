package commands

import (
	"fmt"

	"prodstats/internal/config"
	"prodstats/internal/ingest"
)

// sourceFor resolves the --source/--file flags shared by the subcommands.
func sourceFor(c *config.AppConfig, kind, path string) (ingest.Source, error) {
	switch kind {
	case "sample":
		return ingest.NewSampleSource(c.SampleDays, c.SampleOperationsPerDay), nil
	case "file":
		if path == "" {
			return nil, fmt.Errorf("--file is required with --source file")
		}
		return ingest.FileSource{Path: path}, nil
	case "example":
		if c.ExampleDataURL == "" {
			return nil, fmt.Errorf("EXAMPLE_DATA_URL is not configured")
		}
		return ingest.NewRemoteSource(c.ExampleDataURL, c.FetchTimeout), nil
	case "", "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown source %q (want sample, file or example)", kind)
	}
}
