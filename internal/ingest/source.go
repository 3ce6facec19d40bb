package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"prodstats/internal/sample"
	"prodstats/internal/stats"

	"github.com/rs/zerolog/log"
)

// Source yields the fully materialised rows of one load.
type Source interface {
	// Name identifies the load for display and for coalescing concurrent loads.
	Name() string
	Rows(ctx context.Context) ([]stats.RawRow, error)
}

// FileSource reads a workbook from disk.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return filepath.Base(s.Path) }

func (s FileSource) Rows(ctx context.Context) ([]stats.RawRow, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read the file: %w: %w", ErrMalformedSource, err)
	}
	defer f.Close()

	rows, err := ReadWorkbook(f)
	if err != nil {
		return nil, fmt.Errorf("failed to process Excel file: %w", err)
	}
	return rows, nil
}

// UploadSource decodes workbook bytes already received, e.g. from a multipart upload.
type UploadSource struct {
	FileName string
	Data     []byte
}

func (s UploadSource) Name() string { return s.FileName }

func (s UploadSource) Rows(ctx context.Context) ([]stats.RawRow, error) {
	rows, err := ReadWorkbook(bytes.NewReader(s.Data))
	if err != nil {
		return nil, fmt.Errorf("failed to process Excel file: %w", err)
	}
	return rows, nil
}

// RemoteSource downloads the example workbook over HTTP.
type RemoteSource struct {
	URL    string
	Client *http.Client
}

// NewRemoteSource creates a source with a bounded client timeout.
func NewRemoteSource(url string, timeout time.Duration) RemoteSource {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return RemoteSource{URL: url, Client: &http.Client{Timeout: timeout}}
}

func (s RemoteSource) Name() string { return "Example Data" }

func (s RemoteSource) Rows(ctx context.Context) ([]stats.RawRow, error) {
	if s.URL == "" {
		return nil, fmt.Errorf("failed to load example data: %w: no example URL configured", ErrMalformedSource)
	}
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load example data: %w", err)
	}

	log.Debug().Str("url", s.URL).Msg("Fetching example workbook")
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to load example data: %w: %w", ErrMalformedSource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to load example data: %w: HTTP error! status: %d", ErrMalformedSource, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to load example data: %w", err)
	}
	rows, err := ReadWorkbook(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to load example data: %w", err)
	}
	return rows, nil
}

// SampleSource generates synthetic rows.
type SampleSource struct {
	Config sample.Config
}

func (s SampleSource) Name() string { return "Generated Sample Data" }

func (s SampleSource) Rows(ctx context.Context) ([]stats.RawRow, error) {
	rows := sample.Generate(s.Config)
	log.Debug().Int("rows", len(rows)).Int("days", s.Config.Days).Msg("Generated sample data")
	return rows, nil
}

// Upper bounds on generated sample data accepted from clients.
const (
	MaxSampleDays             = 366
	MaxSampleOperationsPerDay = 1000
)

// NewSampleSource generates data from the default start date. Non-positive arguments
// keep the defaults.
func NewSampleSource(days, operationsPerDay int) SampleSource {
	cfg := sample.DefaultConfig()
	if days > 0 {
		cfg.Days = days
	}
	if operationsPerDay > 0 {
		cfg.OperationsPerDay = operationsPerDay
	}
	return SampleSource{Config: cfg}
}
