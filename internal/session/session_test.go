package session

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"prodstats/internal/dashboard"
	"prodstats/internal/ingest"
	"prodstats/internal/sample"
	"prodstats/internal/stats"
)

// gatedSource blocks in Rows until release is closed.
type gatedSource struct {
	name    string
	rows    []stats.RawRow
	started chan struct{}
	release chan struct{}
}

func (g *gatedSource) Name() string { return g.name }

func (g *gatedSource) Rows(ctx context.Context) ([]stats.RawRow, error) {
	close(g.started)
	<-g.release
	return g.rows, nil
}

type failingSource struct{ err error }

func (f failingSource) Name() string { return "broken.xlsx" }

func (f failingSource) Rows(context.Context) ([]stats.RawRow, error) { return nil, f.err }

func sampleSource() ingest.SampleSource {
	return ingest.SampleSource{Config: sample.Config{Days: 14, OperationsPerDay: 20, Seed: 3}}
}

func TestLoad_Commits(t *testing.T) {
	s := New()
	state, err := s.Load(context.Background(), sampleSource())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !state.HasData() || state.Loading {
		t.Fatalf("state = %+v", state)
	}
	if state.CurrentDate != state.Dataset.InitialDate {
		t.Errorf("CurrentDate = %s, want %s", state.CurrentDate, state.Dataset.InitialDate)
	}
	if state.FileName != "Generated Sample Data" {
		t.Errorf("FileName = %s", state.FileName)
	}
	if state.LoadID == "" {
		t.Error("LoadID not set")
	}
}

func TestLoad_FailureKeepsDataset(t *testing.T) {
	s := New()
	if _, err := s.Load(context.Background(), sampleSource()); err != nil {
		t.Fatal(err)
	}
	before := s.State().Dataset

	state, err := s.Load(context.Background(), failingSource{err: ingest.ErrMalformedSource})
	if !errors.Is(err, ingest.ErrMalformedSource) {
		t.Fatalf("Load() error = %v, want ErrMalformedSource", err)
	}
	if state.Err == "" || state.Loading {
		t.Errorf("state = %+v", state)
	}
	if state.Dataset != before {
		t.Error("failed load replaced the committed dataset")
	}
}

func TestLoad_EmptyAndUndated(t *testing.T) {
	tests := []struct {
		name string
		rows []stats.RawRow
		want error
	}{
		{"empty", nil, stats.ErrEmptyInput},
		{"no dates", []stats.RawRow{{stats.ColOperatorName: "Alice", stats.ColLastOperation: "pending"}}, stats.ErrNoValidDates},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &gatedSource{name: tt.name, rows: tt.rows, started: make(chan struct{}), release: make(chan struct{})}
			close(src.release)
			_, err := New().Load(context.Background(), src)
			if !errors.Is(err, tt.want) {
				t.Errorf("Load() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoad_Superseded(t *testing.T) {
	s := New()
	slow := &gatedSource{
		name:    "slow.xlsx",
		rows:    sample.Generate(sample.Config{Days: 5, OperationsPerDay: 10, Seed: 1}),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}

	var (
		wg      sync.WaitGroup
		slowErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, slowErr = s.Load(context.Background(), slow)
	}()
	<-slow.started

	state, err := s.Load(context.Background(), sampleSource())
	if err != nil {
		t.Fatalf("second Load() error = %v", err)
	}
	close(slow.release)
	wg.Wait()

	if !errors.Is(slowErr, ErrSuperseded) {
		t.Errorf("first Load() error = %v, want ErrSuperseded", slowErr)
	}
	final := s.State()
	if final.Dataset != state.Dataset || final.FileName != "Generated Sample Data" {
		t.Errorf("superseded load overwrote state: %+v", final)
	}
}

func TestLoad_SharedFetchSurvivesCancelledCaller(t *testing.T) {
	var wb bytes.Buffer
	if err := sample.WriteWorkbook(&wb, sample.Generate(sample.Config{Days: 7, OperationsPerDay: 10, Seed: 2})); err != nil {
		t.Fatalf("WriteWorkbook() error = %v", err)
	}
	hit := make(chan struct{}, 4)
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit <- struct{}{}
		<-release
		_, _ = w.Write(wb.Bytes())
	}))
	defer srv.Close()
	src := ingest.RemoteSource{URL: srv.URL}

	s := New()
	ctxA, cancelA := context.WithCancel(context.Background())
	defer cancelA()

	var errA, errB error
	var stateB dashboard.State
	doneA, doneB := make(chan struct{}), make(chan struct{})
	go func() {
		defer close(doneA)
		_, errA = s.Load(ctxA, src)
	}()
	<-hit
	pendingA := s.State().PendingLoad

	go func() {
		defer close(doneB)
		stateB, errB = s.Load(context.Background(), src)
	}()
	for s.State().PendingLoad == pendingA {
		time.Sleep(time.Millisecond)
	}

	cancelA()
	<-doneA
	close(release)
	<-doneB

	if !errors.Is(errA, context.Canceled) || !errors.Is(errA, ErrSuperseded) {
		t.Errorf("cancelled Load() error = %v, want canceled and superseded", errA)
	}
	if errB != nil {
		t.Fatalf("joined Load() error = %v", errB)
	}
	if !stateB.HasData() || stateB.Loading || stateB.Err != "" {
		t.Errorf("joined load state = %+v", stateB)
	}
}

func TestLoad_CallerCancelled(t *testing.T) {
	s := New()
	slow := &gatedSource{name: "slow.xlsx", started: make(chan struct{}), release: make(chan struct{})}
	defer close(slow.release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-slow.started
		cancel()
	}()
	state, err := s.Load(ctx, slow)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Load() error = %v, want context.Canceled", err)
	}
	if state.Loading || state.Err == "" {
		t.Errorf("state = %+v, want failed load", state)
	}
}

func TestSetView(t *testing.T) {
	s := New()
	if _, err := s.SetView("trim", "", ""); !errors.Is(err, dashboard.ErrNoData) {
		t.Fatalf("SetView() before load error = %v, want ErrNoData", err)
	}
	if _, err := s.Load(context.Background(), sampleSource()); err != nil {
		t.Fatal(err)
	}
	first := s.State().CurrentDate

	state, err := s.SetView("trim", "weekly", first)
	if err != nil {
		t.Fatalf("SetView() error = %v", err)
	}
	want, _ := stats.WeekStartKey(first)
	if state.Axis != stats.AxisTrim || state.Granularity != stats.Weekly || state.CurrentDate != want {
		t.Errorf("SetView() = %s/%s/%s, want trim/weekly/%s", state.Axis, state.Granularity, state.CurrentDate, want)
	}

	if _, err := s.SetView("", "", "2024-02-30"); !errors.Is(err, dashboard.ErrInvalidDate) {
		t.Errorf("SetView(bad date) error = %v, want ErrInvalidDate", err)
	}
	if got := s.State(); got.CurrentDate != want || got.Axis != stats.AxisTrim {
		t.Errorf("rejected SetView changed state: %+v", got)
	}
}

func TestDispatch(t *testing.T) {
	s := New()
	if _, err := s.Load(context.Background(), sampleSource()); err != nil {
		t.Fatal(err)
	}
	first := s.State().CurrentDate

	next := s.Dispatch(dashboard.Next{})
	if next.CurrentDate == first {
		t.Errorf("Next did not move from %s", first)
	}
	prev := s.Dispatch(dashboard.Previous{})
	if prev.CurrentDate != first {
		t.Errorf("Previous = %s, want %s", prev.CurrentDate, first)
	}
	wk := s.Dispatch(dashboard.SetGranularity{Granularity: stats.Weekly})
	if want, _ := stats.WeekStartKey(first); wk.CurrentDate != want {
		t.Errorf("weekly CurrentDate = %s, want %s", wk.CurrentDate, want)
	}
}

func TestFlightKey(t *testing.T) {
	if flightKey(ingest.FileSource{Path: "/a.xlsx"}, "1") != flightKey(ingest.FileSource{Path: "/a.xlsx"}, "2") {
		t.Error("same file should share a flight")
	}
	if flightKey(ingest.UploadSource{FileName: "a.xlsx"}, "1") == flightKey(ingest.UploadSource{FileName: "a.xlsx"}, "2") {
		t.Error("uploads must not share a flight")
	}
}
