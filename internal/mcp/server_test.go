package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"prodstats/internal/config"
	"prodstats/internal/dashboard"
	"prodstats/internal/sample"
	"prodstats/internal/session"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		SampleDays:             14,
		SampleOperationsPerDay: 20,
	}
}

// connect starts the server on in-memory transports and returns a client session.
func connect(t *testing.T, cfg *config.AppConfig) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	s := NewServer(cfg, session.New(), "test")

	serverT, clientT := mcp.NewInMemoryTransports()
	ss, err := s.Connect(ctx, serverT)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	t.Cleanup(func() { _ = ss.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "test"}, nil)
	cs, err := client.Connect(ctx, clientT, nil)
	if err != nil {
		t.Fatalf("client Connect() error = %v", err)
	}
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

func call(t *testing.T, cs *mcp.ClientSession, name string, args map[string]any) (string, bool) {
	t.Helper()
	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		t.Fatalf("CallTool(%s) error = %v", name, err)
	}
	if len(res.Content) == 0 {
		t.Fatalf("CallTool(%s) returned no content", name)
	}
	text, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("CallTool(%s) content = %T, want *mcp.TextContent", name, res.Content[0])
	}
	return text.Text, res.IsError
}

func decodeView(t *testing.T, text string) dashboard.View {
	t.Helper()
	var v dashboard.View
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		t.Fatalf("unmarshal view: %v\n%s", err, text)
	}
	return v
}

func TestListTools(t *testing.T) {
	cs := connect(t, testConfig())
	res, err := cs.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListTools() error = %v", err)
	}
	want := map[string]bool{"load_data": true, "dataset_overview": true, "set_view": true, "navigate": true, "analyze": true}
	for _, tool := range res.Tools {
		delete(want, tool.Name)
	}
	if len(want) != 0 {
		t.Errorf("missing tools: %v", want)
	}
}

func TestLoadData_SampleBounds(t *testing.T) {
	cs := connect(t, testConfig())
	res, err := cs.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListTools() error = %v", err)
	}
	for _, tool := range res.Tools {
		if tool.Name != "load_data" {
			continue
		}
		b, err := json.Marshal(tool.InputSchema)
		if err != nil {
			t.Fatal(err)
		}
		var schema struct {
			Properties map[string]struct {
				Maximum *float64 `json:"maximum"`
			} `json:"properties"`
		}
		if err := json.Unmarshal(b, &schema); err != nil {
			t.Fatal(err)
		}
		for prop, want := range map[string]float64{"days": 366, "operations_per_day": 1000} {
			if got := schema.Properties[prop].Maximum; got == nil || *got != want {
				t.Errorf("%s maximum = %v, want %v", prop, got, want)
			}
		}
	}

	s := NewServer(testConfig(), session.New(), "test")
	tests := []struct {
		name    string
		in      LoadDataInput
		wantErr bool
	}{
		{"defaults", LoadDataInput{Source: "sample"}, false},
		{"in range", LoadDataInput{Source: "sample", Days: 366, OperationsPerDay: 1000}, false},
		{"too many days", LoadDataInput{Source: "sample", Days: 1_000_000_000}, true},
		{"too many operations", LoadDataInput{Source: "sample", OperationsPerDay: 1001}, true},
		{"negative days", LoadDataInput{Source: "sample", Days: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.source(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("source(%+v) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
		})
	}
}

func TestTools_BeforeLoad(t *testing.T) {
	cs := connect(t, testConfig())
	for _, name := range []string{"dataset_overview", "set_view", "analyze"} {
		text, isErr := call(t, cs, name, map[string]any{})
		if !isErr || !strings.Contains(text, "no data loaded") {
			t.Errorf("%s before load = %q (isError %v)", name, text, isErr)
		}
	}
}

func TestTools_SampleWorkflow(t *testing.T) {
	cs := connect(t, testConfig())

	text, isErr := call(t, cs, "load_data", map[string]any{"source": "sample"})
	if isErr {
		t.Fatalf("load_data error: %s", text)
	}
	var ov dashboard.Overview
	if err := json.Unmarshal([]byte(text), &ov); err != nil {
		t.Fatal(err)
	}
	if ov.Rows == 0 || ov.FirstDate != "2024-06-03" || ov.FileName != "Generated Sample Data" {
		t.Errorf("overview = %+v", ov)
	}

	text, isErr = call(t, cs, "navigate", map[string]any{"direction": "next"})
	if isErr {
		t.Fatalf("navigate error: %s", text)
	}
	if v := decodeView(t, text); v.State.CurrentDate != "2024-06-04" || !v.CanPrevious || !v.HasData {
		t.Errorf("after next: date %s canPrevious %v hasData %v", v.State.CurrentDate, v.CanPrevious, v.HasData)
	}

	text, isErr = call(t, cs, "set_view", map[string]any{"analysis_type": "source", "granularity": "weeklyPerDay"})
	if isErr {
		t.Fatalf("set_view error: %s", text)
	}
	v := decodeView(t, text)
	if v.State.CurrentDate != "2024-06-03" || len(v.Result.Days) != 7 {
		t.Errorf("weeklyPerDay view: date %s days %d", v.State.CurrentDate, len(v.Result.Days))
	}

	text, isErr = call(t, cs, "analyze", map[string]any{"analysis_type": "trim", "granularity": "daily", "date": "2024-06-08"})
	if isErr {
		t.Fatalf("analyze error: %s", text)
	}
	if !strings.Contains(text, `"hasData": false`) {
		t.Errorf("weekend analysis should have no data:\n%s", text)
	}
}

func TestTools_InvalidArguments(t *testing.T) {
	cs := connect(t, testConfig())
	if _, isErr := call(t, cs, "load_data", map[string]any{"source": "sample"}); isErr {
		t.Fatal("load_data failed")
	}

	tests := []struct {
		name string
		tool string
		args map[string]any
	}{
		{"file without path", "load_data", map[string]any{"source": "file"}},
		{"missing file", "load_data", map[string]any{"source": "file", "path": "/does/not/exist.xlsx"}},
		{"bad date", "set_view", map[string]any{"date": "2024-13-01"}},
		{"impossible date", "analyze", map[string]any{"date": "2024-02-30"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if text, isErr := call(t, cs, tt.tool, tt.args); !isErr {
				t.Errorf("%s(%v) = %q, want tool error", tt.tool, tt.args, text)
			}
		})
	}

	// A failed load keeps the committed dataset.
	if text, isErr := call(t, cs, "dataset_overview", map[string]any{}); isErr {
		t.Errorf("dataset_overview after failed load: %s", text)
	}
}

func TestTools_ExampleSourceAndMermaid(t *testing.T) {
	var buf bytes.Buffer
	if err := sample.WriteWorkbook(&buf, sample.Generate(sample.Config{Days: 7, OperationsPerDay: 15, Seed: 4})); err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(buf.Bytes())
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.ExampleDataURL = srv.URL + "/ExportedProcessing.xlsx"
	cfg.EnableMermaidCharts = true
	cs := connect(t, cfg)

	text, isErr := call(t, cs, "load_data", map[string]any{"source": "example"})
	if isErr || !strings.Contains(text, `"fileName": "Example Data"`) {
		t.Fatalf("load_data example = %s", text)
	}

	text, _ = call(t, cs, "analyze", map[string]any{})
	if !strings.Contains(text, "```mermaid") {
		t.Errorf("analyze with mermaid enabled:\n%s", text)
	}
}
