package mcp

import (
	"prodstats/internal/ingest"
	"prodstats/internal/stats"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

type LoadDataInput struct {
	Source           string `json:"source" jsonschema:"where to load from: generated sample data, a local .xlsx file or the remote example workbook"`
	Path             string `json:"path,omitempty" jsonschema:"path of the .xlsx file when source is file"`
	Days             int    `json:"days,omitempty" jsonschema:"calendar days of sample data, weekends are skipped"`
	OperationsPerDay int    `json:"operations_per_day,omitempty" jsonschema:"average operations per business day of sample data"`
}

type DatasetOverviewInput struct{}

type ViewInput struct {
	AnalysisType string `json:"analysis_type,omitempty" jsonschema:"category axis the counts are grouped by"`
	Granularity  string `json:"granularity,omitempty" jsonschema:"time window: one day, one week, or one week split per day"`
	Date         string `json:"date,omitempty" jsonschema:"period date as YYYY-MM-DD; weekly views use the start of its week"`
}

type NavigateInput struct {
	Direction string `json:"direction" jsonschema:"step to the previous or next period with data"`
}

var granularityNames = func() []any {
	out := []any{}
	for _, g := range stats.Granularities() {
		out = append(out, string(g))
	}
	return out
}()

var axisNames = func() []any {
	out := []any{}
	for _, n := range stats.AxisNames() {
		out = append(out, n)
	}
	return out
}()

// schemaFor infers the input schema of T and restricts the named properties to enums.
func schemaFor[T any](enums map[string][]any) *jsonschema.Schema {
	schema, err := jsonschema.For[T](nil)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to infer tool input schema")
	}
	for prop, values := range enums {
		if p, ok := schema.Properties[prop]; ok {
			p.Enum = values
		}
	}
	return schema
}

// withRange bounds integer properties of schema to [0, max]; 0 means unset.
func withRange(schema *jsonschema.Schema, bounds map[string]int) *jsonschema.Schema {
	for prop, hi := range bounds {
		if p, ok := schema.Properties[prop]; ok {
			lo, hi := 0.0, float64(hi)
			p.Minimum, p.Maximum = &lo, &hi
		}
	}
	return schema
}

func (s *Server) registerTools() {
	viewEnums := map[string][]any{"analysis_type": axisNames, "granularity": granularityNames}

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name: "load_data",
		Description: "Load production log data. Replaces the current dataset and resets the view to the first " +
			"available day. Rows whose LastOperation has no date are skipped and counted as rejected.",
		InputSchema: withRange(schemaFor[LoadDataInput](map[string][]any{"source": {"sample", "file", "example"}}), map[string]int{
			"days":               ingest.MaxSampleDays,
			"operations_per_day": ingest.MaxSampleOperationsPerDay,
		}),
	}, s.handleLoadData)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "dataset_overview",
		Description: "Summarise the loaded dataset: row counts, category values per axis, and the available dates and weeks.",
		InputSchema: schemaFor[DatasetOverviewInput](nil),
	}, s.handleDatasetOverview)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name: "set_view",
		Description: "Change the dashboard view (category axis, time granularity and/or period) and return the " +
			"aggregated counts per category and operation for the new view.",
		InputSchema: schemaFor[ViewInput](viewEnums),
	}, s.handleSetView)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "navigate",
		Description: "Move to the previous or next period that has data and return its aggregated counts.",
		InputSchema: schemaFor[NavigateInput](map[string][]any{"direction": {"previous", "next"}}),
	}, s.handleNavigate)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name: "analyze",
		Description: "Aggregate counts per category and operation for a period without changing the dashboard view. " +
			"Omitted arguments default to the current view.",
		InputSchema: schemaFor[ViewInput](viewEnums),
	}, s.handleAnalyze)
}
