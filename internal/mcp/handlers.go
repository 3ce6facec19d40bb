package mcp

import (
	"context"
	"errors"
	"fmt"

	"prodstats/internal/dashboard"
	"prodstats/internal/ingest"
	"prodstats/internal/stats"
	"prodstats/internal/visuals"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

func (s *Server) source(in LoadDataInput) (ingest.Source, error) {
	switch in.Source {
	case "sample":
		days, ops := in.Days, in.OperationsPerDay
		if days < 0 || days > ingest.MaxSampleDays {
			return nil, fmt.Errorf("days must be between 1 and %d", ingest.MaxSampleDays)
		}
		if ops < 0 || ops > ingest.MaxSampleOperationsPerDay {
			return nil, fmt.Errorf("operations_per_day must be between 1 and %d", ingest.MaxSampleOperationsPerDay)
		}
		if days == 0 {
			days = s.cfg.SampleDays
		}
		if ops == 0 {
			ops = s.cfg.SampleOperationsPerDay
		}
		return ingest.NewSampleSource(days, ops), nil
	case "file":
		if in.Path == "" {
			return nil, errors.New("path is required when source is file")
		}
		return ingest.FileSource{Path: in.Path}, nil
	case "example":
		return ingest.NewRemoteSource(s.cfg.ExampleDataURL, s.cfg.FetchTimeout), nil
	default:
		return nil, fmt.Errorf("unknown source %q", in.Source)
	}
}

func (s *Server) handleLoadData(ctx context.Context, req *mcp.CallToolRequest, in LoadDataInput) (*mcp.CallToolResult, any, error) {
	src, err := s.source(in)
	if err != nil {
		return errorResult(err), nil, nil
	}
	state, err := s.session.Load(ctx, src)
	if err != nil {
		return errorResult(err), nil, nil
	}
	ov, _ := dashboard.NewOverview(state)
	return textResult(ov), nil, nil
}

func (s *Server) handleDatasetOverview(ctx context.Context, req *mcp.CallToolRequest, _ DatasetOverviewInput) (*mcp.CallToolResult, any, error) {
	ov, ok := dashboard.NewOverview(s.session.State())
	if !ok {
		return errorResult(dashboard.ErrNoData), nil, nil
	}
	return textResult(ov), nil, nil
}

func (s *Server) handleSetView(ctx context.Context, req *mcp.CallToolRequest, in ViewInput) (*mcp.CallToolResult, any, error) {
	state, err := s.session.SetView(in.AnalysisType, in.Granularity, in.Date)
	if err != nil {
		return errorResult(err), nil, nil
	}
	log.Debug().Str("axis", state.Axis.String()).Str("granularity", string(state.Granularity)).Str("date", state.CurrentDate).Msg("View changed")
	return s.viewResult(dashboard.NewView(state)), nil, nil
}

func (s *Server) handleNavigate(ctx context.Context, req *mcp.CallToolRequest, in NavigateInput) (*mcp.CallToolResult, any, error) {
	if !s.session.State().HasData() {
		return errorResult(dashboard.ErrNoData), nil, nil
	}
	var a dashboard.Action
	switch in.Direction {
	case "previous":
		a = dashboard.Previous{}
	case "next":
		a = dashboard.Next{}
	default:
		return errorResult(fmt.Errorf("unknown direction %q", in.Direction)), nil, nil
	}
	return s.viewResult(dashboard.NewView(s.session.Dispatch(a))), nil, nil
}

func (s *Server) handleAnalyze(ctx context.Context, req *mcp.CallToolRequest, in ViewInput) (*mcp.CallToolResult, any, error) {
	res, err := dashboard.Query(s.session.State(), in.AnalysisType, in.Granularity, in.Date)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return textResult(analysis{
		Period:    stats.PeriodLabel(res.DateKey, res.Granularity),
		AxisLabel: res.Axis.Label(),
		HasData:   res.HasData(),
		Result:    res,
	}, s.chart(res)), nil, nil
}

type analysis struct {
	Period    string       `json:"period"`
	AxisLabel string       `json:"axisLabel"`
	HasData   bool         `json:"hasData"`
	Result    stats.Result `json:"result"`
}

func (s *Server) viewResult(v dashboard.View) *mcp.CallToolResult {
	return textResult(v, s.chart(v.Result))
}

func (s *Server) chart(res stats.Result) string {
	if !s.cfg.EnableMermaidCharts {
		return ""
	}
	return visuals.GenerateTotalsChart(res)
}
