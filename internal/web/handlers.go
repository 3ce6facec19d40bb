package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"prodstats/internal/dashboard"
	"prodstats/internal/ingest"
	"prodstats/internal/session"
	"prodstats/internal/stats"
	"prodstats/internal/visuals"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const maxUploadBytes = 32 << 20

type viewRequest struct {
	AnalysisType string `json:"analysis_type" validate:"omitempty,oneof=operator trim carpetType carpetColour source"`
	Granularity  string `json:"granularity" validate:"omitempty,oneof=daily weekly weeklyPerDay"`
	Date         string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type sampleRequest struct {
	Days             int `json:"days" validate:"omitempty,min=1,max=366"`
	OperationsPerDay int `json:"operations_per_day" validate:"omitempty,min=1,max=1000"`
}

type navigateRequest struct {
	Direction string `validate:"required,oneof=previous next"`
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, stats.ErrUnknownAxis),
		errors.Is(err, stats.ErrUnknownGranularity),
		errors.Is(err, dashboard.ErrInvalidDate):
		return http.StatusBadRequest
	case errors.Is(err, dashboard.ErrNoData), errors.Is(err, session.ErrSuperseded):
		return http.StatusConflict
	case errors.Is(err, stats.ErrEmptyInput),
		errors.Is(err, stats.ErrNoValidDates),
		errors.Is(err, ingest.ErrMalformedSource):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dashboard.NewView(s.session.State()))
}

func (s *Server) handleDataset(w http.ResponseWriter, r *http.Request) {
	ov, ok := dashboard.NewOverview(s.session.State())
	if !ok {
		writeError(w, http.StatusConflict, dashboard.ErrNoData)
		return
	}
	writeJSON(w, http.StatusOK, ov)
}

func (s *Server) viewQuery(r *http.Request) (viewRequest, error) {
	q := r.URL.Query()
	req := viewRequest{
		AnalysisType: q.Get("analysis_type"),
		Granularity:  q.Get("granularity"),
		Date:         q.Get("date"),
	}
	return req, check(req)
}

func (s *Server) handleAggregate(w http.ResponseWriter, r *http.Request) {
	req, err := s.viewQuery(r)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	res, err := dashboard.Query(s.session.State(), req.AnalysisType, req.Granularity, req.Date)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) load(w http.ResponseWriter, r *http.Request, src ingest.Source, fetchFailure int) {
	state, err := s.session.Load(r.Context(), src)
	if err != nil {
		status := statusFor(err)
		if fetchFailure != 0 && errors.Is(err, ingest.ErrMalformedSource) {
			status = fetchFailure
		}
		writeError(w, status, err)
		return
	}
	ov, _ := dashboard.NewOverview(state)
	writeJSON(w, http.StatusOK, ov)
}

func (s *Server) handleLoadSample(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[sampleRequest](r)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	days, ops := req.Days, req.OperationsPerDay
	if days == 0 {
		days = s.cfg.SampleDays
	}
	if ops == 0 {
		ops = s.cfg.SampleOperationsPerDay
	}
	s.load(w, r, ingest.NewSampleSource(days, ops), 0)
}

func (s *Server) handleLoadExample(w http.ResponseWriter, r *http.Request) {
	s.load(w, r, ingest.NewRemoteSource(s.cfg.ExampleDataURL, s.cfg.FetchTimeout), http.StatusBadGateway)
}

func (s *Server) handleLoadFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: multipart field \"file\" is required", errBadRequest))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	log.Debug().Str("file", header.Filename).Int("bytes", len(data)).Msg("Received upload")
	s.load(w, r, ingest.UploadSource{FileName: header.Filename, Data: data}, 0)
}

func (s *Server) handleSetView(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[viewRequest](r)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	state, err := s.session.SetView(req.AnalysisType, req.Granularity, req.Date)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard.NewView(state))
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	req := navigateRequest{Direction: chi.URLParam(r, "direction")}
	if err := check(req); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	if !s.session.State().HasData() {
		writeError(w, http.StatusConflict, dashboard.ErrNoData)
		return
	}
	var a dashboard.Action = dashboard.Next{}
	if req.Direction == "previous" {
		a = dashboard.Previous{}
	}
	writeJSON(w, http.StatusOK, dashboard.NewView(s.session.Dispatch(a)))
}

// handleCharts renders the current view, or the view selected by the query string,
// as an HTML chart page.
func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	req, err := s.viewQuery(r)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	state := s.session.State()
	res, err := dashboard.Query(state, req.AnalysisType, req.Granularity, req.Date)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := visuals.RenderHTML(w, res, state.Dataset.Operations); err != nil {
		log.Error().Err(err).Msg("Failed to render chart page")
	}
}
