// Package web serves the dashboard as a JSON API and as rendered chart pages.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"prodstats/internal/config"
	"prodstats/internal/session"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

// Server is a thin wrapper over chi and http.Server.
type Server struct {
	cfg     *config.AppConfig
	session *session.Session
	mux     *chi.Mux
	srv     *http.Server
}

// NewServer creates the HTTP server and mounts every route.
func NewServer(cfg *config.AppConfig, sess *session.Session) *Server {
	s := &Server{cfg: cfg, session: sess, mux: chi.NewRouter()}
	s.routes()
	s.srv = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the root handler, e.g. for httptest.
func (s *Server) Handler() http.Handler { return s.mux }

// Addr returns the listening address.
func (s *Server) Addr() string { return s.cfg.HTTPAddr }

// Run starts the server and blocks until ctx is cancelled or the listener fails.
func (s *Server) Run(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.cfg.HTTPAddr).Msg("HTTP server listening")
		errc <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info().Msg("HTTP server shutting down")
		return s.srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) routes() {
	m := s.mux
	m.Use(chimw.RealIP, chimw.RequestID, chimw.Recoverer, requestLogger)
	if len(s.cfg.CORSAllowedOrigins) > 0 {
		m.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.cfg.CORSAllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			MaxAge:         300,
		}))
	}
	m.Use(chimw.Heartbeat("/healthz"))

	m.Route("/api", func(r chi.Router) {
		r.Use(chimw.Timeout(time.Minute), chimw.NoCache)
		r.Get("/state", s.handleState)
		r.Get("/dataset", s.handleDataset)
		r.Get("/aggregate", s.handleAggregate)
		r.Post("/load/sample", s.handleLoadSample)
		r.Post("/load/example", s.handleLoadExample)
		r.Post("/load/file", s.handleLoadFile)
		r.Post("/view", s.handleSetView)
		r.Post("/navigate/{direction}", s.handleNavigate)
	})
	m.Get("/charts", s.handleCharts)
}

// requestLogger logs one line per request on the global zerolog logger.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("requestId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("HTTP request")
	})
}
