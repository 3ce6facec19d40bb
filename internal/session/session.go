// Package session holds the dashboard state shared by the MCP, HTTP and terminal
// front ends and orchestrates loads into it.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"prodstats/internal/dashboard"
	"prodstats/internal/ingest"
	"prodstats/internal/stats"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// ErrSuperseded is returned by Load when a newer load started before this one finished.
var ErrSuperseded = errors.New("load superseded by a newer load")

// Session is a concurrency-safe holder of a dashboard.State.
type Session struct {
	mu    sync.RWMutex
	state dashboard.State

	loads singleflight.Group
}

// New returns a session in the initial state.
func New() *Session {
	return &Session{state: dashboard.Initial()}
}

// State returns a snapshot of the current state.
func (s *Session) State() dashboard.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch applies an action and returns the resulting state.
func (s *Session) Dispatch(a dashboard.Action) dashboard.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = dashboard.Reduce(s.state, a)
	return s.state
}

// SetView applies a partial view change computed against the current state. It fails
// with dashboard.ErrNoData when nothing is loaded.
func (s *Session) SetView(axis, granularity, date string) (dashboard.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.HasData() {
		return s.state, dashboard.ErrNoData
	}
	actions, err := dashboard.ViewActions(s.state, axis, granularity, date)
	if err != nil {
		return s.state, err
	}
	for _, a := range actions {
		s.state = dashboard.Reduce(s.state, a)
	}
	return s.state, nil
}

// Load reads src, builds a dataset and commits it. Concurrent loads of the same source
// share one read, which outlives the caller that started it; each caller stops
// waiting when its own ctx is done. If another load starts before this one
// completes, the result is discarded and ErrSuperseded is returned.
func (s *Session) Load(ctx context.Context, src ingest.Source) (dashboard.State, error) {
	id := uuid.NewString()
	s.Dispatch(dashboard.StartLoad{LoadID: id, FileName: src.Name()})
	log.Info().Str("loadId", id).Str("source", src.Name()).Msg("Load started")

	ch := s.loads.DoChan(flightKey(src, id), func() (any, error) {
		rows, err := src.Rows(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		return stats.Build(rows)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		res = singleflight.Result{Err: ctx.Err()}
	}
	v, err, shared := res.Val, res.Err, res.Shared
	if err != nil {
		log.Error().Err(err).Str("loadId", id).Msg("Load failed")
		state, ok := s.finish(id, dashboard.LoadFailed{LoadID: id, Err: err.Error()})
		if !ok {
			return state, fmt.Errorf("%w: %w", ErrSuperseded, err)
		}
		return state, err
	}

	ds := v.(*stats.Dataset)
	state, ok := s.finish(id, dashboard.LoadSucceeded{LoadID: id, Dataset: ds})
	if !ok {
		log.Warn().Str("loadId", id).Msg("Discarding superseded load")
		return state, ErrSuperseded
	}
	log.Info().
		Str("loadId", id).
		Bool("shared", shared).
		Int("rows", len(ds.Records)).
		Int("rejected", ds.Rejected).
		Int("dates", len(ds.AvailableDates)).
		Msg("Load committed")
	return state, nil
}

// finish applies a load completion action if id is still the pending load.
func (s *Session) finish(id string, a dashboard.Action) (dashboard.State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.PendingLoad != id {
		return s.state, false
	}
	s.state = dashboard.Reduce(s.state, a)
	return s.state, true
}

// flightKey identifies sources whose reads can be shared. Uploads are never shared.
func flightKey(src ingest.Source, id string) string {
	switch v := src.(type) {
	case ingest.FileSource:
		return "file:" + v.Path
	case ingest.RemoteSource:
		return "remote:" + v.URL
	case ingest.SampleSource:
		return fmt.Sprintf("sample:%+v", v.Config)
	default:
		return "load:" + id
	}
}
