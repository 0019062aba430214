// Package http exposes norm inference over a JSON API.
//
// Requests to the /v1 routes are validated against the embedded OpenAPI
// document before they reach a handler. Persistent suites live in a
// ports.SuiteStore behind a session.Manager, so replicas sharing a
// ports.DistributedLocker never interleave updates on the same suite.
package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/normsuite"
	"github.com/aretw0/normsuite/pkg/adapters/memory"
	"github.com/aretw0/normsuite/pkg/domain"
	"github.com/aretw0/normsuite/pkg/ports"
	"github.com/aretw0/normsuite/pkg/scenario"
	"github.com/aretw0/normsuite/pkg/session"
)

//go:embed openapi.yaml
var rawSpec []byte

// DefaultLockTTL bounds how long a single suite update may hold its lock.
const DefaultLockTTL = session.DefaultLockTTL

// Config wires the server dependencies. Zero values fall back to in-process
// defaults: a memory store and locker, the default Prometheus gatherer and
// slog.Default().
type Config struct {
	Store    ports.SuiteStore
	Locker   ports.DistributedLocker
	Logger   *slog.Logger
	Gatherer prometheus.Gatherer
	LockTTL  time.Duration
	// Options are applied to every suite the server creates or restores.
	Options []normsuite.Option
}

// Server holds the handlers of the API.
type Server struct {
	suites  *session.Manager
	logger  *slog.Logger
	options []normsuite.Option
}

// NewHandler creates the HTTP handler for the API.
func NewHandler(cfg Config) (http.Handler, error) {
	router, err := loadRouter()
	if err != nil {
		return nil, err
	}

	s := &Server{
		logger:  cfg.Logger,
		options: cfg.Options,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	store := cfg.Store
	if store == nil {
		store = memory.NewStore()
	}
	locker := cfg.Locker
	if locker == nil {
		locker = memory.NewLocker()
	}
	s.suites = session.NewManager(store,
		session.WithLocker(locker),
		session.WithLockTTL(cfg.LockTTL),
		session.WithLogger(s.logger),
	)
	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.Health)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Use(validateRequests(router, s.logger))
		r.Post("/infer", s.Infer)
		r.Post("/suites", s.CreateSuite)
		r.Post("/suites/{id}/observations", s.Observe)
		r.Get("/suites/{id}/top", s.Top)
	})

	return r, nil
}

func loadRouter() (routers.Router, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi document: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}
	return legacy.NewRouter(doc)
}

// SuiteStatus is the response of the suite endpoints.
type SuiteStatus struct {
	ID           string           `json:"id"`
	Observations int              `json:"observations"`
	Requested    int              `json:"requested,omitempty"`
	Effective    int              `json:"effective,omitempty"`
	Top          []domain.Scored  `json:"top,omitempty"`
	Skipped      []normsuite.Skip `json:"skipped,omitempty"`
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": strings.TrimSpace(normsuite.Version),
	})
}

// Infer handles POST /v1/infer.
func (s *Server) Infer(w http.ResponseWriter, r *http.Request) {
	top, err := queryInt(r, "top")
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	sc, ok := s.readScenario(w, r)
	if !ok {
		return
	}

	opts := s.suiteOptions()
	if top != nil {
		opts = append(opts, normsuite.WithTop(*top))
	}
	report, err := normsuite.Infer(r.Context(), sc, opts...)
	if err != nil {
		s.fail(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// CreateSuite handles POST /v1/suites.
func (s *Server) CreateSuite(w http.ResponseWriter, r *http.Request) {
	sc, ok := s.readScenario(w, r)
	if !ok {
		return
	}
	traces, err := sc.ParseTraces()
	if err != nil {
		s.fail(w, http.StatusUnprocessableEntity, err)
		return
	}

	skips := &skipCollector{}
	suite, err := normsuite.FromScenario(sc, append(s.suiteOptions(), skips.option())...)
	if err != nil {
		s.fail(w, statusFor(err), err)
		return
	}
	if err := suite.UpdateMany(r.Context(), traces); err != nil {
		s.fail(w, statusFor(err), err)
		return
	}

	id := uuid.NewString()
	if err := s.suites.Save(r.Context(), id, suite.Snapshot()); err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	s.logger.Info("suite created", "suite_id", id, "hypotheses", len(suite.Normalized()), "observations", len(traces))

	writeJSON(w, http.StatusCreated, SuiteStatus{
		ID:           id,
		Observations: len(traces),
		Skipped:      skips.list(),
	})
}

type observationsRequest struct {
	Traces []string `json:"traces"`
}

// Observe handles POST /v1/suites/{id}/observations.
func (s *Server) Observe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body observationsRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.fail(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	traces := make([]domain.Trace, 0, len(body.Traces))
	for i, raw := range body.Traces {
		t, err := domain.ParseTraceString(raw)
		if err != nil {
			s.fail(w, http.StatusUnprocessableEntity, fmt.Errorf("trace %d: %w", i, err))
			return
		}
		traces = append(traces, t)
	}

	skips := &skipCollector{}
	snap, err := s.suites.Update(r.Context(), id, func(ctx context.Context, current *domain.Snapshot) (*domain.Snapshot, error) {
		suite, err := normsuite.Restore(current, s.suiteOptions(skips.option())...)
		if err != nil {
			return nil, err
		}
		if err := suite.UpdateMany(ctx, traces); err != nil {
			return nil, err
		}
		return suite.Snapshot(), nil
	})
	if err != nil {
		s.fail(w, statusFor(err), err)
		return
	}
	s.logger.Debug("suite updated", "suite_id", id, "traces", len(traces), "observations", snap.Observations)

	writeJSON(w, http.StatusOK, SuiteStatus{
		ID:           id,
		Observations: snap.Observations,
		Skipped:      skips.list(),
	})
}

// Top handles GET /v1/suites/{id}/top.
func (s *Server) Top(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	n, err := queryInt(r, "n")
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	requested := scenario.DefaultTop
	if n != nil {
		requested = *n
	}

	suite, err := s.restore(r.Context(), id)
	if err != nil {
		s.fail(w, statusFor(err), err)
		return
	}
	best, effective := suite.MostProbable(requested)
	writeJSON(w, http.StatusOK, SuiteStatus{
		ID:           id,
		Observations: suite.Snapshot().Observations,
		Requested:    requested,
		Effective:    effective,
		Top:          best,
	})
}

func (s *Server) suiteOptions(extra ...normsuite.Option) []normsuite.Option {
	opts := append([]normsuite.Option{normsuite.WithLogger(s.logger)}, s.options...)
	return append(opts, extra...)
}

func (s *Server) restore(ctx context.Context, id string, extra ...normsuite.Option) (*normsuite.Suite, error) {
	snap, err := s.suites.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return normsuite.Restore(snap, s.suiteOptions(extra...)...)
}

func (s *Server) readScenario(w http.ResponseWriter, r *http.Request) (*scenario.Scenario, bool) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		s.fail(w, http.StatusBadRequest, fmt.Errorf("failed to read body: %w", err))
		return nil, false
	}
	sc, err := scenario.Parse(data, "json")
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return nil, false
	}
	if err := sc.Validate(); err != nil {
		s.fail(w, http.StatusUnprocessableEntity, err)
		return nil, false
	}
	return sc, true
}

func (s *Server) fail(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "status", status, "error", err)
	} else {
		s.logger.Warn("request rejected", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// statusFor maps domain failures onto response codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSuiteNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrLockUnavailable),
		errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrMalformedTrace),
		errors.Is(err, domain.ErrInvalidHypothesis),
		errors.Is(err, domain.ErrInvalidParams),
		errors.Is(err, domain.ErrNoPlan),
		errors.Is(err, domain.ErrNoExplanation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// skipCollector records skipped evidence reported through lifecycle hooks.
type skipCollector struct {
	mu    sync.Mutex
	skips []normsuite.Skip
}

func (c *skipCollector) option() normsuite.Option {
	return normsuite.WithLifecycleHooks(domain.LifecycleHooks{
		OnEvidenceSkipped: func(_ context.Context, e *domain.SkipEvent) {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.skips = append(c.skips, normsuite.Skip{Trace: e.Trace.String(), Evidence: e.Evidence, Reason: e.Err.Error()})
		},
	})
}

func (c *skipCollector) list() []normsuite.Skip {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]normsuite.Skip(nil), c.skips...)
}
