package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/internal/validator"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/go-chi/chi/v5"
)

// DefaultMaxSteps caps runs when WithMaxSteps is not given.
// It is enough for every bundled machine, the 5-state champion included.
const DefaultMaxSteps uint64 = 100_000_000

// maxBodyBytes bounds request bodies carrying table text.
const maxBodyBytes = 1 << 20

// Server exposes machines over a JSON API.
type Server struct {
	loader   ports.TableLoader
	store    ports.ReportStore
	metrics  http.Handler
	observer runner.Observer
	maxSteps uint64
	logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLoader serves named tables from loader. Defaults to the bundled catalog.
func WithLoader(loader ports.TableLoader) Option {
	return func(s *Server) {
		s.loader = loader
	}
}

// WithStore persists run reports and enables the /runs read endpoints.
func WithStore(store ports.ReportStore) Option {
	return func(s *Server) {
		s.store = store
	}
}

// WithMetrics mounts h at GET /metrics and reports runs to observer.
func WithMetrics(h http.Handler, observer runner.Observer) Option {
	return func(s *Server) {
		s.metrics = h
		s.observer = observer
	}
}

// WithMaxSteps caps every run. Requests may ask for less, never more.
// Zero removes the cap.
func WithMaxSteps(n uint64) Option {
	return func(s *Server) {
		s.maxSteps = n
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// TableRequest selects a table either by catalog name or by inline text.
type TableRequest struct {
	Machine string `json:"machine,omitempty"`
	Table   string `json:"table,omitempty"`
}

// RunRequest is the body of POST /runs.
type RunRequest struct {
	TableRequest
	MaxSteps     uint64         `json:"max_steps,omitempty"`
	InitialState string         `json:"initial_state,omitempty"`
	Blank        *domain.Symbol `json:"blank,omitempty"`
	IncludeTape  bool           `json:"include_tape,omitempty"`
}

// RunResponse is returned by POST /runs.
type RunResponse struct {
	Report *domain.Report   `json:"report"`
	Tape   *domain.Snapshot `json:"tape,omitempty"`
}

// MachineInfo describes a catalog table.
type MachineInfo struct {
	Name         string          `json:"name"`
	States       []string        `json:"states"`
	Instructions []domain.Record `json:"instructions"`
	Source       string          `json:"source"`
}

// NewHandler creates the HTTP handler.
func NewHandler(opts ...Option) http.Handler {
	s := &Server{
		loader:   turing.Catalog(),
		maxSteps: DefaultMaxSteps,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Post("/runs", s.CreateRun)
	r.Get("/runs", s.ListRuns)
	r.Get("/runs/{id}", s.GetRun)
	r.Delete("/runs/{id}", s.DeleteRun)

	r.Get("/machines", s.ListMachines)
	r.Get("/machines/{name}", s.GetMachine)
	r.Get("/machines/{name}/graph", s.GetMachineGraph)

	r.Post("/validate", s.Validate)

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CreateRun handles POST /runs.
func (s *Server) CreateRun(w http.ResponseWriter, r *http.Request) {
	var body RunRequest
	if !s.decode(w, r, &body) {
		return
	}

	var opts []turing.Option
	if body.InitialState != "" {
		opts = append(opts, turing.WithInitialState(body.InitialState))
	}
	if body.Blank != nil {
		opts = append(opts, turing.WithBlank(*body.Blank))
	}
	opts = append(opts, turing.WithLogger(s.logger))

	m, status, err := s.compile(body.TableRequest, opts...)
	if err != nil {
		s.fail(w, status, err)
		return
	}

	runOpts := []runner.Option{runner.WithMaxSteps(s.stepBudget(body.MaxSteps))}
	if s.store != nil {
		runOpts = append(runOpts, runner.WithStore(s.store))
	}
	if s.observer != nil {
		runOpts = append(runOpts, runner.WithObserver(s.observer))
	}

	report, err := m.Run(r.Context(), runOpts...)
	if err != nil && report.Status == domain.StatusHalted {
		// Halted, but the report could not be stored.
		s.fail(w, http.StatusInternalServerError, err)
		return
	}

	resp := RunResponse{Report: report}
	if body.IncludeTape {
		snap := m.Snapshot()
		resp.Tape = &snap
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// stepBudget combines the requested limit with the server cap.
func (s *Server) stepBudget(requested uint64) uint64 {
	if s.maxSteps == 0 {
		return requested
	}
	if requested == 0 || requested > s.maxSteps {
		return s.maxSteps
	}
	return requested
}

// ListRuns handles GET /runs.
func (s *Server) ListRuns(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	ids, err := s.store.List(r.Context())
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ids)
}

// GetRun handles GET /runs/{id}.
func (s *Server) GetRun(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	report, err := s.store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, storeStatus(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

// DeleteRun handles DELETE /runs/{id}.
func (s *Server) DeleteRun(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, storeStatus(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListMachines handles GET /machines.
func (s *Server) ListMachines(w http.ResponseWriter, r *http.Request) {
	names, err := s.loader.ListTables()
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, names)
}

// GetMachine handles GET /machines/{name}.
func (s *Server) GetMachine(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	m, status, err := s.compile(TableRequest{Machine: name})
	if err != nil {
		s.fail(w, status, err)
		return
	}
	s.writeJSON(w, http.StatusOK, MachineInfo{
		Name:         name,
		States:       m.Table().States(),
		Instructions: m.Table().Records(),
		Source:       compiler.Format(m.Table().Records()),
	})
}

// GetMachineGraph handles GET /machines/{name}/graph.
func (s *Server) GetMachineGraph(w http.ResponseWriter, r *http.Request) {
	m, status, err := s.compile(TableRequest{Machine: chi.URLParam(r, "name")})
	if err != nil {
		s.fail(w, status, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, graph.GenerateMermaid(m.Table(), nil))
}

// Validate handles POST /validate.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	var body TableRequest
	if !s.decode(w, r, &body) {
		return
	}
	m, status, err := s.compile(body)
	if err != nil {
		s.fail(w, status, err)
		return
	}
	tbl := m.Table()
	s.writeJSON(w, http.StatusOK, validator.Validate(tbl, tbl.Initial(), domain.Blank))
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"app":       "turing-http",
		"version":   turing.Version,
		"max_steps": s.maxSteps,
		"store":     s.store != nil,
	})
}

// compile resolves a TableRequest into a machine, returning the HTTP status to use on failure.
func (s *Server) compile(req TableRequest, opts ...turing.Option) (*turing.Machine, int, error) {
	switch {
	case req.Table != "" && req.Machine != "":
		return nil, http.StatusBadRequest, errors.New("set either machine or table, not both")
	case req.Table != "":
		m, err := turing.Compile(bytes.NewReader([]byte(req.Table)), "inline", opts...)
		if err != nil {
			return nil, http.StatusBadRequest, err
		}
		return m, http.StatusOK, nil
	case req.Machine != "":
		data, err := s.loader.GetTable(req.Machine)
		if err != nil {
			return nil, http.StatusNotFound, err
		}
		m, err := turing.Compile(bytes.NewReader(data), req.Machine, opts...)
		if err != nil {
			return nil, http.StatusUnprocessableEntity, err
		}
		return m, http.StatusOK, nil
	default:
		return nil, http.StatusBadRequest, errors.New("machine or table is required")
	}
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.fail(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.store == nil {
		s.fail(w, http.StatusNotImplemented, errors.New("no report store configured"))
		return false
	}
	return true
}

func storeStatus(err error) int {
	if errors.Is(err, domain.ErrReportNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "status", status, "err", err)
	} else {
		s.logger.Warn("request rejected", "status", status, "err", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}
