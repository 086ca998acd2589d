package server

import (
	"encoding/json"
	"io"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/mwinkler/spesen/pkg/config"
	"github.com/mwinkler/spesen/pkg/importer"
	"github.com/mwinkler/spesen/pkg/store"
)

// Server exposes the reconciliation engine over HTTP: upload both exports,
// get back the merged movements plus the import log as JSON.
type Server struct {
	config   *config.Config
	logger   *log.Logger
	mux      *http.ServeMux
	importer *importer.Importer
	store    *store.Store

	// Imports against the same store must not interleave.
	importMu sync.Mutex
}

// New creates a new HTTP server.
func New(cfg *config.Config, logger *log.Logger) *Server {
	s := &Server{
		config:   cfg,
		logger:   logger,
		mux:      http.NewServeMux(),
		importer: importer.New(logger),
		store:    store.New(cfg.Store),
	}
	s.setupRoutes()
	return s
}

// Handler returns the configured route handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the HTTP server.
func (s *Server) Start(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/import", s.withLogging(s.handleImport))
	s.mux.HandleFunc("/api/movements", s.withLogging(s.handleMovements))
	s.mux.HandleFunc("/api/config", s.withLogging(s.handleConfig))
}

func (s *Server) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.logger.Info("request", "method", r.Method, "path", r.URL.Path)
		next(w, r)
	}
}

// handleImport runs one reconciliation pass over the uploaded dispo and
// time files. The merged set is persisted unless dry_run is set or the
// pass reported failure; either way the caller gets the full preview.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	dispoData, _, err := s.formFile(r, "dispo")
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "dispo file required", err)
		return
	}
	timeData, timeName, err := s.formFile(r, "time")
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "time file required", err)
		return
	}
	dryRun := r.FormValue("dry_run") == "true"

	s.importMu.Lock()
	defer s.importMu.Unlock()

	existing, err := s.store.Load()
	if err != nil {
		s.respondError(w, r, http.StatusInternalServerError, "failed to load store", err)
		return
	}

	result, err := s.importer.Run(dispoData, timeData, timeName, &s.config.AppConfig, existing)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "import failed", err)
		return
	}

	persisted := false
	if result.Success && !dryRun {
		if err := s.store.Save(result.Movements); err != nil {
			s.respondError(w, r, http.StatusInternalServerError, "failed to persist movements", err)
			return
		}
		persisted = true
	}

	if err := s.writeJSON(w, http.StatusOK, map[string]any{
		"success":   result.Success,
		"movements": result.Movements,
		"logs":      result.Logs,
		"persisted": persisted,
	}); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

func (s *Server) handleMovements(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}
	movements, err := s.store.Load()
	if err != nil {
		s.respondError(w, r, http.StatusInternalServerError, "failed to load store", err)
		return
	}
	if err := s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "success",
		"movements": movements,
	}); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}
	if err := s.writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"config": s.config.AppConfig,
	}); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

func (s *Server) formFile(r *http.Request, field string) ([]byte, string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, "", err
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", err
	}
	return data, header.Filename, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, status int, msg string, err error) {
	s.logger.Warn(msg, "method", r.Method, "path", r.URL.Path, "err", err)
	if werr := s.writeJSON(w, status, map[string]any{
		"status": "error",
		"error":  msg,
	}); werr != nil {
		s.logger.Warn("failed to write json response", "err", werr)
	}
}
