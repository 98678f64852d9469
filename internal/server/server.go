// Package server provides the HTTP server for the gym-form squat analysis system.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jacdevv/gym-form/internal/pose"
	"github.com/jacdevv/gym-form/internal/server/api"
	"github.com/jacdevv/gym-form/internal/squat"
	"github.com/jacdevv/gym-form/internal/store"
)

// SessionSource reports the latest analysis state. The app pipeline
// implements it.
type SessionSource interface {
	Result() squat.Result
	Enabled() bool
}

// FrameSource supplies the latest annotated frame as JPEG bytes.
type FrameSource interface {
	SnapshotJPEG() ([]byte, error)
}

// Config holds the server configuration.
type Config struct {
	StaticDir  string
	Store      *store.Store
	Calibrator *pose.Calibrator
	Session    SessionSource
	Frames     FrameSource
}

// Server represents the HTTP server for the gym-form application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.Store != nil {
		profileHandler := api.NewProfileHandler(s.config.Store, s.config.Calibrator)
		s.mux.Handle("/api/profiles", profileHandler)
		s.mux.Handle("/api/profiles/", profileHandler)
	}

	if s.config.Calibrator != nil {
		s.mux.Handle("/api/calibration", api.NewCalibrationHandler(s.config.Calibrator))
	}

	if s.config.Session != nil {
		s.mux.HandleFunc("/api/session", s.handleSession)
	}

	if s.config.Frames != nil {
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.Frames))
	}

	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// handleSession handles GET requests to /api/session and reports the latest
// rep count, angles and feedback.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := struct {
		Enabled bool         `json:"enabled"`
		Result  squat.Result `json:"result"`
	}{
		Enabled: s.config.Session.Enabled(),
		Result:  s.config.Session.Result(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
