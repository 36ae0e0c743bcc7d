// Package server provides the HTTP server for the Kinetrack motion tracking system.
package server

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/adikms/kinetrack/internal/engine"
	"github.com/adikms/kinetrack/internal/metrics"
	"github.com/adikms/kinetrack/internal/notify"
	"github.com/adikms/kinetrack/internal/server/api"
	"github.com/adikms/kinetrack/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Engine    *engine.Engine
	Metrics   *metrics.Metrics
	Notifier  *notify.Notifier
}

// Server represents the HTTP server for the Kinetrack application.
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
		sessionHandler := api.NewSessionHandler(s.config.Store)
		s.mux.Handle("/api/sessions", sessionHandler)
		s.mux.Handle("/api/sessions/", sessionHandler)

		// Rule changes must reach the notifier's cached rule set
		var onChange func()
		if s.config.Notifier != nil {
			notifier := s.config.Notifier
			onChange = func() {
				if err := notifier.Reload(); err != nil {
					log.Printf("Failed to reload alert rules: %v", err)
				}
			}
		}
		alertHandler := api.NewAlertHandler(s.config.Store, onChange)
		s.mux.Handle("/api/alerts", alertHandler)
		s.mux.Handle("/api/alerts/", alertHandler)
	}

	if s.config.Engine != nil {
		s.mux.Handle("/api/tracks", api.NewTrackHandler(s.config.Engine))
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.Engine.Camera()))
		s.mux.Handle("/api/live", NewLiveHandler(s.config.Engine))
	}

	if s.config.Metrics != nil {
		s.mux.Handle("/metrics", s.config.Metrics.Handler())
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
	if s.config.Engine != nil {
		response["detection"] = s.config.Engine.IsEnabled()
		if id := s.config.Engine.SessionID(); id != "" {
			response["session"] = id
		}
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
