package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"weatherdash/internal/api"
	"weatherdash/internal/dashboard"
	"weatherdash/internal/fetcher"
	"weatherdash/internal/models"
)

type SearchRequest struct {
	City string `json:"city"`
}

// Searcher is the dashboard session behind the HTTP API
type Searcher interface {
	Search(ctx context.Context, input string) (*models.WeatherSnapshot, error)
	Current() *models.WeatherSnapshot
}

// Server represents the HTTP server
type Server struct {
	dashboard Searcher
	router    chi.Router
}

// NewServer creates a new HTTP server
func NewServer(dash Searcher) *Server {
	s := &Server{
		dashboard: dash,
		router:    chi.NewRouter(),
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	// Register routes
	s.router.Get("/health", s.handleHealth)
	s.router.Post("/search", s.handleSearch)
	s.router.Get("/snapshot", s.handleSnapshot)
	s.router.Handle("/metrics", promhttp.Handler())

	return s
}

// Handler returns the routed handler for use in an http.Server
func (s *Server) Handler() http.Handler {
	return s.router
}

// handleHealth returns the server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().String(),
	})
}

// handleSearch runs a dashboard search and returns the new snapshot
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	snap, err := s.dashboard.Search(r.Context(), req.City)
	if err != nil {
		msg, reason := dashboard.FailureMessage(err)
		writeJSON(w, statusFor(err), map[string]string{"error": msg, "reason": reason})
		return
	}

	writeJSON(w, http.StatusOK, snap)
}

// handleSnapshot returns the currently displayed snapshot
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap := s.dashboard.Current()
	if snap == nil {
		http.Error(w, "No snapshot displayed yet", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, snap)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, fetcher.ErrEmptyCity):
		return http.StatusBadRequest
	case errors.Is(err, api.ErrCityNotFound):
		return http.StatusNotFound
	case errors.Is(err, api.ErrUpstream):
		return http.StatusBadGateway
	case errors.Is(err, api.ErrNetwork):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
