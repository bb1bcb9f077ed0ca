// Package ui serves a completed run read-only over HTTP: JSON for tooling,
// the rendered report for people. It never triggers tallying.
package ui

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"ballotlab/domain/simulation"
	"ballotlab/internal/report"
)

// Server exposes one run's result and trial records.
type Server struct {
	router  *chi.Mux
	result  *simulation.Result
	records []*simulation.TrialRecord
}

// NewServer creates the results server for a completed run.
func NewServer(result *simulation.Result, records []*simulation.TrialRecord) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		result:  result,
		records: records,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/api/run", s.handleRun)
	s.router.Get("/api/trials/{index}", s.handleTrial)
	s.router.Get("/report", s.handleReport)
}

// ListenAndServe blocks serving the results API on the given port.
func (s *Server) ListenAndServe(port string) error {
	return http.ListenAndServe(":"+port, s.router)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.result)
}

func (s *Server) handleTrial(w http.ResponseWriter, r *http.Request) {
	idx, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "trial index must be an integer"})
		return
	}
	for _, rec := range s.records {
		if rec.Trial == idx {
			writeJSON(w, http.StatusOK, rec)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "no such trial"})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(report.HTML(s.result))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
