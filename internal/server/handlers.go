package server

import (
	"encoding/json"
	"net/http"

	"github.com/haskel/cpuwatch/internal/monitor"
)

type InfoResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type HealthResponse struct {
	Status string `json:"status"`
	State  string `json:"state"`
}

// StatusResponse is a snapshot of the usage vector.
type StatusResponse struct {
	State     string    `json:"state"`
	Cores     int       `json:"cores"`
	Samples   uint64    `json:"samples"`
	Aggregate float64   `json:"aggregate_percent"`
	PerCore   []float64 `json:"per_core_percent"`
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, InfoResponse{
		Name:    "cpuwatch",
		Version: s.version,
	})
}

// handleHealth reports 503 once the pipeline has left the running state so
// supervisors see a stalled monitor as unhealthy.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	state := s.pipeline.State()

	resp := HealthResponse{Status: "ok", State: state.String()}
	status := http.StatusOK
	if state != monitor.StateRunning {
		resp.Status = "unavailable"
		status = http.StatusServiceUnavailable
	}

	s.writeJSON(w, status, resp)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	store := s.pipeline.Store()
	u := store.Usage()

	perCore := make([]float64, u.Cores())
	for i := range perCore {
		perCore[i] = u.Core(i)
	}

	s.writeJSON(w, http.StatusOK, StatusResponse{
		State:     s.pipeline.State().String(),
		Cores:     store.Cores(),
		Samples:   store.Generation(),
		Aggregate: u.Aggregate(),
		PerCore:   perCore,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response",
			"error", err,
			"status", status,
		)
	}
}
