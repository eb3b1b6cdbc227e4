package server

import (
	"net/http"

	"github.com/haskel/cpuwatch/internal/metrics"
)

func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleInfo)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.Handle("GET /metrics", metrics.Handler(s.pipeline.Store()))

	return mux
}
