package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /", s.handleInfo)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ready", s.handleReady)
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.HandleFunc("POST /predict", s.handlePredict)
	mux.HandleFunc("POST /notify/changed", s.handleNotifyChanged)
	mux.HandleFunc("POST /notify/changes", s.handleNotifyChanges)
	mux.HandleFunc("POST /reset", s.handleReset)

	mux.Handle("GET /metrics", promhttp.Handler())

	return mux
}
