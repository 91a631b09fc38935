package server

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/paycast/paycast/internal/predictor"
	"github.com/paycast/paycast/internal/storage"
)

type InfoResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type PredictRequest struct {
	IDs []int64 `json:"ids"`
}

type PredictResponse struct {
	Predictions map[int64]float64 `json:"predictions"`
}

type NotifyChangedRequest struct {
	IDs []int64 `json:"ids"`
}

type NotifyChangesRequest struct {
	Count int64 `json:"count"`
}

type AckResponse struct {
	Received bool `json:"received"`
}

// ProcessInfo reports resource usage of the running service.
type ProcessInfo struct {
	PID        int32   `json:"pid"`
	RSSBytes   uint64  `json:"rss_bytes,omitempty"`
	CPUPercent float64 `json:"cpu_percent,omitempty"`
	UptimeSecs float64 `json:"uptime_seconds"`
}

type StatusResponse struct {
	Predictor predictor.Status `json:"predictor"`
	Model     storage.Info     `json:"model"`
	Process   ProcessInfo      `json:"process"`
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	resp := InfoResponse{
		Name:    "paycast",
		Version: s.version,
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status: "ok",
	}

	s.writeJSON(w, http.StatusOK, resp)
}

// handleReady reports ready once the persisted state is readable. A corrupt
// state file makes every prediction request fail, so it flips readiness too.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if _, err := s.service.Status(); err != nil {
		s.writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"})
		return
	}

	s.writeJSON(w, http.StatusOK, HealthResponse{Status: "ready"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.service.Status()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := StatusResponse{
		Predictor: status,
		Model:     s.models.Info(),
		Process:   s.processInfo(),
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) processInfo() ProcessInfo {
	info := ProcessInfo{
		PID:        int32(os.Getpid()),
		UptimeSecs: time.Since(s.started).Seconds(),
	}

	proc, err := process.NewProcess(info.PID)
	if err != nil {
		return info
	}

	if mem, err := proc.MemoryInfo(); err == nil {
		info.RSSBytes = mem.RSS
	}
	if cpu, err := proc.CPUPercent(); err == nil {
		info.CPUPercent = cpu
	}

	return info
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req PredictRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	preds, err := s.service.Predict(r.Context(), req.IDs)
	if err != nil {
		s.logger.Error("prediction request failed", "error", err, "ids", req.IDs)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, http.StatusOK, PredictResponse{Predictions: preds})
}

// handleNotifyChanged registers edits that change a job's features: the
// affected predictions are invalidated and the edits count toward the
// retrain threshold.
func (s *Server) handleNotifyChanged(w http.ResponseWriter, r *http.Request) {
	var req NotifyChangedRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.IDs) == 0 {
		http.Error(w, "ids field is required", http.StatusBadRequest)
		return
	}

	s.service.NotifyChanged(req.IDs)
	if err := s.service.NotifyChangeCount(int64(len(req.IDs))); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, http.StatusOK, AckResponse{Received: true})
}

// handleNotifyChanges registers edits that leave features alone, label
// updates mostly. They only add retrain pressure. A missing count means one
// change.
func (s *Server) handleNotifyChanges(w http.ResponseWriter, r *http.Request) {
	var req NotifyChangesRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Count < 0 {
		http.Error(w, "count must not be negative", http.StatusBadRequest)
		return
	}

	if err := s.service.NotifyChangeCount(req.Count); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, http.StatusOK, AckResponse{Received: true})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Reset(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.logger.Info("prediction state reset")
	s.writeJSON(w, http.StatusOK, HealthResponse{Status: "reset"})
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
