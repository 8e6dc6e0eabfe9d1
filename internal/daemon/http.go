package daemon

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/theirongolddev/wisespend/internal/insights"
	"github.com/theirongolddev/wisespend/internal/logger"
	"github.com/theirongolddev/wisespend/internal/model"

	"github.com/gorilla/mux"
)

// WhatIfRequest is the body of POST /v1/whatif.
type WhatIfRequest struct {
	Amount   int64          `json:"amount"`
	Category model.Category `json:"category"`
}

// Handler returns the daemon's HTTP API.
func (s *Service) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.logRequests)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)
	v1.HandleFunc("/snapshot", s.handleSnapshot).Methods(http.MethodGet)
	v1.HandleFunc("/confidence", s.handleConfidence).Methods(http.MethodGet)
	v1.HandleFunc("/events", s.handleEvents).Methods(http.MethodGet)
	v1.HandleFunc("/stream", s.handleStream).Methods(http.MethodGet)
	v1.HandleFunc("/whatif", s.handleWhatIf).Methods(http.MethodPost)
	return r
}

// logRequests gives every request a logger carrying its method and path.
func (s *Service) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.WithFields(s.log, map[string]any{"method": r.Method, "path": r.URL.Path})
		start := time.Now()
		next.ServeHTTP(w, r.WithContext(logger.WithContext(r.Context(), log)))
		log.Debug().Dur("elapsed", time.Since(start)).Msg("request")
	})
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshotStatus())
}

func (s *Service) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.currentSnapshot()
	if !ok {
		http.Error(w, "no snapshot yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Service) handleConfidence(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.currentSnapshot()
	if !ok {
		http.Error(w, "no snapshot yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, insights.ComputeConfidence(snap))
}

func (s *Service) handleWhatIf(w http.ResponseWriter, r *http.Request) {
	var req WhatIfRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log := logger.FromContext(r.Context())
		log.Warn().Err(err).Msg("bad whatif body")
		http.Error(w, fmt.Sprintf("invalid body: %v", err), http.StatusBadRequest)
		return
	}
	if req.Amount < 0 {
		http.Error(w, "amount must be non-negative", http.StatusBadRequest)
		return
	}
	snap, ok := s.currentSnapshot()
	if !ok {
		http.Error(w, "no snapshot yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, insights.SimulateWhatIf(snap, req.Amount, req.Category))
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current summary immediately.
	st := s.snapshotStatus()
	writeSSE(w, Event{Type: EventSnapshot, Timestamp: st.LastPollAt, Summary: st.Summary})
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}
