package diagnostics

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-drift/frameclock/pkg/errors"
)

// Server exposes a trace buffer over HTTP for ad-hoc inspection.
//
// Endpoints:
//
//	GET /health    liveness check
//	GET /timeline  recent tick samples; supports ?limit=N, ?min_render_ms=X,
//	               ?min_jitter_ms=X and ?dropped=true filters
type Server struct {
	trace   *TraceBuffer
	handler errors.Handler

	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
}

// NewServer creates a diagnostics server over trace. The error handler
// receives failures from the serving goroutine; nil discards them.
func NewServer(trace *TraceBuffer, handler errors.Handler) *Server {
	return &Server{trace: trace, handler: handler}
}

// Start binds the server on the given port and serves in the background.
// Returns the actual port, useful when port is 0 for ephemeral allocation.
// Starting an already-running server returns its current port.
func (s *Server) Start(port int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		return s.listener.Addr().(*net.TCPAddr).Port, nil
	}

	// Bind the listener first to fail fast on port conflicts.
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return 0, errors.E("diagnostics.Start", errors.KindServe, err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/timeline", s.handleTimeline)

	server := &http.Server{Handler: mux}
	s.server = server
	s.listener = listener

	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.mu.Lock()
			s.server = nil
			s.listener = nil
			s.mu.Unlock()
			if s.handler != nil {
				s.handler.HandleError(errors.E("diagnostics.Serve", errors.KindServe, err))
			}
		}
	}()

	return listener.Addr().(*net.TCPAddr).Port, nil
}

// Stop gracefully shuts down the server. Safe to call when not running.
func (s *Server) Stop() {
	s.mu.Lock()
	server := s.server
	s.server = nil
	s.listener = nil
	s.mu.Unlock()

	if server == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.trace == nil {
		http.Error(w, "tick tracing disabled", http.StatusServiceUnavailable)
		return
	}

	resp := s.trace.Snapshot()
	applyTimelineFilters(r, &resp)

	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		http.Error(w, fmt.Sprintf("json encode error: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func applyTimelineFilters(r *http.Request, resp *TickTimeline) {
	var filters []func(TickSample) bool

	if v := parseFloatQuery(r, "min_render_ms"); v > 0 {
		filters = append(filters, func(s TickSample) bool { return s.RenderMs >= v })
	}
	if v := parseFloatQuery(r, "min_jitter_ms"); v > 0 {
		filters = append(filters, func(s TickSample) bool { return s.JitterMs >= v })
	}
	if value := r.URL.Query().Get("dropped"); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil && parsed {
			filters = append(filters, func(s TickSample) bool { return !s.Drawn })
		}
	}

	if len(filters) > 0 {
		filtered := make([]TickSample, 0, len(resp.Samples))
	outer:
		for _, sample := range resp.Samples {
			for _, f := range filters {
				if !f(sample) {
					continue outer
				}
			}
			filtered = append(filtered, sample)
		}
		resp.Samples = filtered
	}

	limit := 0
	if value := r.URL.Query().Get("limit"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > 0 && len(resp.Samples) > limit {
		resp.Samples = resp.Samples[len(resp.Samples)-limit:]
	}
}

func parseFloatQuery(r *http.Request, key string) float64 {
	value := r.URL.Query().Get(key)
	if value == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || parsed <= 0 {
		return 0
	}
	return parsed
}
