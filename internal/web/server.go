// Package web serves the dashboard page, the chart image and a JSON view
// of the same render pass.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"PriceBoard/internal/cache"
	"PriceBoard/internal/controls"
	"PriceBoard/internal/dashboard"
)

// StatsSource reports cache counters for /healthz.
type StatsSource interface {
	Stats() cache.Stats
}

// Server is the HTTP front of a dashboard pipeline.
type Server struct {
	addr     string
	pipeline *dashboard.Pipeline
	stats    StatsSource
	srv      *http.Server
}

// NewServer creates a server. stats may be nil.
func NewServer(addr string, p *dashboard.Pipeline, stats StatsSource) *Server {
	return &Server{
		addr:     addr,
		pipeline: p,
		stats:    stats,
	}
}

// Handler returns the request router.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /chart.png", s.handleChart)
	mux.HandleFunc("GET /api/prices", s.handlePrices)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.srv = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] http shutdown: %v", err)
		}
	}()

	log.Printf("[INFO] dashboard listening on %s", s.addr)
	if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// pass resolves the query into a selection and runs one guarded pass.
func (s *Server) pass(r *http.Request) *dashboard.Page {
	in := controls.FromQuery(r.URL.Query())
	sel := s.pipeline.Controls.Resolve(in)
	return s.pipeline.Guarded(r.Context(), sel)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page := s.pass(r)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, newPageData(s.pipeline, page)); err != nil {
		log.Printf("[ERROR] render page: %v", err)
	}
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	page := s.pass(r)
	if page.Failed() {
		http.Error(w, page.Error, statusFor(page.Outcome))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(page.View.PNG)
}

type pricesResponse struct {
	Outcome   string      `json:"outcome"`
	Error     string      `json:"error,omitempty"`
	Heading   string      `json:"heading"`
	Selection interface{} `json:"selection"`
	Table     interface{} `json:"table,omitempty"`
	Rows      interface{} `json:"rows,omitempty"`
}

func (s *Server) handlePrices(w http.ResponseWriter, r *http.Request) {
	page := s.pass(r)
	resp := pricesResponse{
		Outcome:   page.Outcome,
		Error:     page.Error,
		Heading:   page.Heading,
		Selection: page.Selection,
	}
	if page.View != nil {
		resp.Table = page.View.Table
		resp.Rows = page.View.Long
	}
	writeJSON(w, statusFor(page.Outcome), resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	body := map[string]interface{}{"status": "ok"}
	if s.stats != nil {
		st := s.stats.Stats()
		body["cache"] = map[string]int{"hits": st.Hits, "misses": st.Misses, "entries": st.Entries}
	}
	writeJSON(w, http.StatusOK, body)
}

func statusFor(outcome string) int {
	switch outcome {
	case dashboard.OutcomeOK:
		return http.StatusOK
	case dashboard.OutcomeInvalidSelection:
		return http.StatusUnprocessableEntity
	case dashboard.OutcomeFetchFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
