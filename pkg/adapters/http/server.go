package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aretw0/slipbox"
	"github.com/aretw0/slipbox/internal/logging"
	"github.com/aretw0/slipbox/pkg/domain"
)

//go:embed openapi.yaml
var rawSpec []byte

// Box defines the slipbox operations exposed over HTTP.
type Box interface {
	RequestDraw(ctx context.Context) domain.DrawOutcome
	RequestReset(ctx context.Context)
	Restart(ctx context.Context)
	Snapshot() domain.Snapshot
	Subscribe(buffer int) (<-chan domain.Snapshot, func())
}

// DrawResponse is the body of POST /draw.
type DrawResponse struct {
	Outcome  domain.DrawOutcome `json:"outcome"`
	Accepted bool               `json:"accepted"`
	State    domain.Snapshot    `json:"state"`
}

// Server serves one box to renderers.
type Server struct {
	Box    Box
	Logger *slog.Logger
	spec   *openapi3.T
}

// Option configures the handler.
type Option func(*handlerOptions)

type handlerOptions struct {
	logger  *slog.Logger
	metrics http.Handler
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *handlerOptions) {
		o.logger = logger
	}
}

// WithMetrics mounts a metrics handler (e.g. promhttp) at /metrics.
func WithMetrics(h http.Handler) Option {
	return func(o *handlerOptions) {
		o.metrics = h
	}
}

// LoadSpec parses and validates the embedded OpenAPI document.
func LoadSpec(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi spec: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid openapi spec: %w", err)
	}
	return doc, nil
}

// NewHandler creates a new HTTP handler for the box.
func NewHandler(box Box, opts ...Option) (http.Handler, error) {
	o := &handlerOptions{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(o)
	}

	spec, err := LoadSpec(context.Background())
	if err != nil {
		return nil, err
	}

	server := &Server{Box: box, Logger: o.logger, spec: spec}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Get("/state", server.GetState)
	r.Post("/draw", server.RequestDraw)
	r.Post("/reset", server.RequestReset)
	r.Post("/restart", server.Restart)
	r.Get("/events", server.SubscribeEvents)
	if o.metrics != nil {
		r.Handle("/metrics", o.metrics)
	}

	return r, nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"app":         "slipbox-http",
		"version":     strings.TrimSpace(slipbox.Version),
		"api_version": s.spec.Info.Version,
	})
}

// GetState handles the GET /state request.
func (s *Server) GetState(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.Box.Snapshot())
}

// RequestDraw handles the POST /draw request.
// Ignored draws are not errors: the response reports the outcome.
func (s *Server) RequestDraw(w http.ResponseWriter, r *http.Request) {
	outcome := s.Box.RequestDraw(r.Context())
	s.Logger.Debug("draw requested", "outcome", outcome, "remote", r.RemoteAddr)

	s.writeJSON(w, DrawResponse{
		Outcome:  outcome,
		Accepted: outcome.Accepted(),
		State:    s.Box.Snapshot(),
	})
}

// RequestReset handles the POST /reset request.
func (s *Server) RequestReset(w http.ResponseWriter, r *http.Request) {
	s.Box.RequestReset(r.Context())
	s.writeJSON(w, s.Box.Snapshot())
}

// Restart handles the POST /restart request.
func (s *Server) Restart(w http.ResponseWriter, r *http.Request) {
	s.Box.Restart(r.Context())
	s.writeJSON(w, s.Box.Snapshot())
}

// SubscribeEvents handles the GET /events request (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.Logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	query := r.URL.Query()
	diffMode := query.Get("mode") == "diff"
	var watchList []string
	if raw := query.Get("watch"); raw != "" {
		for _, field := range strings.Split(raw, ",") {
			if field = strings.TrimSpace(field); field != "" {
				watchList = append(watchList, field)
			}
		}
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	updates, cancel := s.Box.Subscribe(0)
	defer cancel()

	s.Logger.Info("SSE: client subscribed", "diff", diffMode, "watch", watchList)
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	var last *domain.Snapshot
	for {
		select {
		case <-r.Context().Done():
			s.Logger.Info("SSE: client disconnected")
			return
		case snap, ok := <-updates:
			if !ok {
				return
			}

			event := "snapshot"
			var payload any = snap
			if diffMode {
				diff := domain.Diff(last, &snap)
				last = &snap
				if diff == nil || !matchesWatch(diff, watchList) {
					continue
				}
				event, payload = "diff", diff
			}

			data, err := json.Marshal(payload)
			if err != nil {
				s.Logger.Error("SSE: encode failed", "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
			flusher.Flush()
		}
	}
}

func matchesWatch(diff *domain.SnapshotDiff, watchList []string) bool {
	if len(watchList) == 0 {
		return true
	}
	for _, group := range watchList {
		if diff.Touches(group) {
			return true
		}
	}
	return false
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "error", err)
	}
}
