package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/slipbox"
	"github.com/aretw0/slipbox/internal/logging"
	"github.com/aretw0/slipbox/pkg/domain"
)

// StateURI is the resource exposing the current snapshot.
const StateURI = "slipbox://state"

// DrawResponse aligns with the HTTP adapter so agents see the same shape.
type DrawResponse struct {
	Outcome  domain.DrawOutcome `json:"outcome" jsonschema_description:"accepted, intro, busy or exhausted"`
	Accepted bool               `json:"accepted" jsonschema_description:"Whether a new slip sequence started"`
	State    domain.Snapshot    `json:"state" jsonschema_description:"The box state after the request"`
}

// Box defines the operations the MCP server needs.
type Box interface {
	RequestDraw(ctx context.Context) domain.DrawOutcome
	RequestReset(ctx context.Context)
	Restart(ctx context.Context)
	Snapshot() domain.Snapshot
}

// Server exposes a box as an MCP server.
type Server struct {
	box       Box
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(box Box, opts ...Option) *Server {
	s := &Server{
		box:       box,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("slipbox-mcp", strings.TrimSpace(slipbox.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server, mainly for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the MCP SSE transport on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL("http://"+localAddr(addr)))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func localAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: draw_slip
	drawTool := mcp.NewTool("draw_slip",
		mcp.WithDescription("Draw a slip from the envelope. Ignored while a slip is still moving or when no slips remain."),
		mcp.WithOutputSchema[DrawResponse](),
	)
	s.mcpServer.AddTool(drawTool, mcp.NewStructuredToolHandler(s.handleDraw))

	// TOOL: reset_box
	resetTool := mcp.NewTool("reset_box",
		mcp.WithDescription("Put the envelope back at rest. With restart, all slips go back in."),
		mcp.WithBoolean("restart", mcp.Description("Also refill the envelope (optional)")),
		mcp.WithOutputSchema[domain.Snapshot](),
	)
	s.mcpServer.AddTool(resetTool, mcp.NewStructuredToolHandler(s.handleReset))

	// TOOL: get_state
	s.mcpServer.AddTool(mcp.NewTool("get_state",
		mcp.WithDescription("Get the current envelope, slip and pool state."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		data, err := json.Marshal(s.box.Snapshot())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	})
}

func (s *Server) handleDraw(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (DrawResponse, error) {
	outcome := s.box.RequestDraw(ctx)
	s.logger.Debug("MCP draw", "outcome", outcome)

	return DrawResponse{
		Outcome:  outcome,
		Accepted: outcome.Accepted(),
		State:    s.box.Snapshot(),
	}, nil
}

func (s *Server) handleReset(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.Snapshot, error) {
	if restart, _ := args["restart"].(bool); restart {
		s.box.Restart(ctx)
	} else {
		s.box.RequestReset(ctx)
	}
	return s.box.Snapshot(), nil
}

func (s *Server) registerResources() {
	// EXPOSE: slipbox://state
	s.mcpServer.AddResource(mcp.NewResource(StateURI, "Current Box State",
		mcp.WithMIMEType("application/json"),
	), s.readState)
}

func (s *Server) readState(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(s.box.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      StateURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
