// Package mcp exposes the workflow engine as an MCP server so coding
// assistants can drive analyze/clarify/review conversations as tools.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"

	"github.com/clarita-pm/clarita"
	"github.com/clarita-pm/clarita/internal/render"
	"github.com/clarita-pm/clarita/pkg/domain"
)

// Engine defines the executor operations the MCP surface needs.
type Engine interface {
	Analyze(ctx context.Context, sessionID, text string) (*domain.Session, error)
	Resume(ctx context.Context, sessionID, reply string) (*domain.Session, error)
	Get(ctx context.Context, sessionID string) (*domain.Session, error)
	Health(ctx context.Context) error
}

// Server wraps the engine and exposes it as an MCP server.
type Server struct {
	engine    Engine
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance.
func NewServer(engine Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		engine:    engine,
		logger:    logger,
		mcpServer: server.NewMCPServer("clarita-mcp", strings.TrimSpace(clarita.Version)),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("mcp server listening (sse)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type analyzeArgs struct {
	Description string `mapstructure:"description"`
	SessionID   string `mapstructure:"session_id"`
}

type continueArgs struct {
	SessionID    string `mapstructure:"session_id"`
	UserResponse string `mapstructure:"user_response"`
}

type sessionArgs struct {
	SessionID string `mapstructure:"session_id"`
}

func decodeArgs(request mcp.CallToolRequest, out any) error {
	return mapstructure.Decode(request.GetArguments(), out)
}

func (s *Server) registerTools() {
	analyzeTool := mcp.NewTool("analyze_feature_request",
		mcp.WithDescription("Analyze a feature request and generate development tickets or ask for clarification. Pass session_id to restart an existing conversation."),
		mcp.WithString("description", mcp.Required(), mcp.Description("Natural language description of the feature to implement (e.g., 'Add a save button to the dashboard page')")),
		mcp.WithString("session_id", mcp.Description("Session ID for continuing a conversation")),
	)
	s.mcpServer.AddTool(analyzeTool, s.handleAnalyze)

	continueTool := mcp.NewTool("continue_conversation",
		mcp.WithDescription("Continue a suspended conversation with the user's response. Use this when the system is waiting for input and you have received a reply."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID for the conversation")),
		mcp.WithString("user_response", mcp.Required(), mcp.Description("User's response to the previous prompt")),
	)
	s.mcpServer.AddTool(continueTool, s.handleContinue)

	infoTool := mcp.NewTool("get_session_info",
		mcp.WithDescription("Get information about a conversation session"),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID to retrieve information for")),
	)
	s.mcpServer.AddTool(infoTool, s.handleSessionInfo)

	healthTool := mcp.NewTool("health_check",
		mcp.WithDescription("Check that the workflow graph and extractor are available"),
	)
	s.mcpServer.AddTool(healthTool, s.handleHealth)
}

func (s *Server) handleAnalyze(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args analyzeArgs
	if err := decodeArgs(request, &args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if strings.TrimSpace(args.Description) == "" {
		return mcp.NewToolResultError("description is required"), nil
	}

	sess, err := s.engine.Analyze(ctx, args.SessionID, args.Description)
	if err != nil {
		s.logger.Error("analyze failed", "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("analyze failed: %v", err)), nil
	}
	return mcp.NewToolResultText(sessionResult(sess)), nil
}

func (s *Server) handleContinue(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args continueArgs
	if err := decodeArgs(request, &args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.SessionID == "" || strings.TrimSpace(args.UserResponse) == "" {
		return mcp.NewToolResultError("session_id and user_response are required"), nil
	}

	sess, err := s.engine.Resume(ctx, args.SessionID, args.UserResponse)
	if err != nil {
		s.logger.Error("continue failed", "error", err, "session_id", args.SessionID)
		return mcp.NewToolResultError(fmt.Sprintf("continue failed: %v", err)), nil
	}
	return mcp.NewToolResultText(sessionResult(sess)), nil
}

func (s *Server) handleSessionInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args sessionArgs
	if err := decodeArgs(request, &args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	sess, err := s.engine.Get(ctx, args.SessionID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("session lookup failed: %v", err)), nil
	}
	return mcp.NewToolResultText(render.SessionInfo(sess)), nil
}

func (s *Server) handleHealth(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.engine.Health(ctx); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("unhealthy: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("ok (version %s)", strings.TrimSpace(clarita.Version))), nil
}

// sessionResult renders the session for the calling assistant. Suspended
// sessions return the pending prompt verbatim so it can be relayed to the
// user.
func sessionResult(sess *domain.Session) string {
	switch sess.Status {
	case domain.StatusSuspended:
		if sess.Prompt != nil {
			return fmt.Sprintf("Session: %s\n\n%s", sess.ID, sess.Prompt.Text)
		}
		return fmt.Sprintf("Session: %s\n\n(awaiting input)", sess.ID)
	case domain.StatusSucceeded:
		return fmt.Sprintf("Session: %s\n\n%s", sess.ID, render.TicketReport(sess))
	case domain.StatusFailed:
		return fmt.Sprintf("Session: %s\n\nAnalysis stopped: %s", sess.ID, sess.Reason)
	default:
		return fmt.Sprintf("Session: %s (status %s)", sess.ID, sess.Status)
	}
}
