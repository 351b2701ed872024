// Package http exposes the workflow engine as a small REST surface.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/clarita-pm/clarita"
	"github.com/clarita-pm/clarita/pkg/domain"
)

// Engine defines the executor operations the HTTP surface needs.
type Engine interface {
	Analyze(ctx context.Context, sessionID, text string) (*domain.Session, error)
	Resume(ctx context.Context, sessionID, reply string) (*domain.Session, error)
	Get(ctx context.Context, sessionID string) (*domain.Session, error)
}

// Server routes REST requests to the engine.
type Server struct {
	engine Engine
	logger *slog.Logger
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(engine Engine, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{engine: engine, logger: logger}

	r := chi.NewRouter()
	r.Post("/analyze", s.Analyze)
	r.Post("/sessions/{sessionID}/resume", s.Resume)
	r.Get("/sessions/{sessionID}", s.GetSession)
	r.Get("/healthz", s.Health)
	r.Handle("/metrics", promhttp.Handler())

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type analyzeRequest struct {
	Text        string `json:"text"`
	SessionID   string `json:"session_id,omitempty"`
	ResumeReply string `json:"resume_reply,omitempty"`
}

type resumeRequest struct {
	Reply string `json:"reply"`
}

// sessionEnvelope is the wire shape shared by all session responses.
type sessionEnvelope struct {
	SessionID   string          `json:"session_id"`
	Status      string          `json:"status"`
	Prompt      string          `json:"prompt,omitempty"`
	Expect      string          `json:"expect,omitempty"`
	Fields      domain.FieldSet `json:"fields"`
	Missing     []string        `json:"missing,omitempty"`
	Questions   []string        `json:"questions,omitempty"`
	SearchHints []string        `json:"search_hints,omitempty"`
	Tickets     []domain.Ticket `json:"tickets,omitempty"`
	Summary     string          `json:"summary,omitempty"`
	Reason      string          `json:"reason,omitempty"`
}

func envelope(sess *domain.Session) sessionEnvelope {
	env := sessionEnvelope{
		SessionID:   sess.ID,
		Status:      string(sess.Status),
		Fields:      sess.Fields,
		Missing:     sess.Missing,
		Questions:   sess.Questions,
		SearchHints: sess.SearchHints,
		Tickets:     sess.Tickets,
		Summary:     sess.Summary,
		Reason:      sess.Reason,
	}
	if sess.Prompt != nil {
		env.Prompt = sess.Prompt.Text
		env.Expect = string(sess.Prompt.Expect)
	}
	return env
}

// Analyze handles POST /analyze. A request carrying resume_reply is
// treated as a resume of the named session.
func (s *Server) Analyze(w http.ResponseWriter, r *http.Request) {
	var body analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		s.logger.Warn("analyze: invalid request body", "error", err)
		return
	}

	if strings.TrimSpace(body.ResumeReply) != "" {
		if body.SessionID == "" {
			http.Error(w, "session_id is required with resume_reply", http.StatusBadRequest)
			return
		}
		sess, err := s.engine.Resume(r.Context(), body.SessionID, body.ResumeReply)
		if err != nil {
			s.writeError(w, "resume", err)
			return
		}
		s.writeJSON(w, http.StatusOK, envelope(sess))
		return
	}

	if strings.TrimSpace(body.Text) == "" {
		http.Error(w, "text is required", http.StatusBadRequest)
		return
	}

	sess, err := s.engine.Analyze(r.Context(), body.SessionID, body.Text)
	if err != nil {
		s.writeError(w, "analyze", err)
		return
	}
	s.writeJSON(w, http.StatusOK, envelope(sess))
}

// Resume handles POST /sessions/{sessionID}/resume.
func (s *Server) Resume(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var body resumeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		s.logger.Warn("resume: invalid request body", "error", err)
		return
	}
	if strings.TrimSpace(body.Reply) == "" {
		http.Error(w, "reply is required", http.StatusBadRequest)
		return
	}

	sess, err := s.engine.Resume(r.Context(), sessionID, body.Reply)
	if err != nil {
		s.writeError(w, "resume", err)
		return
	}
	s.writeJSON(w, http.StatusOK, envelope(sess))
}

// GetSession handles GET /sessions/{sessionID}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.engine.Get(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeError(w, "get session", err)
		return
	}
	s.writeJSON(w, http.StatusOK, envelope(sess))
}

// Health handles GET /healthz.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": strings.TrimSpace(clarita.Version),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		http.Error(w, "session not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrNotSuspended):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, fmt.Sprintf("%s error: %v", op, err), http.StatusInternalServerError)
		s.logger.Error(op+" failed", "error", err)
	}
}
