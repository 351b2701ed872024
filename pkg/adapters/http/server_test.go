package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clarita-pm/clarita/pkg/domain"
)

// MockEngine for testing
type MockEngine struct {
	AnalyzeFunc func(ctx context.Context, sessionID, text string) (*domain.Session, error)
	ResumeFunc  func(ctx context.Context, sessionID, reply string) (*domain.Session, error)
	GetFunc     func(ctx context.Context, sessionID string) (*domain.Session, error)
}

func (m *MockEngine) Analyze(ctx context.Context, sessionID, text string) (*domain.Session, error) {
	return m.AnalyzeFunc(ctx, sessionID, text)
}
func (m *MockEngine) Resume(ctx context.Context, sessionID, reply string) (*domain.Session, error) {
	return m.ResumeFunc(ctx, sessionID, reply)
}
func (m *MockEngine) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	return m.GetFunc(ctx, sessionID)
}

func suspendedSession(id string) *domain.Session {
	sess := domain.NewSession(id, "parse", "add a button")
	sess.Status = domain.StatusSuspended
	sess.Cursor = "await_clarification"
	sess.Prompt = &domain.Prompt{Text: "please clarify", Expect: domain.ReplyClarification}
	sess.Questions = []string{"What page should this feature be added to?"}
	return sess
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestAnalyze(t *testing.T) {
	eng := &MockEngine{
		AnalyzeFunc: func(ctx context.Context, sessionID, text string) (*domain.Session, error) {
			assert.Equal(t, "add a button", text)
			return suspendedSession("s-1"), nil
		},
	}
	handler := NewHandler(eng, nil)

	w := postJSON(t, handler, "/analyze", map[string]string{"text": "add a button"})
	require.Equal(t, http.StatusOK, w.Code)

	var env sessionEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "s-1", env.SessionID)
	assert.Equal(t, "suspended", env.Status)
	assert.Equal(t, "please clarify", env.Prompt)
	assert.Equal(t, "clarification", env.Expect)
	assert.Len(t, env.Questions, 1)
}

func TestAnalyze_EmptyText(t *testing.T) {
	handler := NewHandler(&MockEngine{}, nil)
	w := postJSON(t, handler, "/analyze", map[string]string{"text": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyze_ResumeReplyRoutesToResume(t *testing.T) {
	resumed := false
	eng := &MockEngine{
		ResumeFunc: func(ctx context.Context, sessionID, reply string) (*domain.Session, error) {
			resumed = true
			assert.Equal(t, "s-1", sessionID)
			assert.Equal(t, "the dashboard", reply)
			sess := suspendedSession("s-1")
			sess.Status = domain.StatusSucceeded
			sess.Prompt = nil
			return sess, nil
		},
	}
	handler := NewHandler(eng, nil)

	w := postJSON(t, handler, "/analyze", map[string]string{
		"session_id":   "s-1",
		"resume_reply": "the dashboard",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resumed)
}

func TestResume_NotSuspended(t *testing.T) {
	eng := &MockEngine{
		ResumeFunc: func(ctx context.Context, sessionID, reply string) (*domain.Session, error) {
			return nil, domain.ErrNotSuspended
		},
	}
	handler := NewHandler(eng, nil)

	w := postJSON(t, handler, "/sessions/s-1/resume", map[string]string{"reply": "ok"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetSession_NotFound(t *testing.T) {
	eng := &MockEngine{
		GetFunc: func(ctx context.Context, sessionID string) (*domain.Session, error) {
			return nil, domain.ErrSessionNotFound
		},
	}
	handler := NewHandler(eng, nil)

	req := httptest.NewRequest("GET", "/sessions/missing", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealth(t *testing.T) {
	handler := NewHandler(&MockEngine{}, nil)

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestCORS_Preflight(t *testing.T) {
	handler := NewHandler(&MockEngine{}, nil)

	req := httptest.NewRequest("OPTIONS", "/analyze", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
