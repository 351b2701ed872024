// Package runtime drives sessions through the workflow graph: the tick
// loop, suspend/resume semantics, and the liveness guard.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/clarita-pm/clarita/pkg/domain"
	"github.com/clarita-pm/clarita/pkg/session"
	"github.com/clarita-pm/clarita/pkg/workflow"
)

// DefaultTickBudget caps the number of steps executed per external call.
// Hitting it fails the session with a distinguishable reason instead of
// spinning on a misconfigured graph.
const DefaultTickBudget = 32

// Engine is the state machine runner. It owns session mutation: steps only
// report outcomes and the engine applies them, one step at a time per
// session, under the session manager's per-key lock.
type Engine struct {
	graph    *workflow.Graph
	sessions *session.Manager
	budget   int
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
}

// Option configures the engine.
type Option func(*Engine)

// WithTickBudget overrides the per-call tick cap.
func WithTickBudget(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.budget = n
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates an engine over the given graph and session manager.
func NewEngine(graph *workflow.Graph, sessions *session.Manager, opts ...Option) *Engine {
	e := &Engine{
		graph:    graph,
		sessions: sessions,
		budget:   DefaultTickBudget,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Analyze starts (or restarts) the workflow for the given request text.
// An empty session ID mints a fresh one. The call runs synchronously until
// the session suspends or terminates, and returns the resulting snapshot.
func (e *Engine) Analyze(ctx context.Context, sessionID, text string) (*domain.Session, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	var result *domain.Session
	err := e.sessions.WithLock(ctx, sessionID, func(ctx context.Context) error {
		sess, err := e.sessions.Store().Load(ctx, sessionID)
		switch {
		case errors.Is(err, domain.ErrSessionNotFound):
			sess = domain.NewSession(sessionID, e.graph.Entry(), text)
		case err != nil:
			return fmt.Errorf("failed to load session: %w", err)
		default:
			e.restart(sess, text)
		}

		e.run(ctx, sess)

		if err := e.sessions.Store().Save(ctx, sess); err != nil {
			return fmt.Errorf("failed to persist session: %w", err)
		}
		result = sess
		return nil
	})
	return result, err
}

// Resume injects a reply into a suspended session and re-enters the tick
// loop at the stored cursor. Resuming an unknown or non-suspended session
// is an error, not a silent no-op.
func (e *Engine) Resume(ctx context.Context, sessionID, reply string) (*domain.Session, error) {
	var result *domain.Session
	err := e.sessions.WithLock(ctx, sessionID, func(ctx context.Context) error {
		sess, err := e.sessions.Store().Load(ctx, sessionID)
		if err != nil {
			return fmt.Errorf("resume %q: %w", sessionID, err)
		}
		if sess.Status != domain.StatusSuspended {
			return fmt.Errorf("resume %q: %w (status %s)", sessionID, domain.ErrNotSuspended, sess.Status)
		}

		sess.Fields.Reply = reply
		sess.Prompt = nil
		sess.Status = domain.StatusRunning
		sess.Append("user", reply)

		e.run(ctx, sess)

		if err := e.sessions.Store().Save(ctx, sess); err != nil {
			return fmt.Errorf("failed to persist session: %w", err)
		}
		result = sess
		return nil
	})
	return result, err
}

// Get returns a snapshot of the session.
func (e *Engine) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	var result *domain.Session
	err := e.sessions.WithLock(ctx, sessionID, func(ctx context.Context) error {
		sess, err := e.sessions.Store().Load(ctx, sessionID)
		if err != nil {
			return err
		}
		result = sess
		return nil
	})
	return result, err
}

// restart re-enters the workflow for a session that has already run.
// Accumulated fields survive (they are never cleared within a session);
// per-run outputs are reset.
func (e *Engine) restart(sess *domain.Session, text string) {
	sess.Cursor = e.graph.Entry()
	sess.Status = domain.StatusRunning
	sess.Prompt = nil
	sess.Fields.RawText = text
	sess.Fields.Reply = ""
	sess.Missing = nil
	sess.Questions = nil
	sess.SearchHints = nil
	sess.Tickets = nil
	sess.Summary = ""
	sess.Reason = ""
	sess.Rounds = 0
	sess.Append("user", text)
}

// run ticks the session until it suspends, terminates, or exhausts the
// tick budget.
func (e *Engine) run(ctx context.Context, sess *domain.Session) {
	for ticks := 1; ; ticks++ {
		if ticks > e.budget {
			e.fail(ctx, sess, ticks, fmt.Sprintf("%v (%d ticks)", domain.ErrTickBudget, e.budget))
			return
		}

		node, ok := e.graph.Node(sess.Cursor)
		if !ok {
			e.fail(ctx, sess, ticks, fmt.Sprintf("%v: unknown node %q", domain.ErrStepContract, sess.Cursor))
			return
		}

		e.emitStep(ctx, e.hooks.OnStepEnter, sess, node.Step.ID(), "")
		out := node.Step.Run(ctx, sess)
		e.emitStep(ctx, e.hooks.OnStepLeave, sess, node.Step.ID(), out.Kind.String())

		e.logger.Debug("tick",
			"session_id", sess.ID, "step", node.Step.ID(), "outcome", out.Kind.String())

		switch out.Kind {
		case workflow.KindSuspend:
			if out.Prompt == "" {
				e.fail(ctx, sess, ticks, fmt.Sprintf("%v: step %q suspended without a prompt", domain.ErrStepContract, node.Step.ID()))
				return
			}
			sess.Status = domain.StatusSuspended
			sess.Prompt = &domain.Prompt{Text: out.Prompt, Expect: out.Expect}
			sess.Append("assistant", out.Prompt)
			e.emitStep(ctx, e.hooks.OnSuspend, sess, node.Step.ID(), out.Kind.String())
			return

		case workflow.KindFail:
			sess.Status = domain.StatusFailed
			sess.Reason = out.Reason
			sess.Fields.Reply = ""
			e.emitFinish(ctx, sess, ticks)
			return

		case workflow.KindContinue:
			e.apply(sess, out)
			if node.Next == "" {
				sess.Status = domain.StatusSucceeded
				e.emitFinish(ctx, sess, ticks)
				return
			}
			sess.Cursor = node.Next

		case workflow.KindBranch:
			target, ok := node.Branches[out.Branch]
			if !ok {
				e.fail(ctx, sess, ticks, fmt.Sprintf("%v: step %q returned unknown branch %q", domain.ErrStepContract, node.Step.ID(), out.Branch))
				return
			}
			e.apply(sess, out)
			sess.Cursor = target

		default:
			e.fail(ctx, sess, ticks, fmt.Sprintf("%v: step %q returned unknown outcome kind", domain.ErrStepContract, node.Step.ID()))
			return
		}
	}
}

// apply folds a non-suspending outcome into the session.
func (e *Engine) apply(sess *domain.Session, out workflow.Outcome) {
	sess.Fields = sess.Fields.Merge(out.Fields)
	// The injected reply is consumed by exactly one re-entered step.
	sess.Fields.Reply = ""

	if out.Missing != nil {
		sess.Missing = out.Missing
	}
	if out.Questions != nil {
		sess.Questions = out.Questions
	}
	if out.SearchHints != nil {
		sess.SearchHints = out.SearchHints
	}
	if out.Tickets != nil {
		sess.Tickets = out.Tickets
	}
	if out.Summary != "" {
		sess.Summary = out.Summary
	}
	if out.RoundComplete {
		sess.Rounds++
	}
}

func (e *Engine) fail(ctx context.Context, sess *domain.Session, ticks int, reason string) {
	e.logger.Error("session failed", "session_id", sess.ID, "reason", reason)
	sess.Status = domain.StatusFailed
	sess.Reason = reason
	sess.Fields.Reply = ""
	e.emitFinish(ctx, sess, ticks)
}

func (e *Engine) emitStep(ctx context.Context, fn func(context.Context, *domain.StepEvent), sess *domain.Session, stepID, outcome string) {
	if fn == nil {
		return
	}
	fn(ctx, &domain.StepEvent{
		Timestamp: time.Now().UTC(),
		SessionID: sess.ID,
		StepID:    stepID,
		Outcome:   outcome,
	})
}

func (e *Engine) emitFinish(ctx context.Context, sess *domain.Session, ticks int) {
	if e.hooks.OnFinish == nil {
		return
	}
	e.hooks.OnFinish(ctx, &domain.FinishEvent{
		Timestamp: time.Now().UTC(),
		SessionID: sess.ID,
		Status:    sess.Status,
		Ticks:     ticks,
	})
}
