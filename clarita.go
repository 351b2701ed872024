package clarita

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/clarita-pm/clarita/internal/logging"
	"github.com/clarita-pm/clarita/internal/runtime"
	"github.com/clarita-pm/clarita/pkg/adapters/memory"
	"github.com/clarita-pm/clarita/pkg/domain"
	"github.com/clarita-pm/clarita/pkg/ports"
	"github.com/clarita-pm/clarita/pkg/session"
	"github.com/clarita-pm/clarita/pkg/workflow"
)

// Engine is the high-level entry point for the library. It wraps the
// internal runtime and provides a simplified API for consumers.
type Engine struct {
	runtime   *runtime.Engine
	graph     *workflow.Graph
	extractor ports.Extractor
	store     ports.SessionStore
	locker    ports.DistributedLocker
	hooks     domain.LifecycleHooks
	logger    *slog.Logger

	tickBudget int
	maxRounds  int
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithExtractor injects an LLM-backed field extractor. The default is
// the offline regex extractor.
func WithExtractor(ex ports.Extractor) Option {
	return func(e *Engine) {
		e.extractor = ex
	}
}

// WithStore injects a session store. The default keeps sessions in memory.
func WithStore(store ports.SessionStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLocker enables distributed locking for multi-instance deployments.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(e *Engine) {
		e.locker = locker
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithTickBudget bounds the number of steps a single run may execute.
func WithTickBudget(n int) Option {
	return func(e *Engine) {
		e.tickBudget = n
	}
}

// WithMaxRounds sets how many clarification round-trips are allowed
// before the workflow proceeds with whatever it has.
func WithMaxRounds(n int) Option {
	return func(e *Engine) {
		e.maxRounds = n
	}
}

// New initializes an Engine with the fixed analyze/clarify/review graph.
func New(opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.extractor == nil {
		eng.extractor = workflow.OfflineExtractor{}
	}
	if eng.store == nil {
		eng.store = memory.NewStore()
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}

	graphOpts := []workflow.Option{workflow.WithLogger(eng.logger)}
	if eng.maxRounds > 0 {
		graphOpts = append(graphOpts, workflow.WithMaxRounds(eng.maxRounds))
	}
	eng.graph = workflow.New(eng.extractor, graphOpts...)

	sessionOpts := []session.Option{session.WithLogger(eng.logger)}
	if eng.locker != nil {
		sessionOpts = append(sessionOpts, session.WithLocker(eng.locker))
	}
	sessions := session.NewManager(eng.store, sessionOpts...)

	runtimeOpts := []runtime.Option{
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
	}
	if eng.tickBudget > 0 {
		runtimeOpts = append(runtimeOpts, runtime.WithTickBudget(eng.tickBudget))
	}
	eng.runtime = runtime.NewEngine(eng.graph, sessions, runtimeOpts...)

	return eng
}

// Analyze starts a new session for the given feature request, or restarts
// an existing one when sessionID names a stored session. An empty
// sessionID mints a fresh ID. The run executes until it suspends for user
// input or reaches a terminal status.
func (e *Engine) Analyze(ctx context.Context, sessionID, text string) (*domain.Session, error) {
	return e.runtime.Analyze(ctx, sessionID, text)
}

// Resume delivers a user reply to a suspended session and continues
// execution. Resuming a session that is not suspended is an error.
func (e *Engine) Resume(ctx context.Context, sessionID, reply string) (*domain.Session, error) {
	return e.runtime.Resume(ctx, sessionID, reply)
}

// Get returns the stored session without advancing it.
func (e *Engine) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	return e.runtime.Get(ctx, sessionID)
}

// Sessions lists the IDs of stored sessions.
func (e *Engine) Sessions(ctx context.Context) ([]string, error) {
	return e.store.List(ctx)
}

// Delete removes a stored session.
func (e *Engine) Delete(ctx context.Context, sessionID string) error {
	return e.store.Delete(ctx, sessionID)
}

// Health verifies the graph is well-formed and the extractor responds.
func (e *Engine) Health(ctx context.Context) error {
	for _, id := range e.graph.IDs() {
		if _, ok := e.graph.Node(id); !ok {
			return fmt.Errorf("graph node %q missing", id)
		}
	}
	if _, err := e.extractor.Extract(ctx, "health check probe"); err != nil {
		return fmt.Errorf("extractor unavailable: %w", err)
	}
	return nil
}

// Graph exposes the workflow graph for introspection.
func (e *Engine) Graph() *workflow.Graph {
	return e.graph
}
