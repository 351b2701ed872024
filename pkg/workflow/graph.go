package workflow

import (
	"io"
	"log/slog"

	"github.com/clarita-pm/clarita/pkg/ports"
)

// Node is one vertex of the workflow graph: a step plus its successors.
// Exactly one of Next/Branches is meaningful per outcome kind: Continue
// follows Next (an empty Next marks a terminal node), Branch follows the
// matching label.
type Node struct {
	Step     Step
	Next     string
	Branches map[string]string
}

// Graph is the fixed composition of steps. It owns no session state and is
// shared read-only by all sessions.
type Graph struct {
	entry string
	nodes map[string]*Node
}

// Option configures graph construction.
type Option func(*config)

type config struct {
	maxRounds int
	logger    *slog.Logger
}

// WithMaxRounds allows up to n clarification round-trips before the workflow
// proceeds with whatever data is available. The default is 1 (a single
// round-trip per suspension); the engine's tick budget bounds it either way.
func WithMaxRounds(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxRounds = n
		}
	}
}

// WithLogger sets the logger steps use for collaborator-failure warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// New builds the Clarita analysis graph around the given extractor.
func New(extractor ports.Extractor, opts ...Option) *Graph {
	cfg := config{
		maxRounds: 1,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Graph{
		entry: StepParse,
		nodes: map[string]*Node{
			StepParse: {
				Step: &parseStep{extractor: extractor, logger: cfg.logger},
				Next: StepGate,
			},
			StepGate: {
				Step: &gateStep{extractor: extractor, logger: cfg.logger},
				Branches: map[string]string{
					BranchSufficient:   StepTickets,
					BranchInsufficient: StepClarify,
				},
			},
			StepClarify: {
				Step: &clarifyStep{},
				Next: StepAwait,
			},
			StepAwait: {
				Step: &awaitStep{maxRounds: cfg.maxRounds},
				Branches: map[string]string{
					BranchProceed: StepTickets,
					BranchRecheck: StepGate,
				},
			},
			StepTickets: {
				Step: &ticketsStep{},
				Next: StepReview,
			},
			StepReview: {
				Step: &reviewStep{},
				// Terminal: an empty Next completes the session.
			},
		},
	}
}

// Entry returns the ID of the first node.
func (g *Graph) Entry() string { return g.entry }

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// IDs returns all node IDs, for introspection and health checks.
func (g *Graph) IDs() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	return ids
}
