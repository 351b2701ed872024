package domain

import "time"

// Status is the lifecycle state of a session. Terminal statuses are sinks.
type Status string

const (
	StatusRunning   Status = "running"
	StatusSuspended Status = "suspended"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// ReplyKind tells the caller what sort of reply a suspended session expects.
type ReplyKind string

const (
	// ReplyClarification expects answers to clarification questions.
	ReplyClarification ReplyKind = "clarification"
	// ReplyAcknowledgment expects a go/no-go on a presented ticket set.
	ReplyAcknowledgment ReplyKind = "acknowledgment"
)

// Prompt is the rendered text a suspended session is waiting on, plus the
// kind of reply it expects back.
type Prompt struct {
	Text   string    `json:"text"`
	Expect ReplyKind `json:"expect"`
}

// Message is one entry in a session's append-only conversation log.
type Message struct {
	Role string    `json:"role"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// Session is the per-conversation execution snapshot: the field bag, a
// cursor into the shared workflow graph, and whatever the workflow has
// produced so far. It is mutated exclusively by the engine.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// Cursor identifies the graph node to execute next.
	Cursor string `json:"cursor"`

	Status Status   `json:"status"`
	Fields FieldSet `json:"fields"`

	// Prompt is set while Status == StatusSuspended.
	Prompt *Prompt `json:"prompt,omitempty"`

	// Outputs accumulated by steps.
	Missing     []string `json:"missing,omitempty"`
	Questions   []string `json:"questions,omitempty"`
	SearchHints []string `json:"search_hints,omitempty"`
	Tickets     []Ticket `json:"tickets,omitempty"`
	Summary     string   `json:"summary,omitempty"`

	// Reason explains a failed session in human-readable terms.
	Reason string `json:"reason,omitempty"`

	// Rounds counts completed clarification round-trips.
	Rounds int `json:"rounds,omitempty"`

	Log []Message `json:"log,omitempty"`
}

// NewSession creates a running session positioned at the given entry node.
func NewSession(id, entry, text string) *Session {
	s := &Session{
		ID:        id,
		CreatedAt: time.Now().UTC(),
		Cursor:    entry,
		Status:    StatusRunning,
		Fields:    FieldSet{RawText: text},
	}
	s.Append("user", text)
	return s
}

// Append adds a message to the conversation log.
func (s *Session) Append(role, text string) {
	s.Log = append(s.Log, Message{Role: role, Text: text, At: time.Now().UTC()})
}

// Terminal reports whether the session has reached a sink state.
func (s *Session) Terminal() bool {
	return s.Status == StatusSucceeded || s.Status == StatusFailed
}

// Clone returns a deep copy, so stores can hand out snapshots without
// aliasing the caller's slices.
func (s *Session) Clone() *Session {
	out := *s
	if s.Prompt != nil {
		p := *s.Prompt
		out.Prompt = &p
	}
	out.Missing = append([]string(nil), s.Missing...)
	out.Questions = append([]string(nil), s.Questions...)
	out.SearchHints = append([]string(nil), s.SearchHints...)
	out.Log = append([]Message(nil), s.Log...)
	out.Tickets = make([]Ticket, len(s.Tickets))
	for i, t := range s.Tickets {
		out.Tickets[i] = t
		out.Tickets[i].Dependencies = append([]string(nil), t.Dependencies...)
		out.Tickets[i].AcceptanceCriteria = append([]string(nil), t.AcceptanceCriteria...)
	}
	return &out
}
