package domain

// TicketKind distinguishes the parent story from its subtasks.
type TicketKind string

const (
	TicketParentStory TicketKind = "parent_story"
	TicketSubtask     TicketKind = "subtask"
)

// Ticket is a single unit of planned work produced on the success path.
// Tickets are immutable once created; the workflow never edits a ticket
// after emission.
type Ticket struct {
	Kind        TicketKind `json:"kind"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Estimate    string     `json:"estimate"`
	Priority    string     `json:"priority"`

	// Parent references the parent story's title for subtasks.
	Parent string `json:"parent,omitempty"`

	// Dependencies lists sibling titles expressing build order. Advisory
	// only; nothing enforces it at execution time.
	Dependencies []string `json:"dependencies,omitempty"`

	AcceptanceCriteria []string `json:"acceptance_criteria,omitempty"`
}
