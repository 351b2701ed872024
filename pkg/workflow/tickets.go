package workflow

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/clarita-pm/clarita/internal/render"
	"github.com/clarita-pm/clarita/pkg/domain"
)

// Node IDs of the ticket branch.
const (
	StepTickets = "tickets"
	StepReview  = "review"
)

// persistenceVerbs are the actions that warrant a backend subtask.
var persistenceVerbs = map[string]struct{}{
	"save": {}, "submit": {}, "update": {}, "delete": {}, "create": {},
}

// ticketsStep deterministically derives the ticket set from the field bag:
// one parent story, a frontend subtask always, a backend subtask only for
// persistence actions, and a testing subtask depending on the frontend one.
type ticketsStep struct{}

func (s *ticketsStep) ID() string { return StepTickets }

func (s *ticketsStep) Run(ctx context.Context, sess *domain.Session) Outcome {
	tickets, summary := BuildTickets(sess.Fields)

	out := Continue(domain.FieldSet{})
	out.Tickets = tickets
	out.Summary = summary
	return out
}

// BuildTickets synthesizes the ticket set for the given fields. The result
// is structurally identical for identical input.
func BuildTickets(f domain.FieldSet) ([]domain.Ticket, string) {
	page := f.TargetPage
	if page == "" {
		page = "unspecified"
	}
	feature := f.FeatureType
	if feature == "" {
		feature = "feature"
	}

	parentTitle := fmt.Sprintf("Add %s to %s Page", titleCase(feature), titleCase(page))
	frontendTitle := fmt.Sprintf("Frontend: %s component on %s page", feature, page)
	testingTitle := fmt.Sprintf("Testing: %s on %s page", feature, page)

	parentDesc := fmt.Sprintf("Implement a %s on the %s page.", feature, page)
	if f.Action != "" {
		parentDesc += fmt.Sprintf(" It should %s when used.", f.Action)
	}

	tickets := []domain.Ticket{
		{
			Kind:        domain.TicketParentStory,
			Title:       parentTitle,
			Description: parentDesc,
			Estimate:    "4-8 hours",
			Priority:    "Medium",
		},
		{
			Kind:        domain.TicketSubtask,
			Title:       frontendTitle,
			Description: fmt.Sprintf("Build the %s UI on the %s page and wire it into the existing layout.", feature, page),
			Estimate:    "2-4 hours",
			Priority:    "Medium",
			Parent:      parentTitle,
			AcceptanceCriteria: []string{
				fmt.Sprintf("The %s is visible on the %s page", feature, page),
				"Styling matches the design system",
			},
		},
	}

	if _, ok := persistenceVerbs[f.Action]; ok {
		tickets = append(tickets, domain.Ticket{
			Kind:        domain.TicketSubtask,
			Title:       fmt.Sprintf("Backend: %s handler for %s %s", f.Action, page, feature),
			Description: fmt.Sprintf("Create the backend endpoint performing the %s operation triggered from the %s page.", f.Action, page),
			Estimate:    "4-6 hours",
			Priority:    "Medium",
			Parent:      parentTitle,
			AcceptanceCriteria: []string{
				fmt.Sprintf("The %s operation persists correctly", f.Action),
				"Errors are surfaced to the client",
			},
		})
	}

	tickets = append(tickets, domain.Ticket{
		Kind:         domain.TicketSubtask,
		Title:        testingTitle,
		Description:  fmt.Sprintf("Cover the %s on the %s page with unit and integration tests.", feature, page),
		Estimate:     "2-3 hours",
		Priority:     "Medium",
		Parent:       parentTitle,
		Dependencies: []string{frontendTitle},
	})

	return tickets, summarize(f, tickets)
}

// summarize produces the one-paragraph recap the success response carries.
func summarize(f domain.FieldSet, tickets []domain.Ticket) string {
	total := 0
	for _, t := range tickets {
		total += estimateFloor(t.Estimate)
	}
	sprint := "Current Sprint"
	if total > 8 {
		sprint = "Next Sprint"
	}
	feature := f.FeatureType
	if feature == "" {
		feature = "feature"
	}
	page := f.TargetPage
	if page == "" {
		page = "unspecified"
	}
	return fmt.Sprintf("Feature analysis complete: %s on %s page. %d tickets, estimated %d+ hours. Recommended: %s.",
		feature, page, len(tickets), total, sprint)
}

// estimateFloor extracts the lower bound of an "N-M hours" estimate.
func estimateFloor(estimate string) int {
	head, _, _ := strings.Cut(estimate, "-")
	n, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return 0
	}
	return n
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// reviewStep is the acknowledgment suspension point: it presents the
// generated ticket set and waits for a go/no-go. Negative replies abandon
// the session; anything else completes it.
type reviewStep struct{}

func (s *reviewStep) ID() string { return StepReview }

func (s *reviewStep) Run(ctx context.Context, sess *domain.Session) Outcome {
	reply := sess.Fields.Reply
	if reply == "" {
		return Suspend(render.TicketPrompt(sess), domain.ReplyAcknowledgment)
	}

	if Classify(reply) == VerdictAbandon {
		return Fail(ReasonAbandoned)
	}

	return Continue(domain.FieldSet{})
}
