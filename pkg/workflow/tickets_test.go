package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clarita-pm/clarita/pkg/domain"
)

func TestBuildTickets_PersistenceAction(t *testing.T) {
	fields := domain.FieldSet{TargetPage: "dashboard", FeatureType: "button", Action: "save"}

	tickets, summary := BuildTickets(fields)
	require.Len(t, tickets, 4)

	parent := tickets[0]
	assert.Equal(t, domain.TicketParentStory, parent.Kind)
	assert.Equal(t, "Add Button to Dashboard Page", parent.Title)
	assert.Equal(t, "4-8 hours", parent.Estimate)
	assert.Equal(t, "Medium", parent.Priority)
	assert.Contains(t, parent.Description, "save")

	frontend := tickets[1]
	assert.Equal(t, domain.TicketSubtask, frontend.Kind)
	assert.Equal(t, parent.Title, frontend.Parent)
	assert.NotEmpty(t, frontend.AcceptanceCriteria)

	backend := tickets[2]
	assert.Contains(t, backend.Title, "Backend")
	assert.Contains(t, backend.Title, "save")
	assert.Equal(t, "4-6 hours", backend.Estimate)

	testing_ := tickets[3]
	assert.Contains(t, testing_.Title, "Testing")
	assert.Equal(t, []string{frontend.Title}, testing_.Dependencies)

	// 4+2+4+2 = 12 floor hours pushes past the current sprint.
	assert.Contains(t, summary, "4 tickets")
	assert.Contains(t, summary, "12+ hours")
	assert.Contains(t, summary, "Next Sprint")
}

func TestBuildTickets_NonPersistenceAction(t *testing.T) {
	fields := domain.FieldSet{TargetPage: "admin", FeatureType: "component", Action: "refresh"}

	tickets, summary := BuildTickets(fields)
	require.Len(t, tickets, 3)

	for _, tk := range tickets {
		assert.NotContains(t, tk.Title, "Backend")
	}
	// 4+2+2 = 8 floor hours fits the current sprint.
	assert.Contains(t, summary, "Current Sprint")
}

func TestBuildTickets_Deterministic(t *testing.T) {
	fields := domain.FieldSet{TargetPage: "profile", FeatureType: "form", Action: "submit"}

	a, summaryA := BuildTickets(fields)
	b, summaryB := BuildTickets(fields)
	assert.Equal(t, a, b)
	assert.Equal(t, summaryA, summaryB)
}

func TestBuildTickets_MissingAction(t *testing.T) {
	fields := domain.FieldSet{TargetPage: "home", FeatureType: "link"}

	tickets, _ := BuildTickets(fields)
	require.Len(t, tickets, 3)
	assert.NotContains(t, tickets[0].Description, "when used")
}
