package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clarita-pm/clarita/pkg/domain"
)

func TestNew_GraphShape(t *testing.T) {
	g := New(OfflineExtractor{})

	assert.Equal(t, StepParse, g.Entry())
	assert.ElementsMatch(t, []string{
		StepParse, StepGate, StepClarify, StepAwait, StepTickets, StepReview,
	}, g.IDs())

	parse, ok := g.Node(StepParse)
	require.True(t, ok)
	assert.Equal(t, StepGate, parse.Next)

	gate, ok := g.Node(StepGate)
	require.True(t, ok)
	assert.Equal(t, StepTickets, gate.Branches[BranchSufficient])
	assert.Equal(t, StepClarify, gate.Branches[BranchInsufficient])

	await, ok := g.Node(StepAwait)
	require.True(t, ok)
	assert.Equal(t, StepTickets, await.Branches[BranchProceed])
	assert.Equal(t, StepGate, await.Branches[BranchRecheck])

	review, ok := g.Node(StepReview)
	require.True(t, ok)
	assert.Empty(t, review.Next, "review must be terminal")

	// Every successor must resolve to a node.
	for _, id := range g.IDs() {
		n, _ := g.Node(id)
		if n.Next != "" {
			_, ok := g.Node(n.Next)
			assert.True(t, ok, "next of %s", id)
		}
		for label, target := range n.Branches {
			_, ok := g.Node(target)
			assert.True(t, ok, "branch %s of %s", label, id)
		}
	}
}

func TestGateStep_Branching(t *testing.T) {
	g := New(OfflineExtractor{})
	gate, _ := g.Node(StepGate)

	complete := domain.NewSession("s1", StepGate, "add a save button to the dashboard page")
	complete.Fields = domain.FieldSet{TargetPage: "dashboard", FeatureType: "button", RawText: complete.Fields.RawText}
	out := gate.Step.Run(context.Background(), complete)
	assert.Equal(t, KindBranch, out.Kind)
	assert.Equal(t, BranchSufficient, out.Branch)

	vague := domain.NewSession("s2", StepGate, "add a button")
	vague.Fields = domain.FieldSet{FeatureType: "button", RawText: vague.Fields.RawText}
	out = gate.Step.Run(context.Background(), vague)
	assert.Equal(t, KindBranch, out.Kind)
	assert.Equal(t, BranchInsufficient, out.Branch)
	assert.Contains(t, out.Missing, domain.FieldTargetPage)
}

func TestClarifyStep_FallbackQuestionsAndHints(t *testing.T) {
	g := New(OfflineExtractor{})
	clarify, _ := g.Node(StepClarify)

	sess := domain.NewSession("s1", StepClarify, "add a button")
	sess.Fields.FeatureType = "button"
	sess.Missing = []string{domain.FieldTargetPage, domain.FieldAction}

	out := clarify.Step.Run(context.Background(), sess)
	assert.Equal(t, KindContinue, out.Kind)
	assert.Equal(t, FallbackQuestions, out.Questions)
	assert.Len(t, out.SearchHints, 2)
}

func TestClarifyStep_CapsQuestions(t *testing.T) {
	g := New(OfflineExtractor{})
	clarify, _ := g.Node(StepClarify)

	sess := domain.NewSession("s1", StepClarify, "add a button")
	sess.Questions = []string{"q1", "q2", "q3", "q4", "q5"}

	out := clarify.Step.Run(context.Background(), sess)
	assert.Equal(t, []string{"q1", "q2", "q3"}, out.Questions)
}

func TestAwaitStep_SuspendsWithoutReply(t *testing.T) {
	g := New(OfflineExtractor{})
	await, _ := g.Node(StepAwait)

	sess := domain.NewSession("s1", StepAwait, "add a button")
	sess.Questions = FallbackQuestions

	out := await.Step.Run(context.Background(), sess)
	assert.Equal(t, KindSuspend, out.Kind)
	assert.Equal(t, domain.ReplyClarification, out.Expect)
	assert.NotEmpty(t, out.Prompt)
}

func TestAwaitStep_ReplyProceedsWithParsedFields(t *testing.T) {
	g := New(OfflineExtractor{})
	await, _ := g.Node(StepAwait)

	sess := domain.NewSession("s1", StepAwait, "add a button")
	sess.Fields.Reply = "yes, the dashboard page"

	out := await.Step.Run(context.Background(), sess)
	assert.Equal(t, KindBranch, out.Kind)
	assert.Equal(t, BranchProceed, out.Branch)
	assert.Equal(t, "dashboard", out.Fields.TargetPage)
	assert.True(t, out.RoundComplete)
}

func TestAwaitStep_NegativeReplyAbandons(t *testing.T) {
	g := New(OfflineExtractor{})
	await, _ := g.Node(StepAwait)

	sess := domain.NewSession("s1", StepAwait, "add a button")
	sess.Fields.Reply = "no, cancel"

	out := await.Step.Run(context.Background(), sess)
	assert.Equal(t, KindFail, out.Kind)
	assert.Equal(t, ReasonAbandoned, out.Reason)
}

func TestAwaitStep_RecheckWithMoreRounds(t *testing.T) {
	g := New(OfflineExtractor{}, WithMaxRounds(2))
	await, _ := g.Node(StepAwait)

	sess := domain.NewSession("s1", StepAwait, "add a button")
	sess.Fields.Reply = "the dashboard page"

	out := await.Step.Run(context.Background(), sess)
	assert.Equal(t, BranchRecheck, out.Branch)

	// After the final allowed round the workflow proceeds regardless.
	sess.Rounds = 1
	sess.Fields.Reply = "still not sure"
	out = await.Step.Run(context.Background(), sess)
	assert.Equal(t, BranchProceed, out.Branch)
}

func TestReviewStep(t *testing.T) {
	g := New(OfflineExtractor{})
	review, _ := g.Node(StepReview)

	sess := domain.NewSession("s1", StepReview, "add a save button to the dashboard page")
	sess.Tickets, sess.Summary = BuildTickets(domain.FieldSet{TargetPage: "dashboard", FeatureType: "button", Action: "save"})

	out := review.Step.Run(context.Background(), sess)
	assert.Equal(t, KindSuspend, out.Kind)
	assert.Equal(t, domain.ReplyAcknowledgment, out.Expect)

	sess.Fields.Reply = "ok"
	out = review.Step.Run(context.Background(), sess)
	assert.Equal(t, KindContinue, out.Kind)

	sess.Fields.Reply = "no"
	out = review.Step.Run(context.Background(), sess)
	assert.Equal(t, KindFail, out.Kind)
	assert.Equal(t, ReasonAbandoned, out.Reason)
}
