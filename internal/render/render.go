// Package render builds the human-readable markdown Clarita hands back to
// callers: clarification prompts, ticket sets, and session summaries.
package render

import (
	"fmt"
	"strings"

	"github.com/clarita-pm/clarita/pkg/domain"
)

const notSpecified = "Not specified"

// ClarificationPrompt renders the text a session suspends on when the gate
// reports insufficiency: the questions to answer, optional codebase search
// suggestions, and a recap of what was understood so far.
func ClarificationPrompt(sess *domain.Session) string {
	var b strings.Builder

	b.WriteString("I need some clarification to create comprehensive tickets.\n\n")
	b.WriteString("**Questions for you:**\n")
	for i, q := range sess.Questions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}

	if len(sess.SearchHints) > 0 {
		b.WriteString("\n**Codebase searches to perform:**\n")
		for i, h := range sess.SearchHints {
			fmt.Fprintf(&b, "%d. %s\n", i+1, h)
		}
	}

	b.WriteString("\n**What I understand so far:**\n")
	writeFields(&b, sess.Fields)
	b.WriteString("\nReply with the missing details, or say \"proceed\" to continue with what we have.\n")

	return b.String()
}

// TicketPrompt renders a generated ticket set for acknowledgment.
func TicketPrompt(sess *domain.Session) string {
	return TicketReport(sess) + "\nReply \"ok\" to accept this plan, or \"cancel\" to discard it.\n"
}

// TicketReport renders a generated ticket set without the acknowledgment
// instruction, for completed sessions.
func TicketReport(sess *domain.Session) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generated %d tickets:\n\n", len(sess.Tickets))

	for _, t := range sess.Tickets {
		if t.Kind != domain.TicketParentStory {
			continue
		}
		fmt.Fprintf(&b, "**Parent Story: %s**\n", t.Title)
		fmt.Fprintf(&b, "- Description: %s\n", t.Description)
		fmt.Fprintf(&b, "- Estimate: %s\n", t.Estimate)
		fmt.Fprintf(&b, "- Priority: %s\n\n", t.Priority)
	}

	b.WriteString("**Subtasks:**\n")
	i := 0
	for _, t := range sess.Tickets {
		if t.Kind != domain.TicketSubtask {
			continue
		}
		i++
		fmt.Fprintf(&b, "%d. **%s**\n", i, t.Title)
		fmt.Fprintf(&b, "   - Description: %s\n", t.Description)
		fmt.Fprintf(&b, "   - Estimate: %s\n", t.Estimate)
		fmt.Fprintf(&b, "   - Priority: %s\n", t.Priority)
		if len(t.Dependencies) > 0 {
			fmt.Fprintf(&b, "   - Dependencies: %s\n", strings.Join(t.Dependencies, ", "))
		}
		if len(t.AcceptanceCriteria) > 0 {
			b.WriteString("   - Acceptance Criteria:\n")
			for _, c := range t.AcceptanceCriteria {
				fmt.Fprintf(&b, "     - %s\n", c)
			}
		}
		b.WriteString("\n")
	}

	if sess.Summary != "" {
		fmt.Fprintf(&b, "%s\n", sess.Summary)
	}

	return b.String()
}

// SessionInfo renders a session overview with the tail of its conversation
// log, for the get_session_info tool and the session inspect command.
func SessionInfo(sess *domain.Session) string {
	var b strings.Builder

	b.WriteString("**Session Information**\n\n")
	fmt.Fprintf(&b, "- ID: %s\n", sess.ID)
	fmt.Fprintf(&b, "- Created: %s\n", sess.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "- Status: %s\n", sess.Status)
	fmt.Fprintf(&b, "- Messages: %d\n", len(sess.Log))
	if sess.Reason != "" {
		fmt.Fprintf(&b, "- Reason: %s\n", sess.Reason)
	}

	b.WriteString("\n**Fields:**\n")
	writeFields(&b, sess.Fields)

	if len(sess.Tickets) > 0 {
		fmt.Fprintf(&b, "\n**Tickets:** %d generated\n", len(sess.Tickets))
	}

	if len(sess.Log) > 0 {
		b.WriteString("\n**Recent messages:**\n")
		log := sess.Log
		if len(log) > 5 {
			log = log[len(log)-5:]
		}
		for i, m := range log {
			fmt.Fprintf(&b, "%d. [%s] %s\n", i+1, m.Role, truncate(m.Text, 100))
		}
	}

	return b.String()
}

func writeFields(b *strings.Builder, f domain.FieldSet) {
	fmt.Fprintf(b, "- Target page: %s\n", orNotSpecified(f.TargetPage))
	fmt.Fprintf(b, "- Feature type: %s\n", orNotSpecified(f.FeatureType))
	fmt.Fprintf(b, "- Action: %s\n", orNotSpecified(f.Action))
}

func orNotSpecified(s string) string {
	if s == "" {
		return notSpecified
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
