package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		reply   string
		verdict Verdict
	}{
		{"yes", VerdictProceed},
		{"Yes!", VerdictProceed},
		{"ok", VerdictProceed},
		{"sure, go ahead", VerdictProceed},
		{"continue", VerdictProceed},
		{"no", VerdictAbandon},
		{"No.", VerdictAbandon},
		{"stop", VerdictAbandon},
		{"cancel", VerdictAbandon},
		{"please end this", VerdictAbandon},
		// Anything unrecognized proceeds; replies usually carry data.
		{"the dashboard page", VerdictProceed},
		{"", VerdictProceed},
		// Affirmative wins when both appear.
		{"yes, but stop asking", VerdictProceed},
	}

	for _, tc := range cases {
		t.Run(tc.reply, func(t *testing.T) {
			assert.Equal(t, tc.verdict, Classify(tc.reply))
		})
	}
}
