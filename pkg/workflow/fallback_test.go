package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFallback(t *testing.T) {
	cases := []struct {
		name    string
		text    string
		page    string
		feature string
		action  string
	}{
		{
			name:    "complete request",
			text:    "Add a save button to the dashboard page",
			page:    "dashboard",
			feature: "button",
			action:  "save",
		},
		{
			name:    "contact form",
			text:    "Create a contact form on the about page",
			page:    "about",
			feature: "form",
			action:  "contact",
		},
		{
			name:    "vague request",
			text:    "add a button",
			page:    "",
			feature: "button",
			action:  "",
		},
		{
			name:    "implement verb",
			text:    "implement notifications in the settings page",
			page:    "settings",
			feature: "notifications",
			action:  "",
		},
		{
			name:    "action from should",
			text:    "the form should submit to the backend",
			page:    "",
			feature: "form",
			action:  "submit",
		},
		{
			name:    "common page without page keyword",
			text:    "put a link on login",
			page:    "login",
			feature: "link",
			action:  "",
		},
		{
			name:    "refresh data action",
			text:    "add a component that will refresh data on the admin page",
			page:    "admin",
			feature: "component",
			action:  "refresh",
		},
		{
			name:    "nothing recognizable",
			text:    "make it better",
			page:    "",
			feature: "",
			action:  "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fields := ParseFallback(tc.text)
			assert.Equal(t, tc.page, fields.TargetPage, "target_page")
			assert.Equal(t, tc.feature, fields.FeatureType, "feature_type")
			assert.Equal(t, tc.action, fields.Action, "action")
		})
	}
}

func TestParseFallback_StopwordsSkipped(t *testing.T) {
	// "should be" must not yield "be" as an action.
	fields := ParseFallback("it should be better")
	assert.Empty(t, fields.Action)
}

func TestParseFallback_CaseInsensitive(t *testing.T) {
	fields := ParseFallback("ADD A SAVE BUTTON TO THE DASHBOARD PAGE")
	assert.Equal(t, "dashboard", fields.TargetPage)
	assert.Equal(t, "button", fields.FeatureType)
	assert.Equal(t, "save", fields.Action)
}
