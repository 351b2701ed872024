package workflow

import "strings"

// Verdict is the interpretation of a resume reply.
type Verdict int

const (
	// VerdictProceed continues with the data available. This is also the
	// default when a reply contains neither affirmative nor negative tokens.
	VerdictProceed Verdict = iota
	// VerdictAbandon stops the workflow.
	VerdictAbandon
)

var affirmativeTokens = []string{"yes", "continue", "proceed", "ok", "sure"}

var negativeTokens = []string{"no", "stop", "cancel", "end"}

// Classify interprets a user reply as proceed or abandon. Affirmative tokens
// win over negative ones; anything unrecognized defaults to proceed.
func Classify(reply string) Verdict {
	words := strings.Fields(strings.ToLower(reply))
	tokens := make(map[string]struct{}, len(words))
	for _, w := range words {
		tokens[strings.Trim(w, ".,!?;:")] = struct{}{}
	}

	for _, t := range affirmativeTokens {
		if _, ok := tokens[t]; ok {
			return VerdictProceed
		}
	}
	for _, t := range negativeTokens {
		if _, ok := tokens[t]; ok {
			return VerdictAbandon
		}
	}
	return VerdictProceed
}
