package workflow

import (
	"regexp"
	"strings"

	"github.com/clarita-pm/clarita/pkg/domain"
)

// Deterministic pattern matcher used when the extractor collaborator is
// unavailable. Matching is first-match-wins across an ordered pattern list
// per field; direct vocabulary matching is the last resort per field.

var pagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`to\s+the\s+(\w+)\s+page`),
	regexp.MustCompile(`on\s+the\s+(\w+)\s+page`),
	regexp.MustCompile(`in\s+the\s+(\w+)\s+page`),
	regexp.MustCompile(`(\w+)\s+page`),
}

var featurePatterns = []*regexp.Regexp{
	regexp.MustCompile(`add\s+(?:an?\s+)?(?:\w+\s+)?(button|form|field|link|component)`),
	regexp.MustCompile(`create\s+(?:an?\s+)?(?:\w+\s+)?(button|form|field|link|component)`),
	regexp.MustCompile(`implement\s+(?:an?\s+)?(\w+)`),
	regexp.MustCompile(`new\s+(\w+)`),
}

var actionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\w+)\s+when\s+clicked`),
	regexp.MustCompile(`should\s+(\w+)`),
	regexp.MustCompile(`will\s+(\w+)`),
	regexp.MustCompile(`(\w+)\s+(?:button|form|link|component)`),
	regexp.MustCompile(`(\w+)\s+data`),
	regexp.MustCompile(`(\w+)\s+the\s+page`),
}

var commonPages = []string{"dashboard", "login", "profile", "settings", "admin", "about", "home"}

var featureVocabulary = []string{"button", "form", "field", "link", "component"}

var stopwords = map[string]struct{}{
	"a": {}, "the": {}, "this": {}, "that": {}, "some": {}, "any": {},
	"be": {}, "do": {}, "have": {},
}

// ParseFallback scans free text with the deterministic pattern matcher.
// It never fails; absent fields are valid output.
func ParseFallback(text string) domain.FieldSet {
	lower := strings.ToLower(text)

	fields := domain.FieldSet{
		TargetPage:  matchFirst(lower, pagePatterns, nil),
		FeatureType: matchFirst(lower, featurePatterns, stopwords),
		Action:      matchFirst(lower, actionPatterns, stopwords),
	}

	if fields.TargetPage == "" {
		fields.TargetPage = matchVocabulary(lower, commonPages)
	}
	if fields.FeatureType == "" {
		fields.FeatureType = matchVocabulary(lower, featureVocabulary)
	}

	return fields
}

// matchFirst returns the first capture group of the first pattern that
// matches, skipping captures present in the skip set.
func matchFirst(text string, patterns []*regexp.Regexp, skip map[string]struct{}) string {
	for _, p := range patterns {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if _, stop := skip[m[1]]; stop {
			continue
		}
		return m[1]
	}
	return ""
}

// matchVocabulary returns the first vocabulary word contained in the text.
func matchVocabulary(text string, vocabulary []string) string {
	for _, word := range vocabulary {
		if strings.Contains(text, word) {
			return word
		}
	}
	return ""
}
