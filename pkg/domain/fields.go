package domain

// Field names as they appear in envelopes and in validation diagnostics.
const (
	FieldTargetPage  = "target_page"
	FieldFeatureType = "feature_type"
	FieldAction      = "action"
)

// FieldSet is the accumulated structured understanding of a feature request.
// Absence is modeled as the empty string. Once a field is set within a
// session it is never cleared; later steps may only fill gaps or overwrite
// with a fresh non-empty value (see Merge).
type FieldSet struct {
	TargetPage  string `json:"target_page,omitempty"`
	FeatureType string `json:"feature_type,omitempty"`
	Action      string `json:"action,omitempty"`

	// RawText is the original free-text request the fields were derived from.
	RawText string `json:"raw_text,omitempty"`

	// Reply is the reserved slot the engine uses to inject a resume reply.
	// It is consumed by the suspension step on re-entry and never survives
	// past the tick that consumed it.
	Reply string `json:"reply,omitempty"`
}

// Merge returns the union of f and other. Non-empty values from other win;
// empty values in other never clear anything already present in f.
func (f FieldSet) Merge(other FieldSet) FieldSet {
	out := f
	if other.TargetPage != "" {
		out.TargetPage = other.TargetPage
	}
	if other.FeatureType != "" {
		out.FeatureType = other.FeatureType
	}
	if other.Action != "" {
		out.Action = other.Action
	}
	if other.RawText != "" {
		out.RawText = other.RawText
	}
	if other.Reply != "" {
		out.Reply = other.Reply
	}
	return out
}

// Complete reports whether the minimum set of fields required to proceed
// autonomously (target page and feature type) is present.
func (f FieldSet) Complete() bool {
	return f.TargetPage != "" && f.FeatureType != ""
}

// Missing lists the names of required fields that are still absent.
// The action field is reported as missing but does not block sufficiency
// on its own.
func (f FieldSet) Missing() []string {
	var missing []string
	if f.TargetPage == "" {
		missing = append(missing, FieldTargetPage)
	}
	if f.FeatureType == "" {
		missing = append(missing, FieldFeatureType)
	}
	if f.Action == "" {
		missing = append(missing, FieldAction)
	}
	return missing
}

// Validation is the verdict of the extractor's sufficiency check.
type Validation struct {
	Sufficient bool     `json:"sufficient"`
	Missing    []string `json:"missing,omitempty"`
	Questions  []string `json:"questions,omitempty"`
}
