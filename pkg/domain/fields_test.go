package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldSet_Merge(t *testing.T) {
	base := FieldSet{FeatureType: "button", RawText: "add a button"}

	merged := base.Merge(FieldSet{TargetPage: "dashboard"})
	assert.Equal(t, "dashboard", merged.TargetPage)
	assert.Equal(t, "button", merged.FeatureType)
	assert.Equal(t, "add a button", merged.RawText)

	// Empty values never clear what is already present.
	merged = merged.Merge(FieldSet{})
	assert.Equal(t, "dashboard", merged.TargetPage)
	assert.Equal(t, "button", merged.FeatureType)

	// Fresh non-empty values overwrite.
	merged = merged.Merge(FieldSet{FeatureType: "form"})
	assert.Equal(t, "form", merged.FeatureType)
}

func TestFieldSet_Complete(t *testing.T) {
	assert.False(t, FieldSet{}.Complete())
	assert.False(t, FieldSet{TargetPage: "dashboard"}.Complete())
	assert.False(t, FieldSet{FeatureType: "button"}.Complete())
	assert.True(t, FieldSet{TargetPage: "dashboard", FeatureType: "button"}.Complete())
}

func TestFieldSet_Missing(t *testing.T) {
	assert.Equal(t,
		[]string{FieldTargetPage, FieldFeatureType, FieldAction},
		FieldSet{}.Missing())

	assert.Equal(t,
		[]string{FieldAction},
		FieldSet{TargetPage: "dashboard", FeatureType: "button"}.Missing())

	assert.Nil(t,
		FieldSet{TargetPage: "dashboard", FeatureType: "button", Action: "save"}.Missing())
}
