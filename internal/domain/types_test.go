package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHormoneIsValid(t *testing.T) {
	for _, h := range CanonicalHormones() {
		assert.True(t, h.IsValid(), "hormone %s should be valid", h)
	}
	assert.False(t, Hormone("melatonin").IsValid())
	assert.False(t, Hormone("").IsValid())
}

func TestCanonicalHormoneOrder(t *testing.T) {
	want := []Hormone{
		HormoneAndrogens, HormoneProgesterone, HormoneEstrogen,
		HormoneThyroid, HormoneCortisol, HormoneInsulin,
	}
	assert.Equal(t, want, CanonicalHormones())
}

func TestConfidenceDowngrade(t *testing.T) {
	tests := []struct {
		in   ConfidenceLevel
		want ConfidenceLevel
	}{
		{ConfidenceHigh, ConfidenceMedium},
		{ConfidenceMedium, ConfidenceLow},
		{ConfidenceLow, ConfidenceLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.Downgrade(), "downgrade from %s", tt.in)
	}
}

func TestConfidenceUpgrade(t *testing.T) {
	tests := []struct {
		in   ConfidenceLevel
		want ConfidenceLevel
	}{
		{ConfidenceLow, ConfidenceMedium},
		{ConfidenceMedium, ConfidenceHigh},
		{ConfidenceHigh, ConfidenceHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.Upgrade(), "upgrade from %s", tt.in)
	}
}

func TestRecommendationCategories(t *testing.T) {
	cats := RecommendationCategories()
	assert.Equal(t, []InterventionType{CategoryFood, CategoryMovement, CategoryMindfulness}, cats)
	assert.NotContains(t, cats, CategoryCombined)
}

func TestInterventionTypeIsValid(t *testing.T) {
	assert.True(t, CategoryCombined.IsValid())
	assert.False(t, InterventionType("supplements").IsValid())
}

func TestCyclePhaseIsValid(t *testing.T) {
	for _, p := range []CyclePhase{PhaseMenstrual, PhaseFollicular, PhaseOvulation, PhaseLuteal, PhaseUnknown} {
		assert.True(t, p.IsValid())
	}
	assert.False(t, CyclePhase("late-luteal").IsValid())
}
