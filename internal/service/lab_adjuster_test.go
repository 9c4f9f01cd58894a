package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hormone-insights-server/internal/domain"
)

func TestLabAdjusterThresholds(t *testing.T) {
	tests := []struct {
		name        string
		labs        domain.LabValues
		wantHormone domain.Hormone
		wantPoints  int
	}{
		{"lh fsh ratio high", domain.LabValues{LH: "12", FSH: "4"}, domain.HormoneAndrogens, 2},
		{"free testosterone high", domain.LabValues{FreeTestosterone: "2.5"}, domain.HormoneAndrogens, 2},
		{"dhea high", domain.LabValues{DHEA: "350"}, domain.HormoneAndrogens, 2},
		{"tsh high", domain.LabValues{TSH: "3.2"}, domain.HormoneThyroid, 2},
		{"t3 low", domain.LabValues{T3: "85"}, domain.HormoneThyroid, 2},
		{"fasting insulin high", domain.LabValues{FastingInsulin: "9"}, domain.HormoneInsulin, 2},
		{"hba1c high", domain.LabValues{HbA1c: "5.7"}, domain.HormoneInsulin, 2},
	}

	adjuster := NewLabAdjuster(testLogger())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores := domain.NewHormoneScores()
			conflicts := adjuster.Adjust(scores, tt.labs)
			assert.Equal(t, tt.wantPoints, scores[tt.wantHormone])
			assert.Len(t, conflicts, 1)
		})
	}
}

func TestLabAdjusterBelowThresholdsNoChange(t *testing.T) {
	adjuster := NewLabAdjuster(testLogger())
	scores := domain.NewHormoneScores()
	conflicts := adjuster.Adjust(scores, domain.LabValues{
		LH: "5", FSH: "4", FreeTestosterone: "1.5", DHEA: "200",
		TSH: "1.8", T3: "120", FastingInsulin: "4", HbA1c: "5.0",
	})
	assert.Equal(t, 0, scores.Total())
	assert.Empty(t, conflicts)
}

func TestLabAdjusterRatioConflictString(t *testing.T) {
	adjuster := NewLabAdjuster(testLogger())
	scores := domain.NewHormoneScores()

	conflicts := adjuster.Adjust(scores, domain.LabValues{LH: "12", FSH: "4"})
	require.Len(t, conflicts, 1)
	assert.Contains(t, conflicts[0], "3.0")
	assert.Contains(t, conflicts[0], "2.5")
	assert.Equal(t, 2, scores[domain.HormoneAndrogens])
}

func TestLabAdjusterLowFreeTestosteroneConflict(t *testing.T) {
	adjuster := NewLabAdjuster(testLogger())

	t.Run("symptom androgens present records conflict without score change", func(t *testing.T) {
		scores := domain.NewHormoneScores()
		scores.Add(domain.HormoneAndrogens, 3)
		conflicts := adjuster.Adjust(scores, domain.LabValues{FreeTestosterone: "0.5"})
		require.Len(t, conflicts, 1)
		assert.Contains(t, conflicts[0], "0.5")
		assert.Equal(t, 3, scores[domain.HormoneAndrogens])
	})

	t.Run("no symptom androgens records nothing", func(t *testing.T) {
		scores := domain.NewHormoneScores()
		conflicts := adjuster.Adjust(scores, domain.LabValues{FreeTestosterone: "0.5"})
		assert.Empty(t, conflicts)
	})
}

func TestLabAdjusterMalformedValuesSkipped(t *testing.T) {
	adjuster := NewLabAdjuster(testLogger())
	scores := domain.NewHormoneScores()
	conflicts := adjuster.Adjust(scores, domain.LabValues{
		TSH: "not-a-number", FastingInsulin: "", HbA1c: ">6",
	})
	assert.Equal(t, 0, scores.Total())
	assert.Empty(t, conflicts)
}

func TestLabAdjusterNonNegativeInvariant(t *testing.T) {
	adjuster := NewLabAdjuster(testLogger())
	scores := domain.NewHormoneScores()
	adjuster.Adjust(scores, domain.LabValues{
		LH: "15", FSH: "3", DHEA: "400", TSH: "4", T3: "80", FastingInsulin: "12", HbA1c: "6.0",
	})
	for _, h := range domain.CanonicalHormones() {
		assert.GreaterOrEqual(t, scores[h], 0)
	}
}

func TestCountLabValues(t *testing.T) {
	assert.Equal(t, 0, CountLabValues(domain.LabValues{}))
	assert.Equal(t, 2, CountLabValues(domain.LabValues{LH: "12", FSH: "4"}))
	assert.Equal(t, 1, CountLabValues(domain.LabValues{TSH: "2.1", T3: "abc"}))
	assert.Equal(t, 8, CountLabValues(domain.LabValues{
		FreeTestosterone: "1", DHEA: "2", LH: "3", FSH: "4",
		TSH: "5", T3: "6", FastingInsulin: "7", HbA1c: "8",
	}))
}
