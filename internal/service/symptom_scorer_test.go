package service

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hormone-insights-server/internal/domain"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestSymptomScorerNoTriggeredRules(t *testing.T) {
	scorer := NewSymptomScorer(testLogger())
	responses := &domain.SurveyResponses{
		CycleRegularity: domain.CycleRegular,
		FlowType:        domain.FlowModerate,
		EnergyPattern:   domain.EnergyStable,
		MoodPattern:     domain.MoodStable,
		StressLevel:     domain.StressLow,
		BirthControl:    domain.BirthControlNone,
	}

	scores, explanations := scorer.Score(responses, domain.PhaseFollicular)
	assert.Equal(t, 0, scores.Total())
	assert.Empty(t, explanations)
}

func TestSymptomScorerSingleRules(t *testing.T) {
	tests := []struct {
		name      string
		responses domain.SurveyResponses
		phase     domain.CyclePhase
		want      domain.HormoneScores
	}{
		{
			name:      "irregular cycles",
			responses: domain.SurveyResponses{CycleRegularity: domain.CycleIrregular},
			want:      domain.HormoneScores{domain.HormoneProgesterone: 2},
		},
		{
			name:      "no period",
			responses: domain.SurveyResponses{CycleRegularity: domain.CycleNoPeriod},
			want:      domain.HormoneScores{domain.HormoneAndrogens: 3, domain.HormoneEstrogen: 2},
		},
		{
			name:      "painful flow",
			responses: domain.SurveyResponses{FlowType: domain.FlowPainful},
			want:      domain.HormoneScores{domain.HormoneProgesterone: 2, domain.HormoneEstrogen: 1},
		},
		{
			name:      "hair loss",
			responses: domain.SurveyResponses{Symptoms: []string{"Hair Loss"}},
			want:      domain.HormoneScores{domain.HormoneAndrogens: 2, domain.HormoneThyroid: 1},
		},
		{
			name:      "afternoon crash",
			responses: domain.SurveyResponses{EnergyPattern: domain.EnergyAfternoonCrash},
			want:      domain.HormoneScores{domain.HormoneInsulin: 2, domain.HormoneCortisol: 1},
		},
		{
			name:      "constant fatigue",
			responses: domain.SurveyResponses{EnergyPattern: domain.EnergyConstantFatigue},
			want:      domain.HormoneScores{domain.HormoneThyroid: 3, domain.HormoneCortisol: 3},
		},
		{
			name:      "sad mood",
			responses: domain.SurveyResponses{MoodPattern: domain.MoodSad},
			want:      domain.HormoneScores{domain.HormoneThyroid: 2, domain.HormoneProgesterone: 1},
		},
		{
			name:      "chocolate craving",
			responses: domain.SurveyResponses{Cravings: []string{"chocolate"}},
			want:      domain.HormoneScores{domain.HormoneProgesterone: 2},
		},
		{
			name:      "moderate stress",
			responses: domain.SurveyResponses{StressLevel: domain.StressModerate},
			want:      domain.HormoneScores{domain.HormoneCortisol: 1},
		},
		{
			name:      "recently stopped birth control",
			responses: domain.SurveyResponses{BirthControl: domain.BirthControlRecentlyStopped},
			want:      domain.HormoneScores{domain.HormoneAndrogens: 2, domain.HormoneEstrogen: 1},
		},
		{
			name:      "hashimotos condition",
			responses: domain.SurveyResponses{Conditions: []string{"Hashimoto's"}},
			want:      domain.HormoneScores{domain.HormoneThyroid: 4},
		},
		{
			name:      "pmdd condition",
			responses: domain.SurveyResponses{Conditions: []string{"PMDD"}},
			want:      domain.HormoneScores{domain.HormoneProgesterone: 3},
		},
	}

	scorer := NewSymptomScorer(testLogger())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			phase := tt.phase
			if phase == "" {
				phase = domain.PhaseUnknown
			}
			scores, explanations := scorer.Score(&tt.responses, phase)
			for _, h := range domain.CanonicalHormones() {
				assert.Equal(t, tt.want[h], scores[h], "hormone %s", h)
			}
			assert.NotEmpty(t, explanations)
		})
	}
}

func TestSymptomScorerLutealGating(t *testing.T) {
	scorer := NewSymptomScorer(testLogger())
	responses := &domain.SurveyResponses{
		Symptoms: []string{"bloating", "breast tenderness"},
	}

	scores, explanations := scorer.Score(responses, domain.PhaseLuteal)
	assert.Equal(t, 0, scores[domain.HormoneEstrogen], "luteal bloating and tenderness are expected, not scored")
	assert.Empty(t, explanations)

	scores, explanations = scorer.Score(responses, domain.PhaseFollicular)
	assert.Equal(t, 4, scores[domain.HormoneEstrogen])
	require.Len(t, explanations, 2)
}

func TestSymptomScorerExplanationOrder(t *testing.T) {
	scorer := NewSymptomScorer(testLogger())
	responses := &domain.SurveyResponses{
		CycleRegularity: domain.CycleIrregular,
		FlowType:        domain.FlowHeavy,
		StressLevel:     domain.StressHigh,
		Conditions:      []string{"PCOS"},
	}

	_, explanations := scorer.Score(responses, domain.PhaseUnknown)
	require.Len(t, explanations, 4)
	assert.Contains(t, explanations[0], "Irregular cycles")
	assert.Contains(t, explanations[1], "Heavy flow")
	assert.Contains(t, explanations[2], "High stress")
	assert.Contains(t, explanations[3], "PCOS")
}

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, "hairloss", normalizeKey("Hair Loss"))
	assert.Equal(t, "breasttenderness", normalizeKey("  Breast  Tenderness "))
	assert.Equal(t, "pcos", normalizeKey("PCOS"))
}
