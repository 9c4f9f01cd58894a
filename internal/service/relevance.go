package service

import "github.com/hormone-insights-server/internal/domain"

// Relevance dimension weights. Primary imbalance dominates, secondary
// imbalances and diagnosed conditions follow, contextual dimensions trail.
const (
	weightPrimary      = 3.0
	weightSecondary    = 2.0
	weightCondition    = 2.5
	weightSymptom      = 1.5
	weightCyclePhase   = 1.5
	weightBirthControl = 1.5
	weightCraving      = 1.0
)

// ScoreRelevance accumulates the weighted match strength between a user
// profile and one study. Missing keys in any relevance map contribute zero.
// Study relevance map keys are normalized at corpus load, so profile values
// are normalized here before lookup.
func ScoreRelevance(profile *domain.UserProfile, study *domain.ResearchStudy) float64 {
	score := 0.0

	if profile.PrimaryImbalance != "" {
		score += study.HormoneRelevance[profile.PrimaryImbalance] * weightPrimary
	}
	for _, h := range profile.SecondaryImbalances {
		score += study.HormoneRelevance[h] * weightSecondary
	}

	for _, condition := range profile.Conditions {
		score += study.ConditionRelevance[normalizeKey(condition)] * weightCondition
	}

	for _, symptom := range profile.Symptoms {
		score += study.SymptomRelevance[normalizeKey(symptom)] * weightSymptom
	}

	// Unknown phase is uncertainty, not a matchable state.
	if profile.CyclePhase != domain.PhaseUnknown {
		score += study.CyclePhaseRelevance[profile.CyclePhase] * weightCyclePhase
	}

	if profile.BirthControl != "" {
		score += study.BirthControlRelevance[normalizeKey(string(profile.BirthControl))] * weightBirthControl
	}

	for _, craving := range profile.Cravings {
		score += study.CravingRelevance[normalizeKey(craving)] * weightCraving
	}

	return score
}
