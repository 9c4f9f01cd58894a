package service

import "github.com/hormone-insights-server/internal/domain"

// Confidence thresholds.
const (
	highScoreThreshold   = 15
	mediumScoreThreshold = 8
	labUpgradeCount      = 3
)

const unknownPhaseExplanation = "Confidence reduced because cycle phase could not be determined"

// EvaluateConfidence derives the confidence label from total score magnitude,
// cycle phase certainty, and the number of supplied lab values.
//
// The unknown-phase downgrade is applied before lab upgrades, so labs can
// partially offset cycle phase uncertainty: a low base with three or more
// labs climbs to medium on the any-lab rule and then high on the count rule.
// Returns the level and any explanation strings produced along the way.
func EvaluateConfidence(totalScore int, phase domain.CyclePhase, labCount int) (domain.ConfidenceLevel, []string) {
	var level domain.ConfidenceLevel
	switch {
	case totalScore >= highScoreThreshold:
		level = domain.ConfidenceHigh
	case totalScore >= mediumScoreThreshold:
		level = domain.ConfidenceMedium
	default:
		level = domain.ConfidenceLow
	}

	var explanations []string
	if phase == domain.PhaseUnknown {
		level = level.Downgrade()
		explanations = append(explanations, unknownPhaseExplanation)
	}

	if labCount > 0 && level == domain.ConfidenceLow {
		level = level.Upgrade()
	}
	if labCount >= labUpgradeCount && level == domain.ConfidenceMedium {
		level = level.Upgrade()
	}

	return level, explanations
}
