// Package service implements the hormone scoring and recommendation matching
// engine: cycle phase calculation, symptom and lab scoring, confidence
// evaluation, and relevance/quality based recommendation ranking.
package service

import (
	"time"

	"github.com/hormone-insights-server/internal/domain"
)

const (
	defaultCycleLength = 28
	msPerDay           = 86400000
	menstrualEndDay    = 5
	lutealOffset       = 14
)

// CalculateCyclePhase derives the categorical cycle phase from the last
// period start date and cycle parameters. Pure and deterministic for a fixed
// now; callers inject now for testability.
//
// Degenerate cycle lengths fall through the classification chain to unknown
// rather than producing an error.
func CalculateCyclePhase(lastPeriod *time.Time, regular bool, cycleLength int, now time.Time) domain.CyclePhase {
	if lastPeriod == nil || !regular {
		return domain.PhaseUnknown
	}
	if cycleLength == 0 {
		cycleLength = defaultCycleLength
	}
	if cycleLength < 0 {
		return domain.PhaseUnknown
	}

	daysSince := now.UnixMilli() - lastPeriod.UnixMilli()
	if daysSince < 0 {
		return domain.PhaseUnknown
	}
	days := int(daysSince / msPerDay)

	cycleDay := (days % cycleLength) + 1
	ovulationDay := cycleLength - lutealOffset

	switch {
	case cycleDay >= 1 && cycleDay <= menstrualEndDay:
		return domain.PhaseMenstrual
	case cycleDay >= menstrualEndDay+1 && cycleDay < ovulationDay:
		return domain.PhaseFollicular
	case cycleDay == ovulationDay:
		return domain.PhaseOvulation
	case cycleDay > ovulationDay && cycleDay <= cycleLength:
		return domain.PhaseLuteal
	default:
		return domain.PhaseUnknown
	}
}
