package service

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/hormone-insights-server/internal/domain"
)

// Lab thresholds. Each triggered rule adds a fixed +2 to one axis and records
// a conflict string carrying the measured value and the threshold.
const (
	labAdjustment      = 2
	lhFSHRatioMax      = 2.5
	freeTestosteroneHi = 2.0
	freeTestosteroneLo = 1.0
	dheaMax            = 300.0
	tshMax             = 2.5
	t3Min              = 100.0
	fastingInsulinMax  = 6.0
	hba1cMax           = 5.4
)

// LabAdjuster applies lab value threshold rules on top of symptom-derived
// scores. Unparseable or absent values are skipped, never errors.
type LabAdjuster struct {
	logger *logrus.Logger
}

// NewLabAdjuster creates a lab adjuster.
func NewLabAdjuster(logger *logrus.Logger) *LabAdjuster {
	return &LabAdjuster{logger: logger}
}

// parseLab converts one raw lab field. Empty or malformed values are treated
// as absent.
func parseLab(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// CountLabValues returns how many lab fields carry a parseable value. The
// confidence evaluator uses this count, so malformed values do not inflate it.
func CountLabValues(labs domain.LabValues) int {
	count := 0
	for _, raw := range labs.All() {
		if _, ok := parseLab(raw); ok {
			count++
		}
	}
	return count
}

// Adjust mutates scores in place per the threshold rules and returns the
// recorded conflict strings. Scores are clamped to zero afterwards; current
// rules never subtract, so the clamp is an invariant guard.
func (a *LabAdjuster) Adjust(scores domain.HormoneScores, labs domain.LabValues) []string {
	conflicts := make([]string, 0, 4)

	lh, lhOK := parseLab(labs.LH)
	fsh, fshOK := parseLab(labs.FSH)
	if lhOK && fshOK && fsh > 0 {
		ratio := lh / fsh
		if ratio > lhFSHRatioMax {
			scores.Add(domain.HormoneAndrogens, labAdjustment)
			conflicts = append(conflicts, fmt.Sprintf(
				"LH/FSH ratio %.1f exceeds %.1f, consistent with elevated androgens", ratio, lhFSHRatioMax))
		}
	}

	if freeT, ok := parseLab(labs.FreeTestosterone); ok {
		switch {
		case freeT > freeTestosteroneHi:
			scores.Add(domain.HormoneAndrogens, labAdjustment)
			conflicts = append(conflicts, fmt.Sprintf(
				"Free testosterone %.1f exceeds %.1f, confirming elevated androgens", freeT, freeTestosteroneHi))
		case freeT < freeTestosteroneLo && scores[domain.HormoneAndrogens] > 0:
			// Symptom and lab evidence disagree. Recorded without any score
			// change; downstream consumers decide how to surface it.
			conflicts = append(conflicts, fmt.Sprintf(
				"Symptoms suggest elevated androgens but free testosterone %.1f is below %.1f", freeT, freeTestosteroneLo))
		}
	}

	if dhea, ok := parseLab(labs.DHEA); ok && dhea > dheaMax {
		scores.Add(domain.HormoneAndrogens, labAdjustment)
		conflicts = append(conflicts, fmt.Sprintf(
			"DHEA %.0f exceeds %.0f, consistent with elevated androgens", dhea, dheaMax))
	}

	if tsh, ok := parseLab(labs.TSH); ok && tsh > tshMax {
		scores.Add(domain.HormoneThyroid, labAdjustment)
		conflicts = append(conflicts, fmt.Sprintf(
			"TSH %.1f exceeds %.1f, consistent with low thyroid function", tsh, tshMax))
	}

	if t3, ok := parseLab(labs.T3); ok && t3 < t3Min {
		scores.Add(domain.HormoneThyroid, labAdjustment)
		conflicts = append(conflicts, fmt.Sprintf(
			"T3 %.0f is below %.0f, consistent with low thyroid function", t3, t3Min))
	}

	if insulin, ok := parseLab(labs.FastingInsulin); ok && insulin > fastingInsulinMax {
		scores.Add(domain.HormoneInsulin, labAdjustment)
		conflicts = append(conflicts, fmt.Sprintf(
			"Fasting insulin %.1f exceeds %.1f, consistent with insulin resistance", insulin, fastingInsulinMax))
	}

	if hba1c, ok := parseLab(labs.HbA1c); ok && hba1c > hba1cMax {
		scores.Add(domain.HormoneInsulin, labAdjustment)
		conflicts = append(conflicts, fmt.Sprintf(
			"HbA1c %.1f exceeds %.1f, consistent with insulin resistance", hba1c, hba1cMax))
	}

	scores.Clamp()

	if len(conflicts) > 0 {
		a.logger.WithField("conflicts", len(conflicts)).Debug("Lab adjustments applied")
	}
	return conflicts
}
