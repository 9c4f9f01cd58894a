package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hormone-insights-server/internal/domain"
)

// AnalyzerService runs the full scoring pipeline: cycle phase, symptom rules,
// lab adjustments, imbalance selection, and confidence evaluation. It is
// stateless apart from its rule tables, so one instance serves all requests.
type AnalyzerService struct {
	scorer   *SymptomScorer
	adjuster *LabAdjuster
	logger   *logrus.Logger
}

// NewAnalyzerService creates an analyzer service.
func NewAnalyzerService(logger *logrus.Logger) *AnalyzerService {
	return &AnalyzerService{
		scorer:   NewSymptomScorer(logger),
		adjuster: NewLabAdjuster(logger),
		logger:   logger,
	}
}

// Analyze computes an assessment for one survey submission. The analysis
// date anchors cycle phase calculation; identical responses and an identical
// now yield an identical result.
func (s *AnalyzerService) Analyze(ctx context.Context, responses *domain.SurveyResponses, now time.Time) (*domain.AnalysisResult, error) {
	if responses == nil {
		return nil, fmt.Errorf("analyze: %w", domain.ErrNilResponses)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}

	phase := CalculateCyclePhase(
		responses.LastPeriodDate,
		responses.CycleRegularity == domain.CycleRegular,
		responses.CycleLength,
		now,
	)

	scores, explanations := s.scorer.Score(responses, phase)
	conflicts := s.adjuster.Adjust(scores, responses.LabValues)

	primary, secondary := selectImbalances(scores)
	totalScore := scores.Total()

	labCount := CountLabValues(responses.LabValues)
	confidence, confidenceNotes := EvaluateConfidence(totalScore, phase, labCount)
	explanations = append(explanations, confidenceNotes...)

	result := &domain.AnalysisResult{
		PrimaryImbalance:    primary,
		SecondaryImbalances: secondary,
		Confidence:          confidence,
		Explanations:        explanations,
		Conflicts:           conflicts,
		HormoneScores:       scores,
		TotalScore:          totalScore,
		CyclePhase:          phase,
	}

	s.logger.WithFields(logrus.Fields{
		"primary":     primary,
		"total_score": totalScore,
		"confidence":  confidence,
		"cycle_phase": phase,
		"lab_count":   labCount,
	}).Info("Analysis completed")

	return result, nil
}

// selectImbalances picks the highest positive score as primary and the next
// two highest positive scores as secondary. Ties resolve in canonical hormone
// order. All-zero scores yield an empty primary.
func selectImbalances(scores domain.HormoneScores) (domain.Hormone, []domain.Hormone) {
	type ranked struct {
		hormone domain.Hormone
		score   int
	}

	positive := make([]ranked, 0, 6)
	for _, h := range domain.CanonicalHormones() {
		if scores[h] > 0 {
			positive = append(positive, ranked{h, scores[h]})
		}
	}
	if len(positive) == 0 {
		return "", nil
	}

	// Stable insertion sort over canonical order keeps tie-break order.
	for i := 1; i < len(positive); i++ {
		for j := i; j > 0 && positive[j].score > positive[j-1].score; j-- {
			positive[j], positive[j-1] = positive[j-1], positive[j]
		}
	}

	primary := positive[0].hormone
	var secondary []domain.Hormone
	for _, r := range positive[1:] {
		secondary = append(secondary, r.hormone)
		if len(secondary) == 2 {
			break
		}
	}
	return primary, secondary
}
