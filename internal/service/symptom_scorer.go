package service

import (
	"github.com/sirupsen/logrus"

	"github.com/hormone-insights-server/internal/domain"
)

// SymptomScorer applies the ordered symptom rule table to a survey
// submission. Rules only ever add points, so final scores are
// order-independent even though explanation order is fixed.
type SymptomScorer struct {
	rules  []symptomRule
	logger *logrus.Logger
}

// NewSymptomScorer creates a symptom scorer with the built-in rule table.
func NewSymptomScorer(logger *logrus.Logger) *SymptomScorer {
	return &SymptomScorer{
		rules:  symptomRules(),
		logger: logger,
	}
}

// Score evaluates every rule against the responses and returns the per-axis
// scores plus one explanation per triggered rule, in table order.
func (s *SymptomScorer) Score(responses *domain.SurveyResponses, phase domain.CyclePhase) (domain.HormoneScores, []string) {
	scores := domain.NewHormoneScores()
	explanations := make([]string, 0, len(s.rules))

	for _, rule := range s.rules {
		if !rule.Applies(responses, phase) {
			continue
		}
		for _, effect := range rule.Effects {
			scores.Add(effect.Hormone, effect.Points)
		}
		explanations = append(explanations, rule.Explanation)

		s.logger.WithFields(logrus.Fields{
			"rule":  rule.Name,
			"phase": phase,
		}).Debug("Symptom rule triggered")
	}

	return scores, explanations
}
