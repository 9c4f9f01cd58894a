package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/hormone-insights-server/internal/domain"
)

// Ranking parameters. Relevance carries 70% of the combined score and
// quality 30%; anything at or below the cutoff is discarded.
const (
	relevanceWeight   = 0.7
	qualityWeight     = 0.3
	rankScoreCutoff   = 5.0
	maxPerCategory    = 3
	fallbackRelevance = 5.0

	priorityHighRelevance   = 20.0
	priorityMediumRelevance = 10.0
)

// StudyProvider exposes the immutable research corpus to the ranker.
type StudyProvider interface {
	Studies() []*domain.ResearchStudy
}

// categoryDefaults carries the per-category prescription template filled in
// around each backing study.
type categoryDefaults struct {
	Frequency string
	Duration  string
	Intensity string
	Timeline  string
}

func defaultsFor(category domain.InterventionType) categoryDefaults {
	switch category {
	case domain.CategoryMovement:
		return categoryDefaults{Frequency: "3x per week", Duration: "20 minutes", Intensity: "low", Timeline: "4-6 weeks"}
	case domain.CategoryMindfulness:
		return categoryDefaults{Frequency: "daily", Duration: "10-15 minutes", Intensity: "low", Timeline: "6-8 weeks"}
	default:
		return categoryDefaults{Frequency: "daily", Timeline: "6-8 weeks"}
	}
}

// fallbackCopy is the fixed generic recommendation emitted when no study
// passes the ranking cutoff for a category.
var fallbackCopy = map[domain.InterventionType]struct {
	Title  string
	Action string
}{
	domain.CategoryFood: {
		Title:  "Balanced whole-food eating pattern",
		Action: "Build meals around vegetables, protein, and whole grains, and limit added sugar",
	},
	domain.CategoryMovement: {
		Title:  "Regular moderate movement",
		Action: "Take a brisk 20-30 minute walk most days of the week",
	},
	domain.CategoryMindfulness: {
		Title:  "Daily stress reduction practice",
		Action: "Practice slow breathing or guided relaxation for 10 minutes a day",
	},
}

// RecommendationService ranks corpus studies against a user profile and
// synthesizes evidence-backed recommendations.
type RecommendationService struct {
	corpus  StudyProvider
	quality *QualityScorer
	logger  *logrus.Logger
}

// NewRecommendationService creates a recommendation service over the given
// corpus.
func NewRecommendationService(corpus StudyProvider, quality *QualityScorer, logger *logrus.Logger) *RecommendationService {
	return &RecommendationService{
		corpus:  corpus,
		quality: quality,
		logger:  logger,
	}
}

// Rank returns at most three recommendations for one output category, in
// non-increasing combined score order. An empty or non-matching corpus
// degrades to a single generic fallback, never an empty category.
func (s *RecommendationService) Rank(ctx context.Context, profile *domain.UserProfile, category domain.InterventionType) ([]domain.Recommendation, error) {
	if profile == nil {
		return nil, fmt.Errorf("rank: %w", domain.ErrNilProfile)
	}
	if category != domain.CategoryFood && category != domain.CategoryMovement && category != domain.CategoryMindfulness {
		return nil, fmt.Errorf("rank: %w: %q", domain.ErrInvalidCategory, category)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("rank: %w", err)
	}

	type scored struct {
		study     *domain.ResearchStudy
		relevance float64
		total     float64
	}

	var candidates []scored
	for _, study := range s.corpus.Studies() {
		// Combined-intervention studies compete in every category.
		if study.InterventionType != category && study.InterventionType != domain.CategoryCombined {
			continue
		}
		relevance := ScoreRelevance(profile, study)
		total := relevance*relevanceWeight + s.quality.Score(study)*qualityWeight
		if total <= rankScoreCutoff {
			continue
		}
		candidates = append(candidates, scored{study, relevance, total})
	}

	// Stable sort keeps corpus order on ties.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].total > candidates[j].total
	})
	if len(candidates) > maxPerCategory {
		candidates = candidates[:maxPerCategory]
	}

	if len(candidates) == 0 {
		s.logger.WithFields(logrus.Fields{
			"category": category,
			"primary":  profile.PrimaryImbalance,
		}).Debug("No studies passed ranking cutoff, using fallback")
		return []domain.Recommendation{fallbackRecommendation(category)}, nil
	}

	recommendations := make([]domain.Recommendation, 0, len(candidates))
	for _, c := range candidates {
		recommendations = append(recommendations, buildRecommendation(category, c.study, c.relevance))
	}

	s.logger.WithFields(logrus.Fields{
		"category": category,
		"primary":  profile.PrimaryImbalance,
		"count":    len(recommendations),
	}).Info("Recommendations ranked")

	return recommendations, nil
}

func buildRecommendation(category domain.InterventionType, study *domain.ResearchStudy, relevance float64) domain.Recommendation {
	defaults := defaultsFor(category)
	return domain.Recommendation{
		Category:          category,
		Title:             study.Intervention,
		SpecificAction:    study.Protocol,
		Frequency:         defaults.Frequency,
		Duration:          defaults.Duration,
		Intensity:         defaults.Intensity,
		ExpectedTimeline:  defaults.Timeline,
		Priority:          priorityFor(relevance),
		Contraindications: study.Contraindications,
		ResearchSummary: fmt.Sprintf("Based on %d study with %d women showing %s",
			study.PublicationYear, study.ParticipantCount, study.Results),
		BackingStudies: []domain.StudyReference{study.Reference()},
		RelevanceScore: relevance,
	}
}

func fallbackRecommendation(category domain.InterventionType) domain.Recommendation {
	defaults := defaultsFor(category)
	fb := fallbackCopy[category]
	return domain.Recommendation{
		Category:         category,
		Title:            fb.Title,
		SpecificAction:   fb.Action,
		Frequency:        defaults.Frequency,
		Duration:         defaults.Duration,
		Intensity:        defaults.Intensity,
		ExpectedTimeline: defaults.Timeline,
		Priority:         domain.PriorityLow,
		ResearchSummary:  "General guidance based on broadly accepted lifestyle evidence",
		BackingStudies:   []domain.StudyReference{},
		RelevanceScore:   fallbackRelevance,
	}
}

func priorityFor(relevance float64) domain.Priority {
	switch {
	case relevance >= priorityHighRelevance:
		return domain.PriorityHigh
	case relevance >= priorityMediumRelevance:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}
