package service

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/hormone-insights-server/internal/domain"
)

const defaultQualityCacheSize = 512

// QualityScorer scores a study's intrinsic credibility, independent of any
// user. The corpus is immutable, so scores are memoized per study and
// reference year.
type QualityScorer struct {
	currentYear int
	cache       *lru.Cache[string, float64]
}

// NewQualityScorer creates a quality scorer anchored to the given reference
// year; 0 means derive from the clock. cacheSize bounds the memo cache, 0
// picks the default.
func NewQualityScorer(currentYear, cacheSize int) (*QualityScorer, error) {
	if currentYear == 0 {
		currentYear = time.Now().Year()
	}
	if cacheSize <= 0 {
		cacheSize = defaultQualityCacheSize
	}
	cache, err := lru.New[string, float64](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating quality cache: %w", err)
	}
	return &QualityScorer{currentYear: currentYear, cache: cache}, nil
}

// Score returns the credibility score for one study.
func (q *QualityScorer) Score(study *domain.ResearchStudy) float64 {
	key := fmt.Sprintf("%s:%d", study.ID, q.currentYear)
	if cached, ok := q.cache.Get(key); ok {
		return cached
	}

	score := q.recencyScore(study.PublicationYear) +
		studyTypeScore(study.StudyType) +
		biasScore(study.RiskBiasScore) +
		citationScore(study.CitationCount) +
		participantScore(study.ParticipantCount)

	q.cache.Add(key, score)
	return score
}

func (q *QualityScorer) recencyScore(publicationYear int) float64 {
	age := q.currentYear - publicationYear
	switch {
	case age <= 5:
		return 3
	case age <= 10:
		return 2
	case age <= 20:
		return 1
	default:
		return 0
	}
}

func studyTypeScore(t domain.StudyType) float64 {
	switch t {
	case domain.StudyHuman:
		return 3
	case domain.StudyReview:
		return 2
	case domain.StudyAnimal:
		return 1
	default:
		return 0
	}
}

// biasScore inverts the 1-10 risk of bias scale, so low-bias studies score
// higher.
func biasScore(riskBias int) float64 {
	return float64(10 - riskBias)
}

func citationScore(citations int) float64 {
	switch {
	case citations >= 50:
		return 3
	case citations >= 20:
		return 2
	case citations >= 10:
		return 1
	default:
		return 0
	}
}

func participantScore(participants int) float64 {
	switch {
	case participants >= 100:
		return 2
	case participants >= 50:
		return 1
	default:
		return 0
	}
}
