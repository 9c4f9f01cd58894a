package domain

import (
	"context"
	"time"
)

// Analyzer computes a hormone imbalance assessment from survey responses.
// The analysis date anchors cycle phase calculation, so the same responses
// on a different day can legitimately produce a different phase.
type Analyzer interface {
	Analyze(ctx context.Context, responses *SurveyResponses, now time.Time) (*AnalysisResult, error)
}

// Recommender ranks research-backed recommendations for a user profile in one
// output category.
type Recommender interface {
	Rank(ctx context.Context, profile *UserProfile, category InterventionType) ([]Recommendation, error)
}

// AnalysisStore persists analysis runs for audit.
type AnalysisStore interface {
	Save(ctx context.Context, record *AnalysisRecord) error
	Get(ctx context.Context, id string) (*AnalysisRecord, error)
	List(ctx context.Context, limit, offset int) ([]*AnalysisRecord, error)
	Close() error
}

// AnalysisCache caches computed analysis results keyed by survey content.
// Implementations must fail soft: a cache error is never an analysis error.
type AnalysisCache interface {
	Get(ctx context.Context, key string) (*AnalysisResult, bool)
	Set(ctx context.Context, key string, result *AnalysisResult)
	Close() error
}
