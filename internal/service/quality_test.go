package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hormone-insights-server/internal/domain"
)

func newTestQualityScorer(t *testing.T, year int) *QualityScorer {
	t.Helper()
	scorer, err := NewQualityScorer(year, 16)
	require.NoError(t, err)
	return scorer
}

func TestQualityScoreStrongRecentStudy(t *testing.T) {
	scorer := newTestQualityScorer(t, 2026)
	study := &domain.ResearchStudy{
		ID:               "s1",
		PublicationYear:  2025,
		StudyType:        domain.StudyHuman,
		RiskBiasScore:    2,
		CitationCount:    60,
		ParticipantCount: 150,
	}

	// 3 recency + 3 human + 8 bias + 3 citations + 2 participants.
	assert.Equal(t, 19.0, scorer.Score(study))
}

func TestQualityScoreComponents(t *testing.T) {
	tests := []struct {
		name  string
		study domain.ResearchStudy
		want  float64
	}{
		{
			name:  "old animal study",
			study: domain.ResearchStudy{ID: "a", PublicationYear: 1999, StudyType: domain.StudyAnimal, RiskBiasScore: 8},
			want:  0 + 1 + 2, // >20 years, animal, bias 10-8
		},
		{
			name:  "mid-age review",
			study: domain.ResearchStudy{ID: "b", PublicationYear: 2018, StudyType: domain.StudyReview, RiskBiasScore: 5, CitationCount: 25},
			want:  2 + 2 + 5 + 2,
		},
		{
			name:  "twenty year boundary",
			study: domain.ResearchStudy{ID: "c", PublicationYear: 2006, StudyType: domain.StudyHuman, RiskBiasScore: 10, CitationCount: 10, ParticipantCount: 50},
			want:  1 + 3 + 0 + 1 + 1,
		},
	}

	scorer := newTestQualityScorer(t, 2026)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scorer.Score(&tt.study))
		})
	}
}

func TestQualityScoreMemoized(t *testing.T) {
	scorer := newTestQualityScorer(t, 2026)
	study := &domain.ResearchStudy{
		ID:              "memo",
		PublicationYear: 2024,
		StudyType:       domain.StudyHuman,
		RiskBiasScore:   3,
	}

	first := scorer.Score(study)
	second := scorer.Score(study)
	assert.Equal(t, first, second)
	_, ok := scorer.cache.Get("memo:2026")
	assert.True(t, ok)
}

func TestQualityScorerDefaults(t *testing.T) {
	scorer, err := NewQualityScorer(0, 0)
	require.NoError(t, err)
	assert.NotZero(t, scorer.currentYear)
}
