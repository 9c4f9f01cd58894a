package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hormone-insights-server/internal/domain"
)

func TestAnalysisKeyDeterministic(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	responses := &domain.SurveyResponses{
		CycleRegularity: domain.CycleRegular,
		Symptoms:        []string{"acne"},
	}

	first := AnalysisKey(responses, now)
	second := AnalysisKey(responses, now)
	assert.Equal(t, first, second)
	assert.True(t, strings.HasPrefix(first, keyPrefix))
}

func TestAnalysisKeyVariesByContent(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	a := AnalysisKey(&domain.SurveyResponses{Symptoms: []string{"acne"}}, now)
	b := AnalysisKey(&domain.SurveyResponses{Symptoms: []string{"bloating"}}, now)
	assert.NotEqual(t, a, b)
}

func TestAnalysisKeyVariesByDate(t *testing.T) {
	responses := &domain.SurveyResponses{Symptoms: []string{"acne"}}
	a := AnalysisKey(responses, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))
	b := AnalysisKey(responses, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC))
	assert.NotEqual(t, a, b)

	// Same day, different clock time: phase math floors to days, so the key
	// must not change.
	c := AnalysisKey(responses, time.Date(2026, 3, 15, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, a, c)
}

func TestNoopCache(t *testing.T) {
	var cache NoopCache
	ctx := context.Background()

	cache.Set(ctx, "key", &domain.AnalysisResult{TotalScore: 5})
	_, ok := cache.Get(ctx, "key")
	assert.False(t, ok)
	assert.NoError(t, cache.Close())
}
