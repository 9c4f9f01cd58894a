package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hormone-insights-server/internal/cache"
	"github.com/hormone-insights-server/internal/corpus"
	"github.com/hormone-insights-server/internal/domain"
	"github.com/hormone-insights-server/internal/feedback"
	"github.com/hormone-insights-server/internal/service"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := &domain.Config{
		Server: domain.ServerConfig{
			Host: "127.0.0.1", Port: 0,
			RateLimitRPS: 1000, RateLimitBurst: 1000,
		},
		Logging: domain.LoggingConfig{Level: "info"},
	}

	c, err := corpus.Load("", logger)
	require.NoError(t, err)
	quality, err := service.NewQualityScorer(2026, 64)
	require.NoError(t, err)

	fbStore, err := feedback.NewSQLiteStore(filepath.Join(t.TempDir(), "fb.db"))
	require.NoError(t, err)
	t.Cleanup(func() { fbStore.Close() })

	srv := NewServer(
		cfg,
		service.NewAnalyzerService(logger),
		service.NewRecommendationService(c, quality, logger),
		cache.NoopCache{},
		nil,
		fbStore,
		logger,
	)
	srv.clock = func() time.Time { return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC) }
	return srv
}

func doJSON(srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)
	w := doJSON(srv, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestAnalyzeEndpoint(t *testing.T) {
	srv := newTestServer(t)

	payload := map[string]interface{}{
		"cycle_regularity": "no_period",
		"flow_type":        "heavy",
		"symptoms":         []string{"acne"},
		"energy_pattern":   "constant_fatigue",
		"mood_pattern":     "rage",
		"cravings":         []string{"sugar"},
		"stress_level":     "high",
		"birth_control":    "none",
		"conditions":       []string{"PCOS"},
	}

	w := doJSON(srv, http.MethodPost, "/api/v1/analyze", payload)
	require.Equal(t, http.StatusOK, w.Code)

	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Result)
	assert.NotEmpty(t, resp.AnalysisID)
	assert.Equal(t, domain.HormoneAndrogens, resp.Result.PrimaryImbalance)
	assert.Equal(t, 34, resp.Result.TotalScore)
	assert.Equal(t, domain.ConfidenceMedium, resp.Result.Confidence)
	assert.False(t, resp.Cached)
}

func TestAnalyzeEndpointBadPayload(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", bytes.NewReader([]byte("{bad")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecommendationsEndpointAllCategories(t *testing.T) {
	srv := newTestServer(t)

	payload := RecommendationsRequest{
		Profile: &domain.UserProfile{
			PrimaryImbalance: domain.HormoneAndrogens,
			Conditions:       []string{"pcos"},
			CyclePhase:       domain.PhaseUnknown,
		},
	}

	w := doJSON(srv, http.MethodPost, "/api/v1/recommendations", payload)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Recommendations map[string][]domain.Recommendation `json:"recommendations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	for _, category := range domain.RecommendationCategories() {
		recs := resp.Recommendations[category.String()]
		assert.NotEmpty(t, recs, "category %s must never be empty", category)
		assert.LessOrEqual(t, len(recs), 3)
	}
}

func TestRecommendationsEndpointInvalidCategory(t *testing.T) {
	srv := newTestServer(t)

	payload := RecommendationsRequest{
		Profile:  &domain.UserProfile{CyclePhase: domain.PhaseUnknown},
		Category: "supplements",
	}

	w := doJSON(srv, http.MethodPost, "/api/v1/recommendations", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecommendationsEndpointMissingProfile(t *testing.T) {
	srv := newTestServer(t)
	w := doJSON(srv, http.MethodPost, "/api/v1/recommendations", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAnalysisWithoutStore(t *testing.T) {
	srv := newTestServer(t)
	w := doJSON(srv, http.MethodGet, "/api/v1/analyses/some-id", nil)
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestFeedbackEndpoints(t *testing.T) {
	srv := newTestServer(t)

	fb := feedback.Feedback{
		AnalysisID: "analysis-1",
		StudyID:    "food-spearmint-2010",
		Category:   domain.CategoryFood,
		Helpful:    true,
		Rating:     5,
	}

	w := doJSON(srv, http.MethodPost, "/api/v1/feedback", fb)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(srv, http.MethodGet, "/api/v1/feedback?limit=10", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Feedback []feedback.Feedback `json:"feedback"`
		Total    int64               `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Total)
	require.Len(t, resp.Feedback, 1)
	assert.Equal(t, "food-spearmint-2010", resp.Feedback[0].StudyID)
}

func TestFeedbackValidation(t *testing.T) {
	srv := newTestServer(t)

	t.Run("missing identifiers", func(t *testing.T) {
		w := doJSON(srv, http.MethodPost, "/api/v1/feedback", feedback.Feedback{Rating: 3})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rating out of range", func(t *testing.T) {
		fb := feedback.Feedback{AnalysisID: "a", StudyID: "s", Rating: 9}
		w := doJSON(srv, http.MethodPost, "/api/v1/feedback", fb)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad limit", func(t *testing.T) {
		w := doJSON(srv, http.MethodGet, "/api/v1/feedback?limit=9999", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCorrelationIDHeader(t *testing.T) {
	srv := newTestServer(t)
	w := doJSON(srv, http.MethodGet, "/health", nil)
	assert.NotEmpty(t, w.Header().Get("X-Correlation-ID"))
}
