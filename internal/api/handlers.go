package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hormone-insights-server/internal/cache"
	"github.com/hormone-insights-server/internal/domain"
	"github.com/hormone-insights-server/internal/feedback"
)

// AnalyzeResponse wraps an analysis result with the identifiers callers need
// to fetch recommendations and file feedback later.
type AnalyzeResponse struct {
	AnalysisID string                 `json:"analysis_id"`
	Result     *domain.AnalysisResult `json:"result"`
	Cached     bool                   `json:"cached"`
}

// RecommendationsRequest asks for ranked recommendations in one or all
// categories for a previously derived profile.
type RecommendationsRequest struct {
	Profile  *domain.UserProfile     `json:"profile" binding:"required"`
	Category domain.InterventionType `json:"category,omitempty"` // empty means all three
}

func (s *Server) errorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"error":          message,
		"correlation_id": c.GetString("correlation_id"),
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
	})
}

// handleAnalyze scores one survey submission.
func (s *Server) handleAnalyze(c *gin.Context) {
	var responses domain.SurveyResponses
	if err := c.ShouldBindJSON(&responses); err != nil {
		s.errorResponse(c, http.StatusBadRequest, "invalid survey payload: "+err.Error())
		return
	}

	now := s.clock()
	key := cache.AnalysisKey(&responses, now)

	if result, ok := s.cache.Get(c.Request.Context(), key); ok {
		c.JSON(http.StatusOK, AnalyzeResponse{
			AnalysisID: uuid.NewString(),
			Result:     result,
			Cached:     true,
		})
		return
	}

	result, err := s.analyzer.Analyze(c.Request.Context(), &responses, now)
	if err != nil {
		s.logger.WithError(err).Error("Analysis failed")
		s.errorResponse(c, http.StatusInternalServerError, "analysis failed")
		return
	}

	s.cache.Set(c.Request.Context(), key, result)

	analysisID := uuid.NewString()
	if s.store != nil {
		record := &domain.AnalysisRecord{
			ID:         analysisID,
			Responses:  responses,
			Result:     *result,
			AnalyzedAt: now,
		}
		// Persistence is audit-only; a storage failure must not fail the
		// analysis response.
		if err := s.store.Save(c.Request.Context(), record); err != nil {
			s.logger.WithError(err).Warn("Failed to persist analysis record")
		}
	}

	c.JSON(http.StatusOK, AnalyzeResponse{AnalysisID: analysisID, Result: result})
}

// handleRecommendations ranks recommendations for a profile.
func (s *Server) handleRecommendations(c *gin.Context) {
	var req RecommendationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.errorResponse(c, http.StatusBadRequest, "invalid recommendations payload: "+err.Error())
		return
	}

	categories := domain.RecommendationCategories()
	if req.Category != "" {
		categories = []domain.InterventionType{req.Category}
	}

	out := make(map[string][]domain.Recommendation, len(categories))
	for _, category := range categories {
		recs, err := s.ranker.Rank(c.Request.Context(), req.Profile, category)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidCategory) {
				s.errorResponse(c, http.StatusBadRequest, err.Error())
				return
			}
			s.logger.WithError(err).Error("Ranking failed")
			s.errorResponse(c, http.StatusInternalServerError, "ranking failed")
			return
		}
		out[category.String()] = recs
	}

	c.JSON(http.StatusOK, gin.H{"recommendations": out})
}

// handleGetAnalysis fetches a persisted analysis record.
func (s *Server) handleGetAnalysis(c *gin.Context) {
	if s.store == nil {
		s.errorResponse(c, http.StatusNotImplemented, "analysis persistence is disabled")
		return
	}

	record, err := s.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrAnalysisNotFound) {
			s.errorResponse(c, http.StatusNotFound, "analysis not found")
			return
		}
		s.logger.WithError(err).Error("Analysis lookup failed")
		s.errorResponse(c, http.StatusInternalServerError, "lookup failed")
		return
	}

	c.JSON(http.StatusOK, record)
}

// handleSaveFeedback stores user feedback on a recommendation.
func (s *Server) handleSaveFeedback(c *gin.Context) {
	var fb feedback.Feedback
	if err := c.ShouldBindJSON(&fb); err != nil {
		s.errorResponse(c, http.StatusBadRequest, "invalid feedback payload: "+err.Error())
		return
	}
	if fb.AnalysisID == "" || fb.StudyID == "" {
		s.errorResponse(c, http.StatusBadRequest, "analysis_id and study_id are required")
		return
	}
	if fb.Rating < 0 || fb.Rating > 5 {
		s.errorResponse(c, http.StatusBadRequest, "rating must be between 0 and 5")
		return
	}

	if err := s.feedback.Save(c.Request.Context(), &fb); err != nil {
		s.logger.WithError(err).Error("Saving feedback failed")
		s.errorResponse(c, http.StatusInternalServerError, "saving feedback failed")
		return
	}

	c.JSON(http.StatusCreated, fb)
}

// handleListFeedback lists stored feedback with pagination.
func (s *Server) handleListFeedback(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 || limit > 500 {
		s.errorResponse(c, http.StatusBadRequest, "limit must be between 1 and 500")
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		s.errorResponse(c, http.StatusBadRequest, "offset must be non-negative")
		return
	}

	entries, err := s.feedback.List(c.Request.Context(), limit, offset)
	if err != nil {
		s.logger.WithError(err).Error("Listing feedback failed")
		s.errorResponse(c, http.StatusInternalServerError, "listing feedback failed")
		return
	}

	total, err := s.feedback.Count(c.Request.Context())
	if err != nil {
		s.logger.WithError(err).Error("Counting feedback failed")
		s.errorResponse(c, http.StatusInternalServerError, "counting feedback failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"feedback": entries,
		"total":    total,
		"limit":    limit,
		"offset":   offset,
	})
}
