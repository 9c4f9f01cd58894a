// Package feedback provides user feedback storage for recommendations.
// It stores whether a recommended intervention helped so future corpus and
// ranking tuning has ground truth to work from.
package feedback

import (
	"context"
	"io"
	"time"

	"github.com/hormone-insights-server/internal/domain"
)

// Feedback represents a user's feedback on one recommendation.
type Feedback struct {
	ID         int64                   `json:"id,omitempty"`
	AnalysisID string                  `json:"analysis_id"`        // Analysis run the recommendation came from
	StudyID    string                  `json:"study_id"`           // Backing study of the recommendation
	Category   domain.InterventionType `json:"category"`           // Recommendation category
	Helpful    bool                    `json:"helpful"`            // Did the user find it helpful?
	Rating     int                     `json:"rating,omitempty"`   // Optional 1-5 rating
	Comment    string                  `json:"comment,omitempty"`  // Free-form user notes
	CreatedAt  time.Time               `json:"created_at"`
	UpdatedAt  time.Time               `json:"updated_at"`
}

// Store defines the interface for feedback storage operations.
type Store interface {
	// Save stores or updates feedback for a recommendation.
	// Feedback for the same analysis+study pair is updated in place.
	Save(ctx context.Context, feedback *Feedback) error

	// Get retrieves feedback for an analysis+study pair, or nil if none.
	Get(ctx context.Context, analysisID, studyID string) (*Feedback, error)

	// List returns feedback entries newest first with pagination.
	List(ctx context.Context, limit, offset int) ([]*Feedback, error)

	// Count returns the total number of feedback entries.
	Count(ctx context.Context) (int64, error)

	// Delete removes a feedback entry by ID.
	Delete(ctx context.Context, id int64) error

	// ExportJSON exports all feedback to a JSON writer.
	ExportJSON(ctx context.Context, writer io.Writer) error

	// ImportJSON imports feedback from a JSON reader.
	// Existing analysis+study pairs are skipped, not overwritten.
	ImportJSON(ctx context.Context, reader io.Reader) (imported int, skipped int, err error)

	// Close closes the store and releases resources.
	Close() error
}

// Export represents the JSON export format.
type Export struct {
	Version    string      `json:"version"`
	ExportedAt time.Time   `json:"exported_at"`
	Count      int         `json:"count"`
	Feedback   []*Feedback `json:"feedback"`
}
