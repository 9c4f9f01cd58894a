// Package repository persists analysis runs for audit. The engine itself is
// pure; this layer is optional and only active when a database is configured.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/hormone-insights-server/internal/domain"
)

// PostgresAnalysisStore stores analysis records in Postgres via pgx.
type PostgresAnalysisStore struct {
	pool   *pgxpool.Pool
	logger *logrus.Logger
}

// NewPostgresAnalysisStore creates an analysis store over an existing pool.
func NewPostgresAnalysisStore(pool *pgxpool.Pool, logger *logrus.Logger) *PostgresAnalysisStore {
	return &PostgresAnalysisStore{pool: pool, logger: logger}
}

// Save inserts one analysis record. Responses and result are stored as JSONB
// so the schema survives rule table evolution.
func (s *PostgresAnalysisStore) Save(ctx context.Context, record *domain.AnalysisRecord) error {
	responses, err := json.Marshal(record.Responses)
	if err != nil {
		return fmt.Errorf("marshaling responses: %w", err)
	}
	result, err := json.Marshal(record.Result)
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO analyses (id, responses, result, analyzed_at)
		VALUES ($1, $2, $3, $4)`,
		record.ID, responses, result, record.AnalyzedAt)
	if err != nil {
		return fmt.Errorf("inserting analysis %s: %w", record.ID, err)
	}

	s.logger.WithField("analysis_id", record.ID).Debug("Analysis record saved")
	return nil
}

// Get fetches one analysis record by ID.
func (s *PostgresAnalysisStore) Get(ctx context.Context, id string) (*domain.AnalysisRecord, error) {
	var (
		record        domain.AnalysisRecord
		responsesJSON []byte
		resultJSON    []byte
	)

	err := s.pool.QueryRow(ctx, `
		SELECT id, responses, result, analyzed_at, created_at
		FROM analyses WHERE id = $1`, id).
		Scan(&record.ID, &responsesJSON, &resultJSON, &record.AnalyzedAt, &record.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("analysis %s: %w", id, domain.ErrAnalysisNotFound)
		}
		return nil, fmt.Errorf("querying analysis %s: %w", id, err)
	}

	if err := json.Unmarshal(responsesJSON, &record.Responses); err != nil {
		return nil, fmt.Errorf("decoding responses for %s: %w", id, err)
	}
	if err := json.Unmarshal(resultJSON, &record.Result); err != nil {
		return nil, fmt.Errorf("decoding result for %s: %w", id, err)
	}
	return &record, nil
}

// List returns analysis records newest first.
func (s *PostgresAnalysisStore) List(ctx context.Context, limit, offset int) ([]*domain.AnalysisRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, responses, result, analyzed_at, created_at
		FROM analyses ORDER BY analyzed_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing analyses: %w", err)
	}
	defer rows.Close()

	var records []*domain.AnalysisRecord
	for rows.Next() {
		var (
			record        domain.AnalysisRecord
			responsesJSON []byte
			resultJSON    []byte
		)
		if err := rows.Scan(&record.ID, &responsesJSON, &resultJSON, &record.AnalyzedAt, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning analysis row: %w", err)
		}
		if err := json.Unmarshal(responsesJSON, &record.Responses); err != nil {
			return nil, fmt.Errorf("decoding responses for %s: %w", record.ID, err)
		}
		if err := json.Unmarshal(resultJSON, &record.Result); err != nil {
			return nil, fmt.Errorf("decoding result for %s: %w", record.ID, err)
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating analyses: %w", err)
	}
	return records, nil
}

// Close releases the pool.
func (s *PostgresAnalysisStore) Close() error {
	s.pool.Close()
	return nil
}
