// Package cache provides an optional Redis-backed cache for analysis
// results. The engine is pure, so caching by survey content is safe; a cache
// outage degrades to recomputation via a circuit breaker, never to an error.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/hormone-insights-server/internal/domain"
)

const keyPrefix = "hormone:analysis:"

// AnalysisKey derives a deterministic cache key from the survey content and
// the analysis date. The date is part of the key because cycle phase depends
// on it.
func AnalysisKey(responses *domain.SurveyResponses, now time.Time) string {
	payload, err := json.Marshal(responses)
	if err != nil {
		// SurveyResponses contains only marshalable fields; this path is
		// unreachable in practice.
		return ""
	}
	sum := sha256.Sum256(append(payload, []byte(now.Format("2006-01-02"))...))
	return fmt.Sprintf("%s%x", keyPrefix, sum)
}

// RedisCache caches analysis results in Redis behind a circuit breaker.
type RedisCache struct {
	client  *redis.Client
	breaker *gobreaker.CircuitBreaker
	ttl     time.Duration
	logger  *logrus.Logger
}

// NewRedisCache connects to Redis per the cache configuration.
func NewRedisCache(cfg domain.CacheConfig, logger *logrus.Logger) (*RedisCache, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}
	opts.MaxRetries = cfg.MaxRetries
	opts.PoolSize = cfg.PoolSize
	opts.PoolTimeout = cfg.PoolTimeout

	client := redis.NewClient(opts)

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "analysis-cache",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Cache circuit breaker state changed")
		},
	})

	return &RedisCache{
		client:  client,
		breaker: breaker,
		ttl:     cfg.DefaultTTL,
		logger:  logger,
	}, nil
}

// Get returns a cached analysis result. Any failure, including an open
// breaker, reads as a miss.
func (c *RedisCache) Get(ctx context.Context, key string) (*domain.AnalysisResult, bool) {
	if key == "" {
		return nil, false
	}

	raw, err := c.breaker.Execute(func() (interface{}, error) {
		return c.client.Get(ctx, key).Bytes()
	})
	if err != nil {
		if err != redis.Nil {
			c.logger.WithError(err).Debug("Analysis cache read failed")
		}
		return nil, false
	}

	var result domain.AnalysisResult
	if err := json.Unmarshal(raw.([]byte), &result); err != nil {
		c.logger.WithError(err).Warn("Discarding undecodable cache entry")
		return nil, false
	}
	return &result, true
}

// Set stores an analysis result. Failures are logged and swallowed.
func (c *RedisCache) Set(ctx context.Context, key string, result *domain.AnalysisResult) {
	if key == "" {
		return
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return
	}

	_, err = c.breaker.Execute(func() (interface{}, error) {
		return nil, c.client.Set(ctx, key, payload, c.ttl).Err()
	})
	if err != nil {
		c.logger.WithError(err).Debug("Analysis cache write failed")
	}
}

// Close releases the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// NoopCache satisfies the cache interface when caching is disabled.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) (*domain.AnalysisResult, bool) { return nil, false }
func (NoopCache) Set(context.Context, string, *domain.AnalysisResult)        {}
func (NoopCache) Close() error                                               { return nil }
