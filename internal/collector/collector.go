package collector

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/wonny/homeboard/backend/internal/contracts"
	"github.com/wonny/homeboard/backend/internal/deals"
	"github.com/wonny/homeboard/backend/pkg/config"
	"github.com/wonny/homeboard/backend/pkg/logger"
	"github.com/wonny/homeboard/backend/pkg/redis"
)

// Collector orchestrates fetch -> normalize -> filter -> summarize
// ⭐ SSOT: 실거래 수집 오케스트레이션은 이 패키지에서만
type Collector struct {
	source     contracts.DealSource
	normalizer *deals.Normalizer
	cache      contracts.Cache
	filter     contracts.FilterConfig
	ttl        time.Duration
	logger     *logger.Logger
	now        func() time.Time
}

// NewCollector creates a new Collector; cache may be nil
func NewCollector(
	source contracts.DealSource,
	normalizer *deals.Normalizer,
	cache contracts.Cache,
	cfg config.DealsConfig,
	log *logger.Logger,
) *Collector {
	return &Collector{
		source:     source,
		normalizer: normalizer,
		cache:      cache,
		filter: contracts.FilterConfig{
			MaxAreaSqm:           cfg.MaxAreaSqm,
			AreaTolerance:        cfg.AreaTolerance,
			NeighborhoodKeywords: cfg.NeighborhoodKeywords,
		},
		ttl:    cfg.CacheTTL,
		logger: log.WithModule("collector"),
		now:    time.Now,
	}
}

// Source returns the upstream label ("api" | "mock")
func (c *Collector) Source() string {
	return c.source.Name()
}

// FilterConfig returns the active neighborhood/area filter
func (c *Collector) FilterConfig() contracts.FilterConfig {
	return c.filter
}

// FetchDeals returns the summarized deals for q, served from cache within the TTL.
// Failures are distinguishable with errors.Is: contracts.ErrNoUpstreamRows,
// ErrUnparsablePayload, ErrUpstreamStatus, ErrNoQualifyingDeals, ErrInvalidQuery.
func (c *Collector) FetchDeals(ctx context.Context, q contracts.DealQuery) (*contracts.DealsResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	if result, ok := c.cached(ctx, q); ok {
		return result, nil
	}
	return c.fetch(ctx, q)
}

// Refresh bypasses the cache and stores the fresh result
func (c *Collector) Refresh(ctx context.Context, q contracts.DealQuery) (*contracts.DealsResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, q)
}

func (c *Collector) cached(ctx context.Context, q contracts.DealQuery) (*contracts.DealsResult, bool) {
	if c.cache == nil {
		return nil, false
	}

	var result contracts.DealsResult
	found, err := c.cache.Get(ctx, cacheKey(q), &result)
	if err != nil {
		c.logger.WithError(err).WithField("query", q.String()).Warn("Deals cache read failed")
		return nil, false
	}
	if !found {
		return nil, false
	}

	c.logger.WithField("query", q.String()).Debug("Deals cache hit")
	return &result, true
}

func (c *Collector) fetch(ctx context.Context, q contracts.DealQuery) (*contracts.DealsResult, error) {
	start := c.now()

	// 네트워크 호출만 취소 가능; 이후 단계는 순수 연산
	raw, err := c.source.FetchRecords(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", q, err)
	}

	normalized := c.normalizer.NormalizeAll(raw, q.PropertyType)

	filtered, err := deals.Filter(normalized, c.filter)
	if err != nil {
		c.logger.WithFields(map[string]interface{}{
			"query":      q.String(),
			"normalized": len(normalized),
		}).Info("No deals survived the neighborhood/area filter")
		return nil, fmt.Errorf("filter %s: %w", q, err)
	}

	now := c.now()
	result := &contracts.DealsResult{
		Query:     q,
		Deals:     filtered,
		Summary:   deals.Summarize(filtered, now),
		Source:    c.source.Name(),
		FetchedAt: now,
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, cacheKey(q), result, c.ttl); err != nil {
			c.logger.WithError(err).WithField("query", q.String()).Warn("Deals cache write failed")
		}
	}

	c.logger.WithFields(map[string]interface{}{
		"query":    q.String(),
		"source":   result.Source,
		"raw":      len(raw),
		"filtered": len(filtered),
		"duration": time.Since(start),
	}).Info("Deals fetched")

	return result, nil
}

func cacheKey(q contracts.DealQuery) string {
	return redis.DealsKey(q.RegionCode, q.YearMonth, string(q.PropertyType))
}

// FetchResult represents the outcome of one query in FetchMany
type FetchResult struct {
	Query contracts.DealQuery
	Deals int
	Error error
}

// FetchMany refreshes several queries with a bounded worker pool.
// "결과 없음" 계열 오류는 실패로 집계하지 않는다.
func (c *Collector) FetchMany(ctx context.Context, queries []contracts.DealQuery, workers int) []FetchResult {
	if workers <= 0 {
		workers = 1
	}

	queryCh := make(chan contracts.DealQuery, len(queries))
	resultCh := make(chan FetchResult, len(queries))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for q := range queryCh {
				if err := ctx.Err(); err != nil {
					resultCh <- FetchResult{Query: q, Error: err}
					continue
				}
				result, err := c.Refresh(ctx, q)
				if err != nil {
					resultCh <- FetchResult{Query: q, Error: err}
					continue
				}
				resultCh <- FetchResult{Query: q, Deals: len(result.Deals)}
			}
		}()
	}

	for _, q := range queries {
		queryCh <- q
	}
	close(queryCh)

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	results := make([]FetchResult, 0, len(queries))
	failed := 0
	for r := range resultCh {
		results = append(results, r)
		if r.Error != nil && !IsEmptyResult(r.Error) {
			failed++
		}
	}

	c.logger.WithFields(map[string]interface{}{
		"queries": len(queries),
		"failed":  failed,
	}).Info("Deals refresh completed")

	return results
}

// IsEmptyResult reports whether err only means "nothing to show"
func IsEmptyResult(err error) bool {
	return errors.Is(err, contracts.ErrNoUpstreamRows) || errors.Is(err, contracts.ErrNoQualifyingDeals)
}
