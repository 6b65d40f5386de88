package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/homeboard/backend/internal/collector"
	"github.com/wonny/homeboard/backend/internal/contracts"
	"github.com/wonny/homeboard/backend/pkg/config"
	"github.com/wonny/homeboard/backend/pkg/logger"
)

// DealsRefresher refreshes several deal queries at once
type DealsRefresher interface {
	FetchMany(ctx context.Context, queries []contracts.DealQuery, workers int) []collector.FetchResult
}

// DealsRefreshJob keeps the default region's deals warm in the cache
// ⭐ SSOT: 실거래 캐시 갱신 스케줄은 이 Job에서만
type DealsRefreshJob struct {
	collector DealsRefresher
	config    config.DealsConfig
	logger    *logger.Logger
	now       func() time.Time
	workers   int
}

// NewDealsRefreshJob creates a new deals refresh job
func NewDealsRefreshJob(col DealsRefresher, cfg config.DealsConfig, log *logger.Logger) *DealsRefreshJob {
	return &DealsRefreshJob{
		collector: col,
		config:    cfg,
		logger:    log,
		now:       time.Now,
		workers:   2,
	}
}

// Name returns the job name
func (j *DealsRefreshJob) Name() string {
	return "deals_refresh"
}

// Schedule returns the cron schedule (every 10 minutes)
func (j *DealsRefreshJob) Schedule() string {
	return "0 */10 * * * *"
}

// Queries returns the current and previous month for the default region/type.
// 월초에는 당월 신고분이 거의 없어 전월도 함께 갱신
func (j *DealsRefreshJob) Queries() []contracts.DealQuery {
	now := j.now()
	propertyType := contracts.PropertyType(j.config.DefaultPropertyType)

	return []contracts.DealQuery{
		{RegionCode: j.config.DefaultRegion, YearMonth: contracts.CurrentYearMonth(now), PropertyType: propertyType},
		{RegionCode: j.config.DefaultRegion, YearMonth: contracts.CurrentYearMonth(now.AddDate(0, -1, 1-now.Day())), PropertyType: propertyType},
	}
}

// Run refreshes the queries; empty results are not failures
func (j *DealsRefreshJob) Run(ctx context.Context) error {
	queries := j.Queries()
	results := j.collector.FetchMany(ctx, queries, j.workers)

	var failed []error
	refreshed := 0
	for _, r := range results {
		switch {
		case r.Error == nil:
			refreshed++
		case collector.IsEmptyResult(r.Error):
			j.logger.WithField("query", r.Query.String()).Debug("No deals to cache")
		default:
			failed = append(failed, r.Error)
		}
	}

	j.logger.WithFields(map[string]interface{}{
		"queries":   len(queries),
		"refreshed": refreshed,
		"failed":    len(failed),
	}).Info("Deals refresh finished")

	if len(failed) > 0 {
		return fmt.Errorf("deals refresh: %d of %d queries failed: %w", len(failed), len(queries), failed[0])
	}
	return nil
}
