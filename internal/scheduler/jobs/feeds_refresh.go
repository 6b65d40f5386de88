package jobs

import (
	"context"
	"fmt"

	"github.com/wonny/homeboard/backend/internal/contracts"
	"github.com/wonny/homeboard/backend/pkg/logger"
)

// NewsRefresher rebuilds the aggregated news feed
type NewsRefresher interface {
	Refresh(ctx context.Context) (*contracts.NewsFeed, error)
}

// MarketRefresher rebuilds the market snapshot
type MarketRefresher interface {
	Refresh(ctx context.Context) (*contracts.MarketIndicators, error)
}

// NewsRefreshJob re-aggregates the RSS feeds
type NewsRefreshJob struct {
	news   NewsRefresher
	logger *logger.Logger
}

// NewNewsRefreshJob creates a new news refresh job
func NewNewsRefreshJob(news NewsRefresher, log *logger.Logger) *NewsRefreshJob {
	return &NewsRefreshJob{news: news, logger: log}
}

// Name returns the job name
func (j *NewsRefreshJob) Name() string {
	return "news_refresh"
}

// Schedule returns the cron schedule (every 30 minutes)
func (j *NewsRefreshJob) Schedule() string {
	return "0 */30 * * * *"
}

// Run executes the refresh; a stale feed counts as a failure
func (j *NewsRefreshJob) Run(ctx context.Context) error {
	feed, err := j.news.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("news refresh: %w", err)
	}
	if feed.Error != "" {
		return fmt.Errorf("news refresh: serving stale feed: %s", feed.Error)
	}

	j.logger.WithField("articles", len(feed.Articles)).Debug("News refresh finished")
	return nil
}

// MarketRefreshJob refreshes the FX quote
type MarketRefreshJob struct {
	market MarketRefresher
	logger *logger.Logger
}

// NewMarketRefreshJob creates a new market refresh job
func NewMarketRefreshJob(market MarketRefresher, log *logger.Logger) *MarketRefreshJob {
	return &MarketRefreshJob{market: market, logger: log}
}

// Name returns the job name
func (j *MarketRefreshJob) Name() string {
	return "market_refresh"
}

// Schedule returns the cron schedule (hourly)
func (j *MarketRefreshJob) Schedule() string {
	return "0 0 * * * *"
}

// Run executes the refresh
func (j *MarketRefreshJob) Run(ctx context.Context) error {
	indicators, err := j.market.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("market refresh: %w", err)
	}

	j.logger.WithField("usd_krw", indicators.USDKRW.Value).Debug("Market refresh finished")
	return nil
}
