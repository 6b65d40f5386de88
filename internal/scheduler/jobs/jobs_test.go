package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/homeboard/backend/internal/collector"
	"github.com/wonny/homeboard/backend/internal/contracts"
	"github.com/wonny/homeboard/backend/pkg/config"
	"github.com/wonny/homeboard/backend/pkg/logger"
)

type fakeRefresher struct {
	got     []contracts.DealQuery
	results func(q contracts.DealQuery) collector.FetchResult
}

func (f *fakeRefresher) FetchMany(ctx context.Context, queries []contracts.DealQuery, workers int) []collector.FetchResult {
	f.got = queries
	out := make([]collector.FetchResult, 0, len(queries))
	for _, q := range queries {
		out = append(out, f.results(q))
	}
	return out
}

func newDealsJob(f *fakeRefresher) *DealsRefreshJob {
	job := NewDealsRefreshJob(f, config.DealsConfig{DefaultRegion: "41480", DefaultPropertyType: "apartment"}, logger.Nop())
	job.now = func() time.Time { return time.Date(2025, 3, 31, 23, 0, 0, 0, time.UTC) }
	return job
}

func TestDealsRefreshJob_Queries(t *testing.T) {
	queries := newDealsJob(&fakeRefresher{}).Queries()

	require.Len(t, queries, 2)
	assert.Equal(t, "41480/202503/apartment", queries[0].String())
	assert.Equal(t, "41480/202502/apartment", queries[1].String())
}

func TestDealsRefreshJob_EmptyResultsAreNotFailures(t *testing.T) {
	f := &fakeRefresher{results: func(q contracts.DealQuery) collector.FetchResult {
		if q.YearMonth == "202503" {
			return collector.FetchResult{Query: q, Error: contracts.ErrNoQualifyingDeals}
		}
		return collector.FetchResult{Query: q, Deals: 7}
	}}

	job := newDealsJob(f)
	assert.Equal(t, "deals_refresh", job.Name())
	assert.NoError(t, job.Run(context.Background()))
	assert.Len(t, f.got, 2)
}

func TestDealsRefreshJob_UpstreamFailure(t *testing.T) {
	f := &fakeRefresher{results: func(q contracts.DealQuery) collector.FetchResult {
		return collector.FetchResult{Query: q, Error: contracts.NewUpstreamError("molit", contracts.ErrUnparsablePayload, "html")}
	}}

	err := newDealsJob(f).Run(context.Background())
	assert.ErrorIs(t, err, contracts.ErrUnparsablePayload)
}

type fakeNews struct {
	feed *contracts.NewsFeed
	err  error
}

func (f *fakeNews) Refresh(ctx context.Context) (*contracts.NewsFeed, error) { return f.feed, f.err }

type fakeMarket struct {
	err error
}

func (f *fakeMarket) Refresh(ctx context.Context) (*contracts.MarketIndicators, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &contracts.MarketIndicators{USDKRW: contracts.Indicator{Value: 1450}}, nil
}

func TestNewsRefreshJob(t *testing.T) {
	ok := NewNewsRefreshJob(&fakeNews{feed: &contracts.NewsFeed{}}, logger.Nop())
	assert.NoError(t, ok.Run(context.Background()))

	stale := NewNewsRefreshJob(&fakeNews{feed: &contracts.NewsFeed{Error: "all news feeds failed"}}, logger.Nop())
	assert.Error(t, stale.Run(context.Background()))

	failed := NewNewsRefreshJob(&fakeNews{err: errors.New("boom")}, logger.Nop())
	assert.Error(t, failed.Run(context.Background()))
}

func TestMarketRefreshJob(t *testing.T) {
	assert.NoError(t, NewMarketRefreshJob(&fakeMarket{}, logger.Nop()).Run(context.Background()))
	assert.Error(t, NewMarketRefreshJob(&fakeMarket{err: errors.New("fx down")}, logger.Nop()).Run(context.Background()))
}

func TestSchedules(t *testing.T) {
	assert.Equal(t, "0 */10 * * * *", newDealsJob(&fakeRefresher{}).Schedule())
	assert.Equal(t, "0 */30 * * * *", NewNewsRefreshJob(&fakeNews{}, logger.Nop()).Schedule())
	assert.Equal(t, "0 0 * * * *", NewMarketRefreshJob(&fakeMarket{}, logger.Nop()).Schedule())
}
