package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/homeboard/backend/internal/api/handlers"
	"github.com/wonny/homeboard/backend/internal/contracts"
	"github.com/wonny/homeboard/backend/internal/scheduler"
	"github.com/wonny/homeboard/backend/pkg/config"
	"github.com/wonny/homeboard/backend/pkg/logger"
)

type fakeDeals struct {
	result *contracts.DealsResult
	err    error
	got    contracts.DealQuery
}

func (f *fakeDeals) FetchDeals(ctx context.Context, q contracts.DealQuery) (*contracts.DealsResult, error) {
	f.got = q
	if f.err != nil {
		return nil, f.err
	}
	res := *f.result
	res.Query = q
	return &res, nil
}

type fakeMarket struct{ err error }

func (f fakeMarket) Indicators(ctx context.Context) (*contracts.MarketIndicators, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &contracts.MarketIndicators{USDKRW: contracts.Indicator{Label: "USD / KRW", Value: 1450}}, nil
}

type fakeNews struct{ feed *contracts.NewsFeed }

func (f fakeNews) Feed(ctx context.Context) (*contracts.NewsFeed, error) {
	if f.feed == nil {
		return nil, context.DeadlineExceeded
	}
	return f.feed, nil
}

type fakeJobs struct{}

func (fakeJobs) GetJobStats() []scheduler.JobStats {
	return []scheduler.JobStats{{JobName: "deals_refresh", Schedule: "0 */10 * * * *"}}
}

var dealsConfig = config.DealsConfig{
	DefaultRegion:       "41480",
	DefaultPropertyType: "apartment",
	MaxAreaSqm:          84,
	AreaTolerance:       0.5,
}

func sampleResult() *contracts.DealsResult {
	list := make([]contracts.Deal, 0, 12)
	for i := 0; i < 12; i++ {
		list = append(list, contracts.Deal{
			ID:           "41480-" + string(rune('a'+i)),
			Area:         84,
			AreaTag:      "84",
			Price:        int64(800_000_000 + i*20_000_000),
			ContractDate: contracts.NewDate(2025, 3, 12-i%10),
		})
	}
	return &contracts.DealsResult{
		Deals:   list,
		Summary: contracts.DealsSummary{TotalDeals: len(list)},
		Source:  contracts.SourceMock,
	}
}

func newTestRouter(deals handlers.DealsService, market handlers.MarketService, news handlers.NewsService) http.Handler {
	log := logger.Nop()
	return NewRouter(Handlers{
		Deals:     handlers.NewDealsHandler(deals, dealsConfig, log),
		Feeds:     handlers.NewFeedsHandler(market, news, log),
		Reference: handlers.NewReferenceHandler(fakeJobs{}),
	}, log)
}

func do(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return rec, body
}

func TestHealth(t *testing.T) {
	rec, body := do(t, newTestRouter(&fakeDeals{}, fakeMarket{}, fakeNews{}), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestGetDeals_DefaultsAndPaging(t *testing.T) {
	svc := &fakeDeals{result: sampleResult()}
	rec, body := do(t, newTestRouter(svc, fakeMarket{}, fakeNews{}), "/api/deals?yearMonth=202503&page=2")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, contracts.DealQuery{RegionCode: "41480", YearMonth: "202503", PropertyType: contracts.PropertyApartment}, svc.got)

	assert.Len(t, body["deals"], 2)
	assert.Equal(t, float64(12), body["matched"])
	assert.Equal(t, float64(2), body["page"])
	assert.Equal(t, float64(2), body["total_pages"])
	assert.Equal(t, "mock", body["source"])
	// 9억 이하: 800M..900M → 6건
	assert.Equal(t, float64(6), body["loan_eligible"])
}

func TestGetDeals_Refine(t *testing.T) {
	svc := &fakeDeals{result: sampleResult()}
	rec, body := do(t, newTestRouter(svc, fakeMarket{}, fakeNews{}), "/api/deals?maxPrice=850000000&sort=price-desc")

	require.Equal(t, http.StatusOK, rec.Code)
	list := body["deals"].([]interface{})
	require.Len(t, list, 3)
	first := list[0].(map[string]interface{})
	assert.Equal(t, float64(840_000_000), first["price"])
}

func TestGetDeals_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		err        error
		wantStatus int
		wantReason string
	}{
		{"bad region", "/api/deals?region=abc", nil, http.StatusBadRequest, handlers.ReasonInvalidQuery},
		{"bad sort", "/api/deals?sort=cheap", nil, http.StatusBadRequest, handlers.ReasonInvalidQuery},
		{"bad page", "/api/deals?page=x", nil, http.StatusBadRequest, handlers.ReasonInvalidQuery},
		{"no rows", "/api/deals", contracts.NewUpstreamError("molit", contracts.ErrNoUpstreamRows, ""), http.StatusNotFound, handlers.ReasonNoUpstreamRows},
		{"filtered empty", "/api/deals", contracts.ErrNoQualifyingDeals, http.StatusNotFound, handlers.ReasonNoQualifyingDeals},
		{"html body", "/api/deals", contracts.NewUpstreamError("molit", contracts.ErrUnparsablePayload, "html"), http.StatusBadGateway, handlers.ReasonUnparsable},
		{"status", "/api/deals", contracts.NewUpstreamError("molit", contracts.ErrUpstreamStatus, "500"), http.StatusBadGateway, handlers.ReasonUpstreamStatus},
		{"timeout", "/api/deals", context.DeadlineExceeded, http.StatusGatewayTimeout, handlers.ReasonTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeDeals{result: sampleResult(), err: tt.err}
			rec, body := do(t, newTestRouter(svc, fakeMarket{}, fakeNews{}), tt.target)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantReason, body["reason"])
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestGetMarket(t *testing.T) {
	rec, body := do(t, newTestRouter(&fakeDeals{}, fakeMarket{}, fakeNews{}), "/api/market")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1450.0, body["usd_krw"].(map[string]interface{})["value"])

	rec, _ = do(t, newTestRouter(&fakeDeals{}, fakeMarket{err: contracts.ErrUpstreamStatus}, fakeNews{}), "/api/market")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestGetNews(t *testing.T) {
	feed := &contracts.NewsFeed{Articles: []contracts.Article{{Title: "운정 아파트"}}, Error: "all news feeds failed"}
	rec, body := do(t, newTestRouter(&fakeDeals{}, fakeMarket{}, fakeNews{feed: feed}), "/api/news")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["articles"], 1)
	assert.Equal(t, "all news feeds failed", body["error"])

	rec, _ = do(t, newTestRouter(&fakeDeals{}, fakeMarket{}, fakeNews{}), "/api/news")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestReferenceEndpoints(t *testing.T) {
	router := newTestRouter(&fakeDeals{}, fakeMarket{}, fakeNews{})

	rec, body := do(t, router, "/api/regions")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["regions"], len(contracts.Regions))

	rec, body = do(t, router, "/api/loan")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["points"], 4)
	assert.Equal(t, float64(900_000_000), body["max_price"])

	rec, body = do(t, router, "/api/scheduler/jobs")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["jobs"], 1)
}

func TestRecoveryMiddleware(t *testing.T) {
	h := recoveryMiddleware(logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec, body := do(t, h, "/")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", body["error"])
}
