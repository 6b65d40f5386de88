package molit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/homeboard/backend/internal/contracts"
	"github.com/wonny/homeboard/backend/internal/deals"
	"github.com/wonny/homeboard/backend/pkg/config"
	"github.com/wonny/homeboard/backend/pkg/httputil"
	"github.com/wonny/homeboard/backend/pkg/logger"
)

func TestParsePayload_Envelopes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"data array", `{"data":[{"거래금액":"82,500"},{"거래금액":"90,000"}]}`, 2},
		{"items.item array", `{"response":{"header":{"resultCode":"000"},"body":{"items":{"item":[{"dealAmount":"82,500"},{"dealAmount":"1"}]}}}}`, 2},
		{"items.item single object", `{"response":{"body":{"items":{"item":{"dealAmount":"82,500"}}}}}`, 1},
		{"items array", `{"response":{"body":{"items":[{"dealAmount":"1"},{"dealAmount":"2"},{"dealAmount":"3"}]}}}`, 3},
		{"legacy service envelope", `{"ApartmentTransactionService":{"body":{"items":[{"dealAmount":"1"}]}}}`, 1},
		{"non-object items skipped", `{"data":[{"a":1}, "junk", 3]}`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := ParsePayload([]byte(tt.body))
			require.NoError(t, err)
			assert.Len(t, rows, tt.want)
		})
	}
}

func TestParsePayload_KeepsNumbersExact(t *testing.T) {
	rows, err := ParsePayload([]byte(`{"data":[{"excluUseAr":84.97,"dealAmount":82500}]}`))
	require.NoError(t, err)

	assert.Equal(t, json.Number("84.97"), rows[0]["excluUseAr"])
	assert.Equal(t, 82500.0, deals.CoerceNumber(rows[0]["dealAmount"]))
}

func TestParsePayload_Failures(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"html error page", "<html><body>Service Unavailable</body></html>", contracts.ErrUnparsablePayload},
		{"xml error", "<OpenAPI_ServiceResponse><cmmMsgHeader>SERVICE_KEY_IS_NOT_REGISTERED_ERROR</cmmMsgHeader></OpenAPI_ServiceResponse>", contracts.ErrUnparsablePayload},
		{"empty body", "   ", contracts.ErrUnparsablePayload},
		{"truncated json", `{"data":[{"a":`, contracts.ErrUnparsablePayload},
		{"top-level array", `[{"a":1}]`, contracts.ErrUnparsablePayload},
		{"error result code", `{"response":{"header":{"resultCode":"30","resultMsg":"SERVICE KEY IS NOT REGISTERED ERROR."}}}`, contracts.ErrUpstreamStatus},
		{"empty data", `{"data":[]}`, contracts.ErrNoUpstreamRows},
		{"empty items string", `{"response":{"header":{"resultCode":"000"},"body":{"items":"","totalCount":0}}}`, contracts.ErrNoUpstreamRows},
		{"no envelope", `{"foo":"bar"}`, contracts.ErrNoUpstreamRows},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePayload([]byte(tt.body))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func newTestClient(baseURL string) *Client {
	cfg := &config.Config{Env: "development"}
	httpClient := httputil.New(cfg, logger.Nop()).DisableRetry()
	return NewClient(httpClient, config.MOLITConfig{
		BaseURL:    baseURL,
		ServiceKey: "test-key",
		NumOfRows:  50,
	}, logger.Nop())
}

func TestClient_FetchRecords(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ApartmentTransactionService/v1/getRTMSDataSvcAptTradeDev", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "test-key", q.Get("serviceKey"))
		assert.Equal(t, "41480", q.Get("LAWD_CD"))
		assert.Equal(t, "202501", q.Get("DEAL_YMD"))
		assert.Equal(t, "50", q.Get("numOfRows"))
		assert.Equal(t, "1", q.Get("pageNo"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"아파트":"운정힐스테이트","거래금액":"97,500"}]}`))
	}))
	defer server.Close()

	rows, err := newTestClient(server.URL).FetchRecords(context.Background(), contracts.DealQuery{
		RegionCode: "41480", YearMonth: "202501", PropertyType: contracts.PropertyApartment,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "운정힐스테이트", rows[0]["아파트"])
}

func TestClient_EndpointPerPropertyType(t *testing.T) {
	var gotPath atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath.Store(r.URL.Path)
		_, _ = w.Write([]byte(`{"data":[{"a":1}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	for pt, path := range endpoints {
		_, err := client.FetchRecords(context.Background(), contracts.DealQuery{
			RegionCode: "41480", YearMonth: "202501", PropertyType: pt,
		})
		require.NoError(t, err)
		assert.Equal(t, path, gotPath.Load())
	}
}

func TestClient_Non2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchRecords(context.Background(), contracts.DealQuery{
		RegionCode: "41480", YearMonth: "202501", PropertyType: contracts.PropertyApartment,
	})
	assert.ErrorIs(t, err, contracts.ErrUpstreamStatus)
}

func TestClient_HTMLBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>점검 중</html>"))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchRecords(context.Background(), contracts.DealQuery{
		RegionCode: "41480", YearMonth: "202501", PropertyType: contracts.PropertyApartment,
	})
	assert.ErrorIs(t, err, contracts.ErrUnparsablePayload)
}

func TestMockSource(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	src := NewMockSource(func() time.Time { return now })
	q := contracts.DealQuery{RegionCode: "41480", YearMonth: "202503", PropertyType: contracts.PropertyApartment}

	first, err := src.FetchRecords(context.Background(), q)
	require.NoError(t, err)
	second, err := src.FetchRecords(context.Background(), q)
	require.NoError(t, err)

	assert.Len(t, first, DefaultMockRows)
	assert.Equal(t, first, second, "mock rows are deterministic")
	assert.Equal(t, contracts.SourceMock, src.Name())

	d := deals.NewNormalizer(nil).Normalize(first[0], contracts.PropertyApartment)
	assert.Equal(t, "41480-apartment-0", d.ID)
	assert.Equal(t, "2025-03-15", d.ContractDate.String())
	assert.Equal(t, "운정힐스테이트", d.ComplexName)
	assert.Greater(t, d.Price, int64(200_000_000))
}

func TestMockSource_PastMonthAnchorsAtMonthEnd(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	src := NewMockSource(func() time.Time { return now })

	rows, err := src.FetchRecords(context.Background(), contracts.DealQuery{
		RegionCode: "11680", YearMonth: "202402", PropertyType: contracts.PropertyHouse,
	})
	require.NoError(t, err)

	d := deals.NewNormalizer(nil).Normalize(rows[0], contracts.PropertyHouse)
	assert.Equal(t, "2024-02-29", d.ContractDate.String())
	assert.Equal(t, "전원주택", d.ComplexName)
	assert.Empty(t, d.FloorLabel)
}

func TestMockSource_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMockSource(nil).FetchRecords(ctx, contracts.DealQuery{})
	assert.ErrorIs(t, err, context.Canceled)
}
