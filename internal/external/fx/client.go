package fx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/wonny/homeboard/backend/internal/contracts"
	"github.com/wonny/homeboard/backend/pkg/httputil"
	"github.com/wonny/homeboard/backend/pkg/logger"
)

const sourceName = "fx"

// Quote is one USD/KRW reading
type Quote struct {
	Rate   float64
	Date   time.Time
	Source string // API host (e.g. exchangerate.host)
}

// latestResponse is the exchangerate.host /latest payload
type latestResponse struct {
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// Client fetches the USD/KRW rate
// ⭐ SSOT: 환율 API 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	url        string
	now        func() time.Time
}

// NewClient creates a new FX client for the given endpoint
func NewClient(httpClient *httputil.Client, endpoint string, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log.WithModule("fx"),
		url:        endpoint,
		now:        time.Now,
	}
}

// FetchUSDKRW reads rates.KRW; a missing date falls back to now
func (c *Client) FetchUSDKRW(ctx context.Context) (*Quote, error) {
	resp, err := c.httpClient.Get(ctx, c.url)
	if err != nil {
		return nil, fmt.Errorf("fx request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, contracts.NewUpstreamError(sourceName, contracts.ErrUpstreamStatus,
			"환율 API 호출 실패: %s", resp.Status)
	}

	var payload latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, contracts.NewUpstreamError(sourceName, contracts.ErrUnparsablePayload, "decode: %v", err)
	}

	rate, ok := payload.Rates["KRW"]
	if !ok || rate <= 0 {
		return nil, contracts.NewUpstreamError(sourceName, contracts.ErrUnparsablePayload, "rates.KRW missing")
	}

	date, err := time.Parse(time.DateOnly, payload.Date)
	if err != nil {
		date = c.now().UTC()
	}

	c.logger.WithFields(map[string]interface{}{
		"usd_krw": rate,
		"date":    date.Format(time.DateOnly),
	}).Debug("USD/KRW fetched")

	return &Quote{Rate: rate, Date: date, Source: c.sourceLabel()}, nil
}

func (c *Client) sourceLabel() string {
	u, err := url.Parse(c.url)
	if err != nil || u.Hostname() == "" {
		return "exchangerate.host"
	}
	return u.Hostname()
}
