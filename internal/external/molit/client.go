package molit

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/wonny/homeboard/backend/internal/contracts"
	"github.com/wonny/homeboard/backend/pkg/config"
	"github.com/wonny/homeboard/backend/pkg/httputil"
	"github.com/wonny/homeboard/backend/pkg/logger"
)

// sourceName labels MOLIT errors and logs
const sourceName = "molit"

// maxBodyBytes caps one upstream page
const maxBodyBytes = 8 << 20

// endpoints per property type (공공데이터포털 실거래가 서비스)
var endpoints = map[contracts.PropertyType]string{
	contracts.PropertyApartment: "/ApartmentTransactionService/v1/getRTMSDataSvcAptTradeDev",
	contracts.PropertyOfficetel: "/HouseTransactionService/v1/getRTMSDataSvcOffiTrade",
	contracts.PropertyHouse:     "/HouseTransactionService/v1/getRTMSDataSvcSHTrade",
}

// Client handles communication with the 국토교통부 실거래가 API
// ⭐ SSOT: 국토부 API 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	serviceKey string
	numOfRows  int
}

// NewClient creates a new MOLIT client
func NewClient(httpClient *httputil.Client, cfg config.MOLITConfig, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log.WithModule("molit"),
		baseURL:    cfg.BaseURL,
		serviceKey: cfg.ServiceKey,
		numOfRows:  cfg.NumOfRows,
	}
}

// Name implements contracts.DealSource
func (c *Client) Name() string {
	return contracts.SourceAPI
}

// FetchRecords fetches the first page of transactions for the query
func (c *Client) FetchRecords(ctx context.Context, q contracts.DealQuery) ([]contracts.RawRecord, error) {
	endpoint, ok := endpoints[q.PropertyType]
	if !ok {
		endpoint = endpoints[contracts.PropertyApartment]
	}

	params := url.Values{}
	params.Set("serviceKey", c.serviceKey)
	params.Set("LAWD_CD", q.RegionCode)
	params.Set("DEAL_YMD", q.YearMonth)
	params.Set("numOfRows", strconv.Itoa(c.numOfRows))
	params.Set("pageNo", "1")

	fullURL := fmt.Sprintf("%s%s?%s", c.baseURL, endpoint, params.Encode())

	resp, err := c.httpClient.GetWithHeaders(ctx, fullURL, map[string]string{
		"Accept": "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("molit request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, contracts.NewUpstreamError(sourceName, contracts.ErrUpstreamStatus,
			"국토부 API 호출 실패: %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read molit response: %w", err)
	}

	records, err := ParsePayload(body)
	if err != nil {
		c.logger.WithError(err).WithFields(map[string]interface{}{
			"query":        q.String(),
			"content_type": resp.Header.Get("Content-Type"),
		}).Warn("MOLIT payload rejected")
		return nil, err
	}

	c.logger.WithFields(map[string]interface{}{
		"query": q.String(),
		"rows":  len(records),
	}).Info("MOLIT records fetched")

	return records, nil
}

var _ contracts.DealSource = (*Client)(nil)
