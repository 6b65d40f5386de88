package fx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/homeboard/backend/internal/contracts"
	"github.com/wonny/homeboard/backend/pkg/config"
	"github.com/wonny/homeboard/backend/pkg/httputil"
	"github.com/wonny/homeboard/backend/pkg/logger"
)

func serve(t *testing.T, status int, body string) *Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	httpClient := httputil.New(&config.Config{}, logger.Nop()).DisableRetry()
	return NewClient(httpClient, server.URL+"/latest?base=USD&symbols=KRW", logger.Nop())
}

func TestFetchUSDKRW(t *testing.T) {
	c := serve(t, http.StatusOK, `{"base":"USD","date":"2025-03-14","rates":{"KRW":1452.35}}`)

	q, err := c.FetchUSDKRW(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1452.35, q.Rate)
	assert.Equal(t, "2025-03-14", q.Date.Format(time.DateOnly))
	assert.Equal(t, "127.0.0.1", q.Source)
}

func TestFetchUSDKRW_MissingDateUsesNow(t *testing.T) {
	c := serve(t, http.StatusOK, `{"rates":{"KRW":1400}}`)
	fixed := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return fixed }

	q, err := c.FetchUSDKRW(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fixed, q.Date)
}

func TestFetchUSDKRW_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"bad status", http.StatusServiceUnavailable, "", contracts.ErrUpstreamStatus},
		{"not json", http.StatusOK, "<html></html>", contracts.ErrUnparsablePayload},
		{"missing KRW", http.StatusOK, `{"rates":{"EUR":0.92}}`, contracts.ErrUnparsablePayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := serve(t, tt.status, tt.body).FetchUSDKRW(context.Background())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
