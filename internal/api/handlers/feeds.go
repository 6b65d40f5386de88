package handlers

import (
	"context"
	"net/http"

	"github.com/wonny/homeboard/backend/internal/contracts"
	"github.com/wonny/homeboard/backend/pkg/logger"
)

// MarketService provides the market snapshot
type MarketService interface {
	Indicators(ctx context.Context) (*contracts.MarketIndicators, error)
}

// NewsService provides the aggregated news feed
type NewsService interface {
	Feed(ctx context.Context) (*contracts.NewsFeed, error)
}

// FeedsHandler serves market indicators and news
type FeedsHandler struct {
	market MarketService
	news   NewsService
	logger *logger.Logger
}

// NewFeedsHandler creates a new feeds handler
func NewFeedsHandler(market MarketService, news NewsService, log *logger.Logger) *FeedsHandler {
	return &FeedsHandler{market: market, news: news, logger: log}
}

// GetMarket returns base rates and USD/KRW
// GET /api/market
func (h *FeedsHandler) GetMarket(w http.ResponseWriter, r *http.Request) {
	indicators, err := h.market.Indicators(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to load market indicators")
		respondError(w, http.StatusBadGateway, "지표 데이터를 불러올 수 없습니다.", ReasonUpstream)
		return
	}

	respondJSON(w, http.StatusOK, indicators)
}

// GetNews returns the recent articles; a stale copy carries "error"
// GET /api/news
func (h *FeedsHandler) GetNews(w http.ResponseWriter, r *http.Request) {
	feed, err := h.news.Feed(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to load news feed")
		respondError(w, http.StatusBadGateway, "뉴스 정보를 불러오지 못했습니다.", ReasonUpstream)
		return
	}

	respondJSON(w, http.StatusOK, feed)
}
