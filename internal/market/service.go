package market

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/homeboard/backend/internal/contracts"
	"github.com/wonny/homeboard/backend/internal/external/fx"
	"github.com/wonny/homeboard/backend/pkg/config"
	"github.com/wonny/homeboard/backend/pkg/logger"
	"github.com/wonny/homeboard/backend/pkg/redis"
)

const (
	labelKoreaBase = "한국 기준금리"
	labelUSBase    = "미국 기준금리"
	labelUSDKRW    = "USD / KRW"
)

// RateFetcher provides the live USD/KRW quote
type RateFetcher interface {
	FetchUSDKRW(ctx context.Context) (*fx.Quote, error)
}

// Service assembles market indicators (base rates + FX)
// ⭐ SSOT: 시장 지표 조립은 이 서비스에서만
type Service struct {
	fx     RateFetcher
	cache  contracts.Cache
	cfg    config.MarketConfig
	logger *logger.Logger
}

// NewService creates a market service; cache may be nil
func NewService(fetcher RateFetcher, cache contracts.Cache, cfg config.MarketConfig, log *logger.Logger) *Service {
	return &Service{
		fx:     fetcher,
		cache:  cache,
		cfg:    cfg,
		logger: log.WithModule("market"),
	}
}

// Indicators returns the cached snapshot or builds a fresh one
func (s *Service) Indicators(ctx context.Context) (*contracts.MarketIndicators, error) {
	if s.cache != nil {
		var cached contracts.MarketIndicators
		found, err := s.cache.Get(ctx, redis.MarketKey(), &cached)
		if err != nil {
			s.logger.WithError(err).Warn("Market cache read failed")
		} else if found {
			return &cached, nil
		}
	}
	return s.Refresh(ctx)
}

// Refresh fetches the FX quote and stores the new snapshot.
// Base rates are policy values from configuration (no public API).
func (s *Service) Refresh(ctx context.Context) (*contracts.MarketIndicators, error) {
	quote, err := s.fx.FetchUSDKRW(ctx)
	if err != nil {
		return nil, fmt.Errorf("market indicators: %w", err)
	}

	indicators := &contracts.MarketIndicators{
		UpdatedAt: quote.Date,
		BaseRates: contracts.BaseRates{
			Korea: contracts.Indicator{Label: labelKoreaBase, Value: s.cfg.KoreaBase, Source: s.cfg.KoreaSource},
			US:    contracts.Indicator{Label: labelUSBase, Value: s.cfg.USBase, Source: s.cfg.USSource},
		},
		USDKRW: contracts.Indicator{Label: labelUSDKRW, Value: quote.Rate, Source: quote.Source},
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, redis.MarketKey(), indicators, s.ttl()); err != nil {
			s.logger.WithError(err).Warn("Market cache write failed")
		}
	}

	s.logger.WithField("usd_krw", quote.Rate).Info("Market indicators refreshed")
	return indicators, nil
}

func (s *Service) ttl() time.Duration {
	if s.cfg.CacheTTL > 0 {
		return s.cfg.CacheTTL
	}
	return redis.TTLLong
}
