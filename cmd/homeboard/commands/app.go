package commands

import (
	"fmt"

	"github.com/wonny/homeboard/backend/internal/collector"
	"github.com/wonny/homeboard/backend/internal/complexmeta"
	"github.com/wonny/homeboard/backend/internal/contracts"
	"github.com/wonny/homeboard/backend/internal/deals"
	"github.com/wonny/homeboard/backend/internal/external/fx"
	"github.com/wonny/homeboard/backend/internal/external/molit"
	"github.com/wonny/homeboard/backend/internal/external/news"
	"github.com/wonny/homeboard/backend/internal/market"
	"github.com/wonny/homeboard/backend/internal/memcache"
	"github.com/wonny/homeboard/backend/internal/newsfeed"
	"github.com/wonny/homeboard/backend/internal/scheduler"
	"github.com/wonny/homeboard/backend/internal/scheduler/jobs"
	"github.com/wonny/homeboard/backend/pkg/config"
	"github.com/wonny/homeboard/backend/pkg/httputil"
	"github.com/wonny/homeboard/backend/pkg/logger"
	"github.com/wonny/homeboard/backend/pkg/redis"
)

// cachePrefix namespaces every Redis key of this service
const cachePrefix = "homeboard"

// app holds the wired services shared by every command
type app struct {
	cfg       *config.Config
	log       *logger.Logger
	redis     *redis.Client
	cache     contracts.Cache
	collector *collector.Collector
	market    *market.Service
	news      *newsfeed.Service
}

// newApp loads config and wires the full dependency graph
// ⭐ SSOT: 의존성 조립은 이 함수에서만
func newApp() (*app, error) {
	// 1. Load config
	cfg, err := config.LoadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Cache: Redis when enabled, otherwise in-memory
	rdb, err := redis.New(cfg)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, falling back to in-memory cache")
		rdb = &redis.Client{}
	}

	var cache contracts.Cache
	if rdb.Enabled() {
		cache = redis.NewCache(rdb, cachePrefix)
	} else {
		cache = memcache.New(cfg.Deals.CacheTTL)
	}

	// 4. Complex metadata
	meta, err := complexmeta.Load(cfg.Deals.MetadataFile)
	if err != nil {
		rdb.Close()
		return nil, fmt.Errorf("load complex metadata: %w", err)
	}

	// 5. Deal source: MOLIT API or mock
	var source contracts.DealSource
	if cfg.HasMOLITKey() {
		molitHTTP := httputil.New(cfg, log).WithLocalLimit(cfg.MOLIT.RatePerSec)
		if rdb.Enabled() {
			molitHTTP.WithRateLimiter(redis.NewRateLimiter(rdb, cachePrefix), redis.MOLITDailyLimit(cfg.MOLIT.DailyLimit))
		}
		source = molit.NewClient(molitHTTP, cfg.MOLIT, log)
	} else {
		log.Warn("MOLIT_API_KEY not set, serving mock deals")
		source = molit.NewMockSource(nil)
	}

	col := collector.NewCollector(source, deals.NewNormalizer(meta), cache, cfg.Deals, log)

	// 6. Market + news
	feedHTTP := httputil.New(cfg, log).WithLocalLimit(2)
	marketSvc := market.NewService(fx.NewClient(feedHTTP, cfg.Market.FXURL, log), cache, cfg.Market, log)
	newsSvc := newsfeed.NewService(news.NewClient(feedHTTP, log), news.DefaultFeeds, cache, cfg.News, log)

	return &app{
		cfg:       cfg,
		log:       log,
		redis:     rdb,
		cache:     cache,
		collector: col,
		market:    marketSvc,
		news:      newsSvc,
	}, nil
}

// newScheduler registers the cache warm-up jobs
func (a *app) newScheduler() (*scheduler.Scheduler, error) {
	sched := scheduler.New(a.log)

	for _, job := range []scheduler.Job{
		jobs.NewDealsRefreshJob(a.collector, a.cfg.Deals, a.log),
		jobs.NewNewsRefreshJob(a.news, a.log),
		jobs.NewMarketRefreshJob(a.market, a.log),
	} {
		if err := sched.AddJob(job); err != nil {
			return nil, err
		}
	}
	return sched, nil
}

func (a *app) Close() {
	if err := a.redis.Close(); err != nil {
		a.log.WithError(err).Warn("Failed to close redis")
	}
}
