package newsfeed

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/wonny/homeboard/backend/internal/contracts"
	"github.com/wonny/homeboard/backend/internal/external/news"
	"github.com/wonny/homeboard/backend/pkg/config"
	"github.com/wonny/homeboard/backend/pkg/logger"
	"github.com/wonny/homeboard/backend/pkg/redis"
)

// ErrAllFeedsFailed is returned when no feed answered and nothing stale is available
var ErrAllFeedsFailed = errors.New("all news feeds failed")

// FeedFetcher fetches and maps one RSS feed
type FeedFetcher interface {
	FetchFeed(ctx context.Context, feed news.Feed) ([]contracts.Article, error)
}

// Service aggregates the RSS feeds into one recent, newest-first list
// ⭐ SSOT: 뉴스 집계 (병렬 수집 → 기간 필터 → 정렬 → 상한)
type Service struct {
	fetcher FeedFetcher
	feeds   []news.Feed
	cache   contracts.Cache
	cfg     config.NewsConfig
	logger  *logger.Logger
	now     func() time.Time

	mu       sync.RWMutex
	lastGood *contracts.NewsFeed
}

// NewService creates a news service; cache may be nil
func NewService(fetcher FeedFetcher, feeds []news.Feed, cache contracts.Cache, cfg config.NewsConfig, log *logger.Logger) *Service {
	if cfg.Window <= 0 {
		cfg.Window = 7 * 24 * time.Hour
	}
	if cfg.MaxArticles <= 0 {
		cfg.MaxArticles = 8
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = redis.TTLMedium
	}
	return &Service{
		fetcher: fetcher,
		feeds:   feeds,
		cache:   cache,
		cfg:     cfg,
		logger:  log.WithModule("newsfeed"),
		now:     time.Now,
	}
}

// Feed returns the cached feed or aggregates a fresh one
func (s *Service) Feed(ctx context.Context) (*contracts.NewsFeed, error) {
	if s.cache != nil {
		var cached contracts.NewsFeed
		found, err := s.cache.Get(ctx, redis.NewsKey(), &cached)
		if err != nil {
			s.logger.WithError(err).Warn("News cache read failed")
		} else if found {
			return &cached, nil
		}
	}
	return s.Refresh(ctx)
}

// Refresh fetches every feed concurrently. Failed feeds are dropped; when all
// of them fail the last good feed is served with Error set.
func (s *Service) Refresh(ctx context.Context) (*contracts.NewsFeed, error) {
	articles, errs := s.fetchAll(ctx)

	if len(s.feeds) > 0 && len(errs) == len(s.feeds) {
		err := fmt.Errorf("%w: %w", ErrAllFeedsFailed, errors.Join(errs...))
		if stale := s.stale(err); stale != nil {
			s.logger.WithError(err).Warn("Serving stale news feed")
			return stale, nil
		}
		return nil, err
	}

	now := s.now()
	feed := &contracts.NewsFeed{
		UpdatedAt: now,
		Articles:  s.recent(articles, now),
	}

	s.mu.Lock()
	s.lastGood = feed
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.Set(ctx, redis.NewsKey(), feed, s.cfg.CacheTTL); err != nil {
			s.logger.WithError(err).Warn("News cache write failed")
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"feeds":    len(s.feeds),
		"failed":   len(errs),
		"articles": len(feed.Articles),
	}).Info("News feed refreshed")

	return feed, nil
}

func (s *Service) fetchAll(ctx context.Context) ([]contracts.Article, []error) {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		articles []contracts.Article
		errs     []error
	)

	for _, feed := range s.feeds {
		wg.Add(1)
		go func(feed news.Feed) {
			defer wg.Done()
			items, err := s.fetcher.FetchFeed(ctx, feed)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.logger.WithError(err).WithField("feed", feed.Label).Warn("News feed failed")
				errs = append(errs, err)
				return
			}
			articles = append(articles, items...)
		}(feed)
	}
	wg.Wait()

	return articles, errs
}

// recent keeps the window, sorts newest first and caps the list
func (s *Service) recent(articles []contracts.Article, now time.Time) []contracts.Article {
	out := make([]contracts.Article, 0, len(articles))
	for _, a := range articles {
		if now.Sub(a.PublishedAt) <= s.cfg.Window {
			out = append(out, a)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})

	if len(out) > s.cfg.MaxArticles {
		out = out[:s.cfg.MaxArticles]
	}
	return out
}

func (s *Service) stale(err error) *contracts.NewsFeed {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastGood == nil {
		return nil
	}
	stale := *s.lastGood
	stale.Articles = append([]contracts.Article(nil), s.lastGood.Articles...)
	stale.Error = err.Error()
	return &stale
}
