package news

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/wonny/homeboard/backend/internal/contracts"
	"github.com/wonny/homeboard/backend/pkg/httputil"
	"github.com/wonny/homeboard/backend/pkg/logger"
)

const (
	sourceName   = "news"
	untitled     = "제목 미확인"
	fallbackLink = "#"
	maxFeedBytes = 4 << 20
)

// Feed is one RSS source
type Feed struct {
	URL   string
	Label string
}

// DefaultFeeds are the Google News searches shown on the dashboard
var DefaultFeeds = []Feed{
	{
		URL:   "https://news.google.com/rss/search?q=%EC%9A%B4%EC%A0%95%20%EB%B6%80%EB%8F%99%EC%82%B0&hl=ko&gl=KR&ceid=KR:ko",
		Label: "Google News · 운정",
	},
	{
		URL:   "https://news.google.com/rss/search?q=%EB%B6%80%EB%8F%99%EC%82%B0%20%EA%B8%88%EB%A6%AC&hl=ko&gl=KR&ceid=KR:ko",
		Label: "Google News · 금리",
	},
}

// Client fetches and parses RSS feeds
// ⭐ SSOT: 뉴스 RSS 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	now        func() time.Time
}

// NewClient creates a new RSS client
func NewClient(httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log.WithModule("news"),
		now:        time.Now,
	}
}

// FetchFeed downloads one feed and maps its items to articles
func (c *Client) FetchFeed(ctx context.Context, feed Feed) ([]contracts.Article, error) {
	resp, err := c.httpClient.Get(ctx, feed.URL)
	if err != nil {
		return nil, fmt.Errorf("rss request (%s): %w", feed.Label, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, contracts.NewUpstreamError(sourceName, contracts.ErrUpstreamStatus,
			"RSS 응답 오류 (%s): %s", feed.Label, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, fmt.Errorf("read rss (%s): %w", feed.Label, err)
	}

	articles, err := ParseRSS(data, feed.Label, c.now())
	if err != nil {
		return nil, err
	}

	c.logger.WithFields(map[string]interface{}{
		"feed":     feed.Label,
		"articles": len(articles),
	}).Debug("RSS feed parsed")

	return articles, nil
}

type rssDocument struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string    `xml:"title"`
	Description string    `xml:"description"`
	Link        string    `xml:"link"`
	PubDate     string    `xml:"pubDate"`
	Published   string    `xml:"published"`
	Source      rssSource `xml:"source"`
}

type rssSource struct {
	Name string `xml:",chardata"`
	URL  string `xml:"url,attr"`
}

// pubDateLayouts are tried in order
var pubDateLayouts = []string{time.RFC1123Z, time.RFC1123, time.RFC3339, "Mon, 2 Jan 2006 15:04:05 MST"}

// ParseRSS maps an RSS 2.0 document to articles.
// 제목 없음 -> "제목 미확인", 요약 없음 -> 제목, 출처 없음 -> feed label,
// 발행일 파싱 실패 -> now, 링크 없음 -> "#".
func ParseRSS(data []byte, label string, now time.Time) ([]contracts.Article, error) {
	var doc rssDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, contracts.NewUpstreamError(sourceName, contracts.ErrUnparsablePayload,
			"rss (%s): %v", label, err)
	}

	articles := make([]contracts.Article, 0, len(doc.Channel.Items))
	for _, item := range doc.Channel.Items {
		articles = append(articles, mapItem(item, label, now))
	}
	return articles, nil
}

func mapItem(item rssItem, label string, now time.Time) contracts.Article {
	title := strings.TrimSpace(item.Title)
	if title == "" {
		title = untitled
	}

	summary := StripHTML(item.Description)
	if summary == "" {
		summary = title
	}

	source := strings.TrimSpace(item.Source.Name)
	if source == "" {
		source = label
	}

	link := strings.TrimSpace(item.Link)
	if link == "" {
		link = fallbackLink
	}

	raw := item.PubDate
	if strings.TrimSpace(raw) == "" {
		raw = item.Published
	}

	return contracts.Article{
		Title:       title,
		Summary:     summary,
		Source:      source,
		PublishedAt: parsePubDate(raw, now),
		URL:         link,
	}
}

func parsePubDate(raw string, now time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return now.UTC()
}

// StripHTML returns the visible text of an HTML fragment with whitespace collapsed
func StripHTML(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.Join(strings.Fields(fragment), " ")
	}

	var parts []string
	collectText(doc.Selection, &parts)

	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// collectText walks nodes in document order so adjacent elements stay separated
func collectText(sel *goquery.Selection, parts *[]string) {
	sel.Contents().Each(func(_ int, s *goquery.Selection) {
		switch goquery.NodeName(s) {
		case "#text":
			*parts = append(*parts, s.Text())
		case "script", "style":
		default:
			collectText(s, parts)
		}
	})
}
