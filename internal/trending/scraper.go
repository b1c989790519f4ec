// internal/trending/scraper.go

// Package trending provides the trending-page source adapter and the
// merge/dedup step that turns several trending lists into one ranked
// candidate set.
package trending

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	custom_errors "gitdiscover-collector/internal/errors"
	"gitdiscover-collector/internal/model"
)

// Window selects the trending aggregation window.
type Window string

const (
	WindowDaily   Window = "daily"
	WindowWeekly  Window = "weekly"
	WindowMonthly Window = "monthly"
)

const (
	defaultBaseURL = "https://github.com"
	userAgent      = "gitdiscover-collector/1.0"
)

// Fetcher is the capability the pipeline depends on. The scraper below is one
// implementation; tests substitute their own.
type Fetcher interface {
	FetchTrending(ctx context.Context, window Window, languageSlug string) ([]model.TrendingRepo, error)
}

// Scraper fetches and parses the trending page markup.
type Scraper struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewScraper creates a Scraper against the public trending page.
func NewScraper(client *http.Client, logger *slog.Logger) *Scraper {
	if client == nil {
		client = http.DefaultClient
	}
	return &Scraper{
		baseURL: defaultBaseURL,
		client:  client,
		logger:  logger,
	}
}

// FetchTrending scrapes one trending list. Individual items that fail to
// parse are skipped; a page that parses to zero items is an error because it
// means the markup no longer matches.
func (s *Scraper) FetchTrending(ctx context.Context, window Window, languageSlug string) ([]model.TrendingRepo, error) {
	url := s.baseURL + "/trending"
	if languageSlug != "" {
		url += "/" + languageSlug
	}
	url += "?since=" + string(window)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("trending fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("trending fetch failed: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse trending page: %w", err)
	}

	var items []model.TrendingRepo
	doc.Find("article.Box-row").Each(func(_ int, el *goquery.Selection) {
		item, ok := parseItem(el)
		if !ok {
			s.logger.Debug("Skipping unparseable trending item", "url", url)
			return
		}
		items = append(items, item)
	})

	if len(items) == 0 {
		return nil, &custom_errors.ErrEmptyTrendingPage{URL: url}
	}

	s.logger.Debug("Fetched trending list", "url", url, "items", len(items))
	return items, nil
}

var starsInWindowRe = regexp.MustCompile(`(?i)\s*stars?\s+(today|this week|this month)\s*$`)

func parseItem(el *goquery.Selection) (model.TrendingRepo, bool) {
	href := strings.TrimSpace(el.Find("h2 a").First().AttrOr("href", ""))
	fullName := strings.TrimPrefix(href, "/")
	if !strings.Contains(fullName, "/") {
		return model.TrendingRepo{}, false
	}

	item := model.TrendingRepo{FullName: fullName}

	if desc := strings.TrimSpace(el.Find("p").First().Text()); desc != "" {
		item.Description = &desc
	}
	if lang := strings.TrimSpace(el.Find(`[itemprop="programmingLanguage"]`).First().Text()); lang != "" {
		item.Language = &lang
	}

	item.StarsTotal = ParseCompactNumber(el.Find(`a[href$="/stargazers"]`).First().Text())
	item.ForksTotal = ParseCompactNumber(el.Find(`a[href$="/forks"]`).First().Text())

	// Example text: "1,234 stars today"
	gained := starsInWindowRe.ReplaceAllString(el.Find("span.d-inline-block.float-sm-right").First().Text(), "")
	item.StarsInWindow = ParseCompactNumber(gained)

	return item, true
}

var compactNumberRe = regexp.MustCompile(`^([0-9]*\.?[0-9]+)([kmb])?$`)

// ParseCompactNumber parses a human-readable count such as "1,234" or "40.3k".
// It returns nil when the text holds no recognizable number.
func ParseCompactNumber(raw string) *int {
	s := strings.ToLower(strings.TrimSpace(strings.ReplaceAll(raw, ",", "")))
	if s == "" {
		return nil
	}

	m := compactNumberRe.FindStringSubmatch(s)
	if m == nil {
		return nil
	}

	var num float64
	if _, err := fmt.Sscanf(m[1], "%f", &num); err != nil {
		return nil
	}

	switch m[2] {
	case "k":
		num *= 1_000
	case "m":
		num *= 1_000_000
	case "b":
		num *= 1_000_000_000
	}

	n := int(num + 0.5)
	return &n
}
