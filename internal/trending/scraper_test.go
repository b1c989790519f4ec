// internal/trending/scraper_test.go
package trending

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	custom_errors "gitdiscover-collector/internal/errors"
)

const trendingPageFixture = `<!DOCTYPE html>
<html><body>
<article class="Box-row">
  <h2><a href="/vercel/next.js">vercel / next.js</a></h2>
  <p>The React Framework</p>
  <span itemprop="programmingLanguage">JavaScript</span>
  <a href="/vercel/next.js/stargazers">120,432</a>
  <a href="/vercel/next.js/forks">25.7k</a>
  <span class="d-inline-block float-sm-right">1,234 stars today</span>
</article>
<article class="Box-row">
  <h2><a href="/rust-lang/rust">rust-lang / rust</a></h2>
  <a href="/rust-lang/rust/stargazers">90.1k</a>
  <span class="d-inline-block float-sm-right">87 stars today</span>
</article>
<article class="Box-row">
  <h2><a href="/not-a-repo">broken item</a></h2>
</article>
</body></html>`

func setupTestScraper(t *testing.T, handler http.Handler) (*Scraper, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	scraper := NewScraper(server.Client(), logger)
	scraper.baseURL = server.URL
	return scraper, server
}

func TestScraper_FetchTrending(t *testing.T) {
	t.Run("parses items and skips the unparseable one", func(t *testing.T) {
		var gotPath, gotQuery string
		scraper, server := setupTestScraper(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.RawQuery
			fmt.Fprint(w, trendingPageFixture)
		}))
		defer server.Close()

		items, err := scraper.FetchTrending(context.Background(), WindowDaily, "")

		require.NoError(t, err)
		assert.Equal(t, "/trending", gotPath)
		assert.Equal(t, "since=daily", gotQuery)
		require.Len(t, items, 2)

		first := items[0]
		assert.Equal(t, "vercel/next.js", first.FullName)
		require.NotNil(t, first.Description)
		assert.Equal(t, "The React Framework", *first.Description)
		require.NotNil(t, first.Language)
		assert.Equal(t, "JavaScript", *first.Language)
		require.NotNil(t, first.StarsTotal)
		assert.Equal(t, 120432, *first.StarsTotal)
		require.NotNil(t, first.ForksTotal)
		assert.Equal(t, 25700, *first.ForksTotal)
		require.NotNil(t, first.StarsInWindow)
		assert.Equal(t, 1234, *first.StarsInWindow)

		second := items[1]
		assert.Equal(t, "rust-lang/rust", second.FullName)
		assert.Nil(t, second.Description)
		assert.Nil(t, second.Language)
		assert.Nil(t, second.ForksTotal)
		require.NotNil(t, second.StarsInWindow)
		assert.Equal(t, 87, *second.StarsInWindow)
	})

	t.Run("includes language slug in path", func(t *testing.T) {
		var gotPath string
		scraper, server := setupTestScraper(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			fmt.Fprint(w, trendingPageFixture)
		}))
		defer server.Close()

		_, err := scraper.FetchTrending(context.Background(), WindowWeekly, "go")

		require.NoError(t, err)
		assert.Equal(t, "/trending/go", gotPath)
	})

	t.Run("zero parsed items is an error, not an empty list", func(t *testing.T) {
		scraper, server := setupTestScraper(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `<html><body><div>layout changed entirely</div></body></html>`)
		}))
		defer server.Close()

		items, err := scraper.FetchTrending(context.Background(), WindowDaily, "")

		require.Error(t, err)
		var emptyErr *custom_errors.ErrEmptyTrendingPage
		assert.ErrorAs(t, err, &emptyErr)
		assert.Nil(t, items)
	})

	t.Run("non-200 response is an error", func(t *testing.T) {
		scraper, server := setupTestScraper(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		_, err := scraper.FetchTrending(context.Background(), WindowDaily, "")
		assert.Error(t, err)
	})
}

func TestParseCompactNumber(t *testing.T) {
	intPtr := func(n int) *int { return &n }

	tests := []struct {
		in   string
		want *int
	}{
		{"1,234", intPtr(1234)},
		{"40.3k", intPtr(40300)},
		{"1.2m", intPtr(1200000)},
		{"2b", intPtr(2000000000)},
		{"  512 ", intPtr(512)},
		{"0", intPtr(0)},
		{"", nil},
		{"n/a", nil},
		{"12x", nil},
	}

	for _, tt := range tests {
		got := ParseCompactNumber(tt.in)
		if tt.want == nil {
			assert.Nil(t, got, "input %q", tt.in)
			continue
		}
		require.NotNil(t, got, "input %q", tt.in)
		assert.Equal(t, *tt.want, *got, "input %q", tt.in)
	}
}
