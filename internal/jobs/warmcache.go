// internal/jobs/warmcache.go
package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	warmConcurrency = 8
	warmDetailCount = 20
)

// Display names, matching what the API stores for language filters.
var warmLanguages = []string{
	"JavaScript",
	"TypeScript",
	"Python",
	"Go",
	"Rust",
	"Java",
	"C++",
	"C#",
	"PHP",
	"Ruby",
}

type repoListResponse struct {
	Data []struct {
		FullName string `json:"fullName"`
	} `json:"data"`
}

// WarmCacheJob primes the read API's cache by requesting its hot paths
// after a daily sync, so the first real visitors hit warm entries.
type WarmCacheJob struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

func NewWarmCacheJob(apiBaseURL string, logger *slog.Logger) *WarmCacheJob {
	return &WarmCacheJob{
		baseURL: strings.TrimRight(apiBaseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

// Run warms the core listings, the language-filtered listings, and the
// detail pages of the current top repositories. Growth-trend and analysis
// endpoints are best effort; everything else failing fails the job.
func (j *WarmCacheJob) Run(ctx context.Context) (Outcome, error) {
	var warmed atomic.Int64

	repoListPath := "/repositories?limit=50&sort=score&period=daily"
	var repoListBody []byte

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(warmConcurrency)
	g.Go(func() error {
		body, err := j.hit(gctx, repoListPath, &warmed)
		repoListBody = body
		return err
	})
	for _, path := range []string{
		"/developers?limit=30&sort=impact",
		"/developers?limit=30&sort=followers",
		"/developers?limit=30&sort=stars",
		"/trends/languages?period=weekly",
		"/trends/topics?period=weekly",
	} {
		g.Go(func() error {
			_, err := j.hit(gctx, path, &warmed)
			return err
		})
	}
	for _, metric := range []string{"stars", "forks", "score"} {
		g.Go(func() error {
			// Growth trends may not be computed yet for a fresh day.
			if _, err := j.hit(gctx, "/trends/growth?metric="+metric+"&period=daily&limit=10", &warmed); err != nil {
				j.logger.Warn("Skipping growth trend warm", "metric", metric, "error", err)
			}
			return nil
		})
	}
	for _, lang := range warmLanguages {
		g.Go(func() error {
			_, err := j.hit(gctx, "/repositories?limit=50&sort=score&period=daily&language="+url.QueryEscape(lang), &warmed)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Outcome{Processed: int(warmed.Load()), Failed: 1}, err
	}

	var listing repoListResponse
	if err := json.Unmarshal(repoListBody, &listing); err != nil {
		return Outcome{Processed: int(warmed.Load()), Failed: 1}, fmt.Errorf("decoding repository listing: %w", err)
	}
	top := listing.Data
	if len(top) > warmDetailCount {
		top = top[:warmDetailCount]
	}

	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(warmConcurrency)
	for _, repo := range top {
		g.Go(func() error {
			enc := url.PathEscape(repo.FullName)
			if _, err := j.hit(gctx, "/repositories/"+enc, &warmed); err != nil {
				return err
			}
			if _, err := j.hit(gctx, "/repositories/"+enc+"/analysis", &warmed); err != nil {
				// Not every repository has an analysis row yet.
				j.logger.Warn("Skipping analysis warm", "repo", repo.FullName, "error", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Outcome{Processed: int(warmed.Load()), Failed: 1}, err
	}

	j.logger.Info("Warm cache job complete", "warmed", warmed.Load())
	return Outcome{Processed: int(warmed.Load())}, nil
}

func (j *WarmCacheJob) hit(ctx context.Context, path string, warmed *atomic.Int64) ([]byte, error) {
	target := j.baseURL + "/v1" + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := j.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("warm %s: unexpected status %d", target, resp.StatusCode)
	}
	warmed.Add(1)
	j.logger.Info("Cache warmed", "url", target, "cache", resp.Header.Get("x-cache"))
	return body, nil
}
