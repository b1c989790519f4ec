// internal/jobs/daily.go
package jobs

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"gitdiscover-collector/internal/database"
	"gitdiscover-collector/internal/model"
	"gitdiscover-collector/internal/processor"
	"gitdiscover-collector/internal/trending"
)

// Languages fetched in addition to the global list, as URL path slugs.
var trendingLanguageSlugs = []string{
	"javascript",
	"python",
	"typescript",
	"go",
	"rust",
	"java",
	"c%2B%2B",
	"c%23",
	"php",
	"ruby",
}

type repositoryProcessor interface {
	Process(ctx context.Context, snapshotDate time.Time, candidates []model.TrendingRepo) (processor.BatchResult, error)
}

type developerProcessor interface {
	Process(ctx context.Context, snapshotDate time.Time, logins []string) (processed, failed int, err error)
}

// DailyJob ingests the day's trending signal into repository and developer
// snapshots.
type DailyJob struct {
	db      database.Querier
	fetcher trending.Fetcher
	repos   repositoryProcessor
	devs    developerProcessor
	logger  *slog.Logger
}

// NewDailyJob creates a DailyJob.
func NewDailyJob(db database.Querier, fetcher trending.Fetcher, repos repositoryProcessor, devs developerProcessor, logger *slog.Logger) *DailyJob {
	return &DailyJob{
		db:      db,
		fetcher: fetcher,
		repos:   repos,
		devs:    devs,
		logger:  logger,
	}
}

// Run fetches the global and per-language trending lists, merges them into
// one ranked candidate set, and hands the survivors to the processors.
func (j *DailyJob) Run(ctx context.Context, snapshotDate time.Time) (Outcome, error) {
	j.logger.Info("Daily job started", "snapshot_date", snapshotDate.Format(time.DateOnly))

	lists := make([][]model.TrendingRepo, len(trendingLanguageSlugs)+1)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := j.fetcher.FetchTrending(gctx, trending.WindowDaily, "")
		lists[0] = items
		return err
	})
	for i, slug := range trendingLanguageSlugs {
		g.Go(func() error {
			items, err := j.fetcher.FetchTrending(gctx, trending.WindowDaily, slug)
			lists[i+1] = items
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Outcome{}, err
	}

	merged := trending.Merge(lists...)
	if len(merged) > trending.TopN {
		merged = merged[:trending.TopN]
	}
	j.logger.Info("Merged trending candidates", "candidates", len(merged))

	result, err := j.repos.Process(ctx, snapshotDate, merged)
	if err != nil {
		return Outcome{Failed: result.Failed}, err
	}

	logins, err := j.db.ListOwnerLogins(ctx, result.RepositoryIDs)
	if err != nil {
		return Outcome{Processed: len(result.RepositoryIDs), Failed: result.Failed}, err
	}

	_, devFailed, err := j.devs.Process(ctx, snapshotDate, logins)
	outcome := Outcome{
		Processed: len(result.RepositoryIDs),
		Failed:    result.Failed + devFailed,
	}
	if err != nil {
		return outcome, err
	}

	j.logger.Info("Daily job complete", "repos", len(result.RepositoryIDs), "failed", outcome.Failed)
	return outcome, nil
}
