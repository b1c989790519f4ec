// internal/processor/repositories.go
package processor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"golang.org/x/sync/errgroup"

	"gitdiscover-collector/internal/database"
	"gitdiscover-collector/internal/model"
	"gitdiscover-collector/internal/scoring"
)

const (
	// Number of repositories to reconcile in parallel
	repoConcurrency = 5

	// Days used when a repository has no recorded push at all.
	noPushFallbackDays = 9999
)

// RepositoryProcessor reconciles merge survivors into repository and
// snapshot rows.
type RepositoryProcessor struct {
	db     database.Querier
	gh     DetailFetcher
	logger *slog.Logger
	now    func() time.Time
}

// NewRepositoryProcessor creates a new RepositoryProcessor.
func NewRepositoryProcessor(db database.Querier, gh DetailFetcher, logger *slog.Logger) *RepositoryProcessor {
	return &RepositoryProcessor{
		db:     db,
		gh:     gh,
		logger: logger,
		now:    time.Now,
	}
}

// BatchResult reports what a processing pass persisted.
type BatchResult struct {
	RepositoryIDs []int64
	Failed        int
}

// Process reconciles each candidate under bounded concurrency. Snapshot rank
// follows the candidate's position in the merged list, never completion
// order. A failing item is recorded and skipped rather than aborting the
// batch; only a batch where every item failed is an error.
func (p *RepositoryProcessor) Process(ctx context.Context, snapshotDate time.Time, candidates []model.TrendingRepo) (BatchResult, error) {
	ids := make([]int64, len(candidates))
	itemErrs := make([]error, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(repoConcurrency)

	for i, item := range candidates {
		g.Go(func() error {
			if gctx.Err() != nil {
				itemErrs[i] = gctx.Err()
				return nil
			}
			id, err := p.processItem(gctx, snapshotDate, int32(i+1), item)
			if err != nil && !errors.Is(err, context.Canceled) {
				p.logger.Error("Failed to process repository", "repo", item.FullName, "error", err)
			}
			if err != nil {
				itemErrs[i] = err
				return nil
			}
			ids[i] = id
			return nil
		})
	}
	_ = g.Wait()

	var result BatchResult
	var firstErr error
	for i := range candidates {
		if itemErrs[i] != nil {
			result.Failed++
			if firstErr == nil {
				firstErr = itemErrs[i]
			}
			continue
		}
		result.RepositoryIDs = append(result.RepositoryIDs, ids[i])
	}

	if len(candidates) > 0 && len(result.RepositoryIDs) == 0 {
		return result, fmt.Errorf("all %d repositories failed: %w", len(candidates), firstErr)
	}
	return result, nil
}

// processItem handles the full reconciliation for one candidate.
func (p *RepositoryProcessor) processItem(ctx context.Context, snapshotDate time.Time, rank int32, item model.TrendingRepo) (int64, error) {
	owner, name, err := splitFullName(item.FullName)
	if err != nil {
		return 0, err
	}

	logger := p.logger.With("repo", item.FullName)

	existing, err := p.db.GetRepositoryByFullName(ctx, item.FullName)
	known := err == nil
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}

	detail, err := p.gh.GetRepository(ctx, owner, name)
	if err != nil {
		return 0, err
	}

	// Resolve or create the owner reference first so the repository row can
	// point at it. Full profile enrichment happens in the developer pass.
	var ownerID pgtype.Int8
	if detail.Owner != nil {
		dev, err := p.db.UpsertDeveloperRef(ctx, database.UpsertDeveloperRefParams{
			GithubID:  detail.Owner.GithubID,
			Login:     detail.Owner.Login,
			AvatarUrl: textFromPtr(detail.Owner.AvatarURL),
		})
		if err != nil {
			return 0, err
		}
		ownerID = pgtype.Int8{Int64: dev.ID, Valid: true}
	}

	var previous *database.RepositorySnapshot
	if known {
		snap, err := p.db.GetRepositorySnapshot(ctx, database.GetRepositorySnapshotParams{
			RepositoryID: existing.ID,
			SnapshotDate: snapshotDate.AddDate(0, 0, -1),
		})
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return 0, err
		}
		if err == nil {
			previous = &snap
		}
	}

	starsGrowth := 0
	switch {
	case item.StarsInWindow != nil:
		starsGrowth = *item.StarsInWindow
	case previous != nil:
		starsGrowth = max(0, detail.Stars-int(previous.Stars))
	}
	forksGrowth := 0
	if previous != nil {
		forksGrowth = max(0, detail.Forks-int(previous.Forks))
	}

	lastCommitDays := noPushFallbackDays
	if detail.PushedAt != nil {
		lastCommitDays = int(p.now().Sub(*detail.PushedAt).Hours() / 24)
	}
	openIssueRatio := 0.0
	if detail.OpenIssues+detail.Stars > 0 {
		openIssueRatio = float64(detail.OpenIssues) / float64(detail.OpenIssues+detail.Stars)
	}

	score := scoring.HotnessScore(scoring.RepoMetrics{
		StarsGrowth24h: starsGrowth,
		ForksGrowth24h: forksGrowth,
		HasReadme:      true,
		HasLicense:     detail.HasLicense,
		LastCommitDays: lastCommitDays,
		OpenIssueRatio: openIssueRatio,
	})

	language := detail.Language
	if language == nil {
		language = item.Language
	}

	repo, err := p.db.UpsertRepository(ctx, database.UpsertRepositoryParams{
		GithubID:       detail.GithubID,
		FullName:       item.FullName,
		Name:           detail.Name,
		Description:    textFromPtr(detail.Description),
		Language:       textFromPtr(language),
		Homepage:       textFromPtr(detail.Homepage),
		License:        textFromPtr(detail.License),
		Topics:         detail.Topics,
		Stars:          int32(detail.Stars),
		Forks:          int32(detail.Forks),
		Watchers:       int32(detail.Watchers),
		OpenIssues:     int32(detail.OpenIssues),
		Size:           int32(detail.Size),
		Score:          score,
		StarsGrowth24h: int32(starsGrowth),
		ForksGrowth24h: int32(forksGrowth),
		HasReadme:      true,
		HasLicense:     detail.HasLicense,
		IsArchived:     detail.IsArchived,
		IsFork:         detail.IsFork,
		OwnerID:        ownerID,
		PushedAt:       timestamptzFromPtr(detail.PushedAt),
		RepoCreatedAt:  timestamptzFromPtr(detail.RepoCreatedAt),
	})
	if err != nil {
		return 0, err
	}

	err = p.db.UpsertRepositorySnapshot(ctx, database.UpsertRepositorySnapshotParams{
		RepositoryID: repo.ID,
		SnapshotDate: snapshotDate,
		Stars:        int32(detail.Stars),
		Forks:        int32(detail.Forks),
		Watchers:     int32(detail.Watchers),
		OpenIssues:   int32(detail.OpenIssues),
		StarsGrowth:  int32(starsGrowth),
		ForksGrowth:  int32(forksGrowth),
		Score:        score,
		Rank:         rank,
	})
	if err != nil {
		return 0, err
	}

	logger.Debug("Reconciled repository", "repo_id", repo.ID, "rank", rank, "score", score)
	return repo.ID, nil
}
