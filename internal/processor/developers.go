// internal/processor/developers.go
package processor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gitdiscover-collector/internal/database"
	"gitdiscover-collector/internal/scoring"
)

// DeveloperProcessor enriches the owners observed in a repository batch.
type DeveloperProcessor struct {
	db     database.Querier
	gh     DetailFetcher
	logger *slog.Logger
}

// NewDeveloperProcessor creates a new DeveloperProcessor.
func NewDeveloperProcessor(db database.Querier, gh DetailFetcher, logger *slog.Logger) *DeveloperProcessor {
	return &DeveloperProcessor{
		db:     db,
		gh:     gh,
		logger: logger,
	}
}

// Process runs sequentially over the distinct logins, after repository
// ownership links have been committed. One failing login is recorded and
// skipped; only a pass where every login failed is an error.
func (p *DeveloperProcessor) Process(ctx context.Context, snapshotDate time.Time, logins []string) (processed, failed int, err error) {
	unique := dedupe(logins)

	var firstErr error
	for _, login := range unique {
		if ctx.Err() != nil {
			return processed, failed, ctx.Err()
		}
		if err := p.processLogin(ctx, snapshotDate, login); err != nil {
			if !errors.Is(err, context.Canceled) {
				p.logger.Error("Failed to process developer", "login", login, "error", err)
			}
			failed++
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		processed++
	}

	if len(unique) > 0 && processed == 0 {
		return processed, failed, fmt.Errorf("all %d developers failed: %w", len(unique), firstErr)
	}
	return processed, failed, nil
}

func (p *DeveloperProcessor) processLogin(ctx context.Context, snapshotDate time.Time, login string) error {
	user, err := p.gh.GetUser(ctx, login)
	if err != nil {
		return err
	}

	dev, err := p.db.UpsertDeveloper(ctx, database.UpsertDeveloperParams{
		GithubID:        user.GithubID,
		Login:           user.Login,
		Name:            textFromPtr(user.Name),
		AvatarUrl:       textFromPtr(user.AvatarURL),
		Bio:             textFromPtr(user.Bio),
		Company:         textFromPtr(user.Company),
		Location:        textFromPtr(user.Location),
		Blog:            textFromPtr(user.Blog),
		Email:           textFromPtr(user.Email),
		TwitterUsername: textFromPtr(user.TwitterUsername),
		Followers:       int32(user.Followers),
		Following:       int32(user.Following),
		PublicRepos:     int32(user.PublicRepos),
		PublicGists:     int32(user.PublicGists),
		DevCreatedAt:    timestamptzFromPtr(user.UserCreatedAt),
	})
	if err != nil {
		return err
	}

	// Aggregates are recomputed from currently-owned repositories every run,
	// never carried over from a prior pass.
	agg, err := p.db.GetRepositoryAggregatesByOwner(ctx, dev.ID)
	if err != nil {
		return err
	}

	// Contribution calendars are not fetched; the activity bonus stays zero.
	const contributions = 0

	impactScore := scoring.ImpactScore(scoring.DeveloperMetrics{
		Followers:     int(dev.Followers),
		ActiveRepos:   int(agg.RepoCount),
		TotalStars:    agg.TotalStars,
		Contributions: contributions,
	})

	err = p.db.UpdateDeveloperAggregates(ctx, database.UpdateDeveloperAggregatesParams{
		ID:            dev.ID,
		TotalStars:    agg.TotalStars,
		ActiveRepos:   int32(agg.RepoCount),
		Contributions: contributions,
		ImpactScore:   impactScore,
	})
	if err != nil {
		return err
	}

	err = p.db.UpsertDeveloperSnapshot(ctx, database.UpsertDeveloperSnapshotParams{
		DeveloperID:  dev.ID,
		SnapshotDate: snapshotDate,
		Followers:    dev.Followers,
		PublicRepos:  dev.PublicRepos,
		TotalStars:   agg.TotalStars,
		ImpactScore:  impactScore,
	})
	if err != nil {
		return err
	}

	p.logger.Debug("Reconciled developer", "login", login, "impact_score", impactScore)
	return nil
}

func dedupe(logins []string) []string {
	seen := make(map[string]struct{}, len(logins))
	var unique []string
	for _, login := range logins {
		if login == "" {
			continue
		}
		if _, ok := seen[login]; ok {
			continue
		}
		seen[login] = struct{}{}
		unique = append(unique, login)
	}
	return unique
}
