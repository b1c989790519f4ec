// internal/jobs/ai.go
package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"gitdiscover-collector/internal/ai"
	"gitdiscover-collector/internal/database"
	"gitdiscover-collector/internal/model"
)

const (
	// Top scored snapshots considered for analysis each day.
	aiTopN = 10

	// How many similar-repository candidates to fetch and keep.
	similarCandidates = 20
	similarKept       = 5
)

// Analyzer is the generative-text capability the job depends on.
type Analyzer interface {
	Analyze(ctx context.Context, rc ai.RepoContext) (*model.Analysis, error)
}

// AIJob enriches the day's top repositories with generated analyses. It is
// idempotent per (repository, day): an existing analysis row is never
// regenerated or overwritten.
type AIJob struct {
	db       database.Querier
	analyzer Analyzer
	logger   *slog.Logger
}

// NewAIJob creates an AIJob. A nil analyzer means the credential is absent
// and every run reports itself as skipped.
func NewAIJob(db database.Querier, analyzer Analyzer, logger *slog.Logger) *AIJob {
	return &AIJob{
		db:       db,
		analyzer: analyzer,
		logger:   logger,
	}
}

// Run analyzes the top snapshots of the given date that lack an analysis.
func (j *AIJob) Run(ctx context.Context, snapshotDate time.Time) (Outcome, error) {
	if j.analyzer == nil {
		j.logger.Warn("OPENAI_API_KEY not set; skipping AI analysis")
		return Outcome{Skipped: true}, nil
	}

	top, err := j.db.ListTopSnapshotsByDate(ctx, database.ListTopSnapshotsByDateParams{
		SnapshotDate: snapshotDate,
		Limit:        aiTopN,
	})
	if err != nil {
		return Outcome{}, err
	}

	var processed, failed, attempted int
	var firstErr error
	for _, row := range top {
		if ctx.Err() != nil {
			return Outcome{Processed: processed, Failed: failed}, ctx.Err()
		}

		exists, err := j.db.AiAnalysisExists(ctx, database.AiAnalysisExistsParams{
			RepositoryID: row.RepositoryID,
			AnalysisDate: snapshotDate,
		})
		if err != nil {
			return Outcome{Processed: processed, Failed: failed}, err
		}
		if exists {
			continue
		}
		attempted++

		if err := j.analyzeOne(ctx, snapshotDate, row); err != nil {
			if !errors.Is(err, context.Canceled) {
				j.logger.Error("Failed to analyze repository", "repo", row.FullName, "error", err)
			}
			failed++
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		processed++
	}

	if attempted > 0 && processed == 0 {
		return Outcome{Failed: failed}, fmt.Errorf("all %d analyses failed: %w", attempted, firstErr)
	}
	j.logger.Info("AI job complete", "analyzed", processed, "failed", failed, "already_present", len(top)-attempted)
	return Outcome{Processed: processed, Failed: failed}, nil
}

func (j *AIJob) analyzeOne(ctx context.Context, snapshotDate time.Time, row database.ListTopSnapshotsByDateRow) error {
	analysis, err := j.analyzer.Analyze(ctx, ai.RepoContext{
		FullName:       row.FullName,
		Description:    textPtr(row.Description),
		Language:       textPtr(row.Language),
		Topics:         row.Topics,
		Stars:          int(row.Stars),
		Forks:          int(row.Forks),
		StarsGrowth24h: int(row.StarsGrowth),
		ForksGrowth24h: int(row.ForksGrowth),
		Score:          row.Score,
	})
	if err != nil {
		return err
	}

	similar, err := j.db.ListSimilarRepositoryIDs(ctx, database.ListSimilarRepositoryIDsParams{
		RepositoryID: row.RepositoryID,
		Language:     row.Language,
		Topics:       row.Topics,
		Limit:        similarCandidates,
	})
	if err != nil {
		return err
	}
	if len(similar) > similarKept {
		similar = similar[:similarKept]
	}

	return j.db.CreateAiAnalysis(ctx, database.CreateAiAnalysisParams{
		RepositoryID:   row.RepositoryID,
		AnalysisDate:   snapshotDate,
		Summary:        analysis.Summary,
		Highlights:     analysis.Highlights,
		UseCases:       analysis.UseCases,
		TechStack:      analysis.TechStack,
		CodeQuality:    analysis.CodeQuality,
		SimilarRepos:   similar,
		TargetAudience: textFromPtr(analysis.TargetAudience),
		ModelVersion:   pgtype.Text{String: analysis.ModelVersion, Valid: analysis.ModelVersion != ""},
		TokensUsed:     int32(analysis.TokensUsed),
	})
}

func textPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	return &t.String
}

func textFromPtr(s *string) pgtype.Text {
	if s == nil || *s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}
