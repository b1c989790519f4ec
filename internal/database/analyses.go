// internal/database/analyses.go
package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

type AiAnalysisExistsParams struct {
	RepositoryID int64
	AnalysisDate time.Time
}

const aiAnalysisExists = `
SELECT EXISTS (
    SELECT 1 FROM ai_analyses WHERE repository_id = $1 AND analysis_date = $2
)`

func (q *Queries) AiAnalysisExists(ctx context.Context, arg AiAnalysisExistsParams) (bool, error) {
	var exists bool
	err := q.db.QueryRow(ctx, aiAnalysisExists, arg.RepositoryID, arg.AnalysisDate).Scan(&exists)
	return exists, err
}

type CreateAiAnalysisParams struct {
	RepositoryID   int64
	AnalysisDate   time.Time
	Summary        string
	Highlights     []string
	UseCases       []string
	TechStack      []byte
	CodeQuality    []byte
	SimilarRepos   []int64
	TargetAudience pgtype.Text
	ModelVersion   pgtype.Text
	TokensUsed     int32
}

// Write-once per (repository, date): the conflict clause deliberately does
// nothing so a later run of the same day never overwrites an analysis.
const createAiAnalysis = `
INSERT INTO ai_analyses (
    repository_id, analysis_date, summary, highlights, use_cases,
    tech_stack, code_quality, similar_repos, target_audience, model_version, tokens_used
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (repository_id, analysis_date) DO NOTHING`

func (q *Queries) CreateAiAnalysis(ctx context.Context, arg CreateAiAnalysisParams) error {
	_, err := q.db.Exec(ctx, createAiAnalysis,
		arg.RepositoryID, arg.AnalysisDate, arg.Summary, arg.Highlights, arg.UseCases,
		arg.TechStack, arg.CodeQuality, arg.SimilarRepos, arg.TargetAudience, arg.ModelVersion, arg.TokensUsed,
	)
	return err
}
