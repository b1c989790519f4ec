// internal/database/repositories.go
package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const repositoryColumns = `id, github_id, full_name, name, description, language, homepage, license, topics,
stars, forks, watchers, open_issues, size, score, stars_growth_24h, forks_growth_24h,
has_readme, has_license, is_archived, is_fork, owner_id, pushed_at, repo_created_at, created_at, updated_at`

func scanRepository(row interface{ Scan(dest ...any) error }) (Repository, error) {
	var r Repository
	err := row.Scan(
		&r.ID, &r.GithubID, &r.FullName, &r.Name, &r.Description, &r.Language, &r.Homepage, &r.License, &r.Topics,
		&r.Stars, &r.Forks, &r.Watchers, &r.OpenIssues, &r.Size, &r.Score, &r.StarsGrowth24h, &r.ForksGrowth24h,
		&r.HasReadme, &r.HasLicense, &r.IsArchived, &r.IsFork, &r.OwnerID, &r.PushedAt, &r.RepoCreatedAt, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

const getRepositoryByFullName = `
SELECT ` + repositoryColumns + `
FROM repositories
WHERE full_name = $1`

func (q *Queries) GetRepositoryByFullName(ctx context.Context, fullName string) (Repository, error) {
	return scanRepository(q.db.QueryRow(ctx, getRepositoryByFullName, fullName))
}

type UpsertRepositoryParams struct {
	GithubID       int64
	FullName       string
	Name           string
	Description    pgtype.Text
	Language       pgtype.Text
	Homepage       pgtype.Text
	License        pgtype.Text
	Topics         []string
	Stars          int32
	Forks          int32
	Watchers       int32
	OpenIssues     int32
	Size           int32
	Score          float64
	StarsGrowth24h int32
	ForksGrowth24h int32
	HasReadme      bool
	HasLicense     bool
	IsArchived     bool
	IsFork         bool
	OwnerID        pgtype.Int8
	PushedAt       pgtype.Timestamptz
	RepoCreatedAt  pgtype.Timestamptz
}

const upsertRepository = `
INSERT INTO repositories (
    github_id, full_name, name, description, language, homepage, license, topics,
    stars, forks, watchers, open_issues, size, score, stars_growth_24h, forks_growth_24h,
    has_readme, has_license, is_archived, is_fork, owner_id, pushed_at, repo_created_at
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8,
    $9, $10, $11, $12, $13, $14, $15, $16,
    $17, $18, $19, $20, $21, $22, $23
)
ON CONFLICT (full_name) DO UPDATE SET
    github_id = EXCLUDED.github_id,
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    language = EXCLUDED.language,
    homepage = EXCLUDED.homepage,
    license = EXCLUDED.license,
    topics = EXCLUDED.topics,
    stars = EXCLUDED.stars,
    forks = EXCLUDED.forks,
    watchers = EXCLUDED.watchers,
    open_issues = EXCLUDED.open_issues,
    size = EXCLUDED.size,
    score = EXCLUDED.score,
    stars_growth_24h = EXCLUDED.stars_growth_24h,
    forks_growth_24h = EXCLUDED.forks_growth_24h,
    has_readme = EXCLUDED.has_readme,
    has_license = EXCLUDED.has_license,
    is_archived = EXCLUDED.is_archived,
    is_fork = EXCLUDED.is_fork,
    owner_id = EXCLUDED.owner_id,
    pushed_at = EXCLUDED.pushed_at,
    repo_created_at = EXCLUDED.repo_created_at,
    updated_at = now()
RETURNING ` + repositoryColumns

func (q *Queries) UpsertRepository(ctx context.Context, arg UpsertRepositoryParams) (Repository, error) {
	return scanRepository(q.db.QueryRow(ctx, upsertRepository,
		arg.GithubID, arg.FullName, arg.Name, arg.Description, arg.Language, arg.Homepage, arg.License, arg.Topics,
		arg.Stars, arg.Forks, arg.Watchers, arg.OpenIssues, arg.Size, arg.Score, arg.StarsGrowth24h, arg.ForksGrowth24h,
		arg.HasReadme, arg.HasLicense, arg.IsArchived, arg.IsFork, arg.OwnerID, arg.PushedAt, arg.RepoCreatedAt,
	))
}

type GetRepositoryAggregatesByOwnerRow struct {
	TotalStars int64
	RepoCount  int64
}

const getRepositoryAggregatesByOwner = `
SELECT COALESCE(SUM(stars), 0)::bigint AS total_stars, COUNT(id) AS repo_count
FROM repositories
WHERE owner_id = $1`

func (q *Queries) GetRepositoryAggregatesByOwner(ctx context.Context, ownerID int64) (GetRepositoryAggregatesByOwnerRow, error) {
	var row GetRepositoryAggregatesByOwnerRow
	err := q.db.QueryRow(ctx, getRepositoryAggregatesByOwner, ownerID).Scan(&row.TotalStars, &row.RepoCount)
	return row, err
}

type ListSimilarRepositoryIDsParams struct {
	RepositoryID int64
	Language     pgtype.Text
	Topics       []string
	Limit        int32
}

// Candidates share the language or overlap on topics, ranked by score.
const listSimilarRepositoryIDs = `
SELECT id
FROM repositories
WHERE id <> $1
  AND (($2::text IS NOT NULL AND language = $2) OR (cardinality($3::text[]) > 0 AND topics && $3))
ORDER BY score DESC
LIMIT $4`

func (q *Queries) ListSimilarRepositoryIDs(ctx context.Context, arg ListSimilarRepositoryIDsParams) ([]int64, error) {
	rows, err := q.db.Query(ctx, listSimilarRepositoryIDs, arg.RepositoryID, arg.Language, arg.Topics, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

const listOwnerLogins = `
SELECT DISTINCT d.login
FROM repositories r
JOIN developers d ON d.id = r.owner_id
WHERE r.id = ANY($1::bigint[])
ORDER BY d.login`

func (q *Queries) ListOwnerLogins(ctx context.Context, repositoryIDs []int64) ([]string, error) {
	rows, err := q.db.Query(ctx, listOwnerLogins, repositoryIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logins []string
	for rows.Next() {
		var login string
		if err := rows.Scan(&login); err != nil {
			return nil, err
		}
		logins = append(logins, login)
	}
	return logins, rows.Err()
}
