// internal/database/snapshots.go
package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

type GetRepositorySnapshotParams struct {
	RepositoryID int64
	SnapshotDate time.Time
}

const getRepositorySnapshot = `
SELECT id, repository_id, snapshot_date, stars, forks, watchers, open_issues,
       stars_growth, forks_growth, score, rank, created_at
FROM repository_snapshots
WHERE repository_id = $1 AND snapshot_date = $2`

func (q *Queries) GetRepositorySnapshot(ctx context.Context, arg GetRepositorySnapshotParams) (RepositorySnapshot, error) {
	var s RepositorySnapshot
	err := q.db.QueryRow(ctx, getRepositorySnapshot, arg.RepositoryID, arg.SnapshotDate).Scan(
		&s.ID, &s.RepositoryID, &s.SnapshotDate, &s.Stars, &s.Forks, &s.Watchers, &s.OpenIssues,
		&s.StarsGrowth, &s.ForksGrowth, &s.Score, &s.Rank, &s.CreatedAt,
	)
	return s, err
}

type UpsertRepositorySnapshotParams struct {
	RepositoryID int64
	SnapshotDate time.Time
	Stars        int32
	Forks        int32
	Watchers     int32
	OpenIssues   int32
	StarsGrowth  int32
	ForksGrowth  int32
	Score        float64
	Rank         int32
}

// Re-running the same day overwrites the existing row; exactly one snapshot
// exists per (repository, date).
const upsertRepositorySnapshot = `
INSERT INTO repository_snapshots (
    repository_id, snapshot_date, stars, forks, watchers, open_issues,
    stars_growth, forks_growth, score, rank
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (repository_id, snapshot_date) DO UPDATE SET
    stars = EXCLUDED.stars,
    forks = EXCLUDED.forks,
    watchers = EXCLUDED.watchers,
    open_issues = EXCLUDED.open_issues,
    stars_growth = EXCLUDED.stars_growth,
    forks_growth = EXCLUDED.forks_growth,
    score = EXCLUDED.score,
    rank = EXCLUDED.rank`

func (q *Queries) UpsertRepositorySnapshot(ctx context.Context, arg UpsertRepositorySnapshotParams) error {
	_, err := q.db.Exec(ctx, upsertRepositorySnapshot,
		arg.RepositoryID, arg.SnapshotDate, arg.Stars, arg.Forks, arg.Watchers, arg.OpenIssues,
		arg.StarsGrowth, arg.ForksGrowth, arg.Score, arg.Rank,
	)
	return err
}

type ListTopSnapshotsByDateParams struct {
	SnapshotDate time.Time
	Limit        int32
}

// ListTopSnapshotsByDateRow joins the repository fields the AI job needs to
// build its context payload.
type ListTopSnapshotsByDateRow struct {
	RepositoryID int64
	Score        float64
	FullName     string
	Description  pgtype.Text
	Language     pgtype.Text
	Topics       []string
	Stars        int32
	Forks        int32
	StarsGrowth  int32
	ForksGrowth  int32
}

const listTopSnapshotsByDate = `
SELECT s.repository_id, s.score, r.full_name, r.description, r.language, r.topics,
       s.stars, s.forks, s.stars_growth, s.forks_growth
FROM repository_snapshots s
JOIN repositories r ON r.id = s.repository_id
WHERE s.snapshot_date = $1
ORDER BY s.score DESC
LIMIT $2`

func (q *Queries) ListTopSnapshotsByDate(ctx context.Context, arg ListTopSnapshotsByDateParams) ([]ListTopSnapshotsByDateRow, error) {
	rows, err := q.db.Query(ctx, listTopSnapshotsByDate, arg.SnapshotDate, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ListTopSnapshotsByDateRow
	for rows.Next() {
		var r ListTopSnapshotsByDateRow
		if err := rows.Scan(
			&r.RepositoryID, &r.Score, &r.FullName, &r.Description, &r.Language, &r.Topics,
			&r.Stars, &r.Forks, &r.StarsGrowth, &r.ForksGrowth,
		); err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

type UpsertDeveloperSnapshotParams struct {
	DeveloperID  int64
	SnapshotDate time.Time
	Followers    int32
	PublicRepos  int32
	TotalStars   int64
	ImpactScore  float64
}

const upsertDeveloperSnapshot = `
INSERT INTO developer_snapshots (developer_id, snapshot_date, followers, public_repos, total_stars, impact_score)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (developer_id, snapshot_date) DO UPDATE SET
    followers = EXCLUDED.followers,
    public_repos = EXCLUDED.public_repos,
    total_stars = EXCLUDED.total_stars,
    impact_score = EXCLUDED.impact_score`

func (q *Queries) UpsertDeveloperSnapshot(ctx context.Context, arg UpsertDeveloperSnapshotParams) error {
	_, err := q.db.Exec(ctx, upsertDeveloperSnapshot,
		arg.DeveloperID, arg.SnapshotDate, arg.Followers, arg.PublicRepos, arg.TotalStars, arg.ImpactScore,
	)
	return err
}
