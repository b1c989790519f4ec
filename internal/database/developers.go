// internal/database/developers.go
package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const developerColumns = `id, github_id, login, name, avatar_url, bio, company, location, blog, email, twitter_username,
followers, following, public_repos, public_gists, total_stars, active_repos, contributions, impact_score,
dev_created_at, created_at, updated_at`

func scanDeveloper(row interface{ Scan(dest ...any) error }) (Developer, error) {
	var d Developer
	err := row.Scan(
		&d.ID, &d.GithubID, &d.Login, &d.Name, &d.AvatarUrl, &d.Bio, &d.Company, &d.Location, &d.Blog, &d.Email, &d.TwitterUsername,
		&d.Followers, &d.Following, &d.PublicRepos, &d.PublicGists, &d.TotalStars, &d.ActiveRepos, &d.Contributions, &d.ImpactScore,
		&d.DevCreatedAt, &d.CreatedAt, &d.UpdatedAt,
	)
	return d, err
}

type UpsertDeveloperRefParams struct {
	GithubID  int64
	Login     string
	AvatarUrl pgtype.Text
}

// UpsertDeveloperRef creates or refreshes the minimal developer row a
// repository needs as its owner reference. Profile enrichment happens later
// in the developer processor and must not be clobbered here.
const upsertDeveloperRef = `
INSERT INTO developers (github_id, login, avatar_url)
VALUES ($1, $2, $3)
ON CONFLICT (login) DO UPDATE SET
    github_id = EXCLUDED.github_id,
    avatar_url = EXCLUDED.avatar_url,
    updated_at = now()
RETURNING ` + developerColumns

func (q *Queries) UpsertDeveloperRef(ctx context.Context, arg UpsertDeveloperRefParams) (Developer, error) {
	return scanDeveloper(q.db.QueryRow(ctx, upsertDeveloperRef, arg.GithubID, arg.Login, arg.AvatarUrl))
}

type UpsertDeveloperParams struct {
	GithubID        int64
	Login           string
	Name            pgtype.Text
	AvatarUrl       pgtype.Text
	Bio             pgtype.Text
	Company         pgtype.Text
	Location        pgtype.Text
	Blog            pgtype.Text
	Email           pgtype.Text
	TwitterUsername pgtype.Text
	Followers       int32
	Following       int32
	PublicRepos     int32
	PublicGists     int32
	DevCreatedAt    pgtype.Timestamptz
}

const upsertDeveloper = `
INSERT INTO developers (
    github_id, login, name, avatar_url, bio, company, location, blog, email, twitter_username,
    followers, following, public_repos, public_gists, dev_created_at
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
    $11, $12, $13, $14, $15
)
ON CONFLICT (login) DO UPDATE SET
    github_id = EXCLUDED.github_id,
    name = EXCLUDED.name,
    avatar_url = EXCLUDED.avatar_url,
    bio = EXCLUDED.bio,
    company = EXCLUDED.company,
    location = EXCLUDED.location,
    blog = EXCLUDED.blog,
    email = EXCLUDED.email,
    twitter_username = EXCLUDED.twitter_username,
    followers = EXCLUDED.followers,
    following = EXCLUDED.following,
    public_repos = EXCLUDED.public_repos,
    public_gists = EXCLUDED.public_gists,
    dev_created_at = EXCLUDED.dev_created_at,
    updated_at = now()
RETURNING ` + developerColumns

func (q *Queries) UpsertDeveloper(ctx context.Context, arg UpsertDeveloperParams) (Developer, error) {
	return scanDeveloper(q.db.QueryRow(ctx, upsertDeveloper,
		arg.GithubID, arg.Login, arg.Name, arg.AvatarUrl, arg.Bio, arg.Company, arg.Location, arg.Blog, arg.Email, arg.TwitterUsername,
		arg.Followers, arg.Following, arg.PublicRepos, arg.PublicGists, arg.DevCreatedAt,
	))
}

type UpdateDeveloperAggregatesParams struct {
	ID            int64
	TotalStars    int64
	ActiveRepos   int32
	Contributions int32
	ImpactScore   float64
}

const updateDeveloperAggregates = `
UPDATE developers
SET total_stars = $2,
    active_repos = $3,
    contributions = $4,
    impact_score = $5,
    updated_at = now()
WHERE id = $1`

func (q *Queries) UpdateDeveloperAggregates(ctx context.Context, arg UpdateDeveloperAggregatesParams) error {
	_, err := q.db.Exec(ctx, updateDeveloperAggregates, arg.ID, arg.TotalStars, arg.ActiveRepos, arg.Contributions, arg.ImpactScore)
	return err
}
