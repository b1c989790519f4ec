// internal/database/models.go
package database

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

type Repository struct {
	ID             int64
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
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Developer struct {
	ID              int64
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
	TotalStars      int64
	ActiveRepos     int32
	Contributions   int32
	ImpactScore     float64
	DevCreatedAt    pgtype.Timestamptz
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type RepositorySnapshot struct {
	ID           int64
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
	CreatedAt    time.Time
}

type DeveloperSnapshot struct {
	ID           int64
	DeveloperID  int64
	SnapshotDate time.Time
	Followers    int32
	PublicRepos  int32
	TotalStars   int64
	ImpactScore  float64
	CreatedAt    time.Time
}

type SyncLog struct {
	ID               int64
	SyncType         string
	Status           string
	StartedAt        time.Time
	CompletedAt      pgtype.Timestamptz
	RecordsProcessed int32
	RecordsFailed    int32
	ErrorMessage     pgtype.Text
	CreatedAt        time.Time
}
