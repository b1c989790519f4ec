// internal/model/models.go
package model

import (
	"encoding/json"
	"time"
)

// TrendingRepo is one candidate parsed from the trending page. Counts are
// pointers because the page does not always render them.
type TrendingRepo struct {
	FullName     string
	Description  *string
	Language     *string
	StarsTotal   *int
	ForksTotal   *int
	StarsInWindow *int
}

// Owner is the minimal developer reference embedded in a repository detail.
type Owner struct {
	GithubID  int64
	Login     string
	AvatarURL *string
}

// Repository represents the authoritative metadata of a GitHub repository.
type Repository struct {
	GithubID      int64
	FullName      string
	Name          string
	Owner         *Owner
	Description   *string
	Language      *string
	Homepage      *string
	Topics        []string
	License       *string
	HasLicense    bool
	Stars         int
	Forks         int
	Watchers      int
	OpenIssues    int
	Size          int
	IsArchived    bool
	IsFork        bool
	PushedAt      *time.Time
	RepoCreatedAt *time.Time
}

// User represents the authoritative profile of a GitHub user.
type User struct {
	GithubID        int64
	Login           string
	Name            *string
	AvatarURL       *string
	Bio             *string
	Company         *string
	Location        *string
	Blog            *string
	Email           *string
	TwitterUsername *string
	Followers       int
	Following       int
	PublicRepos     int
	PublicGists     int
	UserCreatedAt   *time.Time
}

// Analysis is a validated generative-model analysis of one repository.
// TechStack and CodeQuality are model-shaped JSON objects; their structure
// is not contractually fixed, so they stay opaque.
type Analysis struct {
	Summary        string
	Highlights     []string
	UseCases       []string
	TechStack      json.RawMessage
	CodeQuality    json.RawMessage
	TargetAudience *string
	ModelVersion   string
	TokensUsed     int
}
