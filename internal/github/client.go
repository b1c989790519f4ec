// internal/github/client.go
package github

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	"gitdiscover-collector/internal/model"
)

const clientTimeout = 30 * time.Second

// Client is a wrapper around the go-github client.
type Client struct {
	gh     *github.Client
	logger *slog.Logger
}

// NewClient creates and configures a new Client instance. An empty token
// falls back to unauthenticated requests at the lower rate limit.
func NewClient(token string, logger *slog.Logger) *Client {
	httpClient := &http.Client{Timeout: clientTimeout}
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		httpClient = oauth2.NewClient(context.Background(), ts)
		httpClient.Timeout = clientTimeout
	}

	return &Client{
		gh:     github.NewClient(httpClient),
		logger: logger,
	}
}

// OverrideBaseURL points the client at a different API host. Tests use it to
// swap in a local stand-in for the public API.
func (c *Client) OverrideBaseURL(url string) error {
	gh, err := c.gh.WithEnterpriseURLs(url, url)
	if err != nil {
		return err
	}
	c.gh = gh
	return nil
}

// GetRepository fetches repository details and translates them to our internal model.
func (c *Client) GetRepository(ctx context.Context, owner, name string) (*model.Repository, error) {
	repo, _, err := c.gh.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, err
	}
	return toInternalRepository(repo), nil
}

// GetUser fetches user details and translates them to our internal model.
func (c *Client) GetUser(ctx context.Context, login string) (*model.User, error) {
	user, _, err := c.gh.Users.Get(ctx, login)
	if err != nil {
		return nil, err
	}
	return toInternalUser(user), nil
}

// toInternalRepository translates a github.Repository object to our internal model.Repository.
func toInternalRepository(r *github.Repository) *model.Repository {
	repo := &model.Repository{
		GithubID:    r.GetID(),
		FullName:    r.GetFullName(),
		Name:        r.GetName(),
		Description: r.Description,
		Language:    r.Language,
		Homepage:    r.Homepage,
		Topics:      r.Topics,
		Stars:       r.GetStargazersCount(),
		Forks:       r.GetForksCount(),
		Watchers:    r.GetWatchersCount(),
		OpenIssues:  r.GetOpenIssuesCount(),
		Size:        r.GetSize(),
		IsArchived:  r.GetArchived(),
		IsFork:      r.GetFork(),
	}

	if lic := r.GetLicense(); lic != nil {
		repo.HasLicense = true
		name := lic.GetSPDXID()
		if name == "" {
			name = lic.GetName()
		}
		if name != "" {
			repo.License = &name
		}
	}

	if o := r.GetOwner(); o != nil && o.GetLogin() != "" {
		repo.Owner = &model.Owner{
			GithubID:  o.GetID(),
			Login:     o.GetLogin(),
			AvatarURL: o.AvatarURL,
		}
	}

	if !r.GetPushedAt().IsZero() {
		t := r.GetPushedAt().Time
		repo.PushedAt = &t
	}
	if !r.GetCreatedAt().IsZero() {
		t := r.GetCreatedAt().Time
		repo.RepoCreatedAt = &t
	}

	return repo
}

// toInternalUser translates a github.User object to our internal model.User.
func toInternalUser(u *github.User) *model.User {
	user := &model.User{
		GithubID:        u.GetID(),
		Login:           u.GetLogin(),
		Name:            u.Name,
		AvatarURL:       u.AvatarURL,
		Bio:             u.Bio,
		Company:         u.Company,
		Location:        u.Location,
		Blog:            u.Blog,
		Email:           u.Email,
		TwitterUsername: u.TwitterUsername,
		Followers:       u.GetFollowers(),
		Following:       u.GetFollowing(),
		PublicRepos:     u.GetPublicRepos(),
		PublicGists:     u.GetPublicGists(),
	}

	if !u.GetCreatedAt().IsZero() {
		t := u.GetCreatedAt().Time
		user.UserCreatedAt = &t
	}

	return user
}
