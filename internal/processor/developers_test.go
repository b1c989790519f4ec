// internal/processor/developers_test.go
package processor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gitdiscover-collector/internal/database"
	"gitdiscover-collector/internal/model"
)

func userDetail(login string, followers int) *model.User {
	return &model.User{
		GithubID:  101,
		Login:     login,
		Name:      strPtr("Some Body"),
		Followers: followers,
	}
}

func TestDeveloperProcessor_Process(t *testing.T) {
	ctx := context.Background()

	t.Run("enriches profile, recomputes aggregates and writes a snapshot", func(t *testing.T) {
		mockQ := new(MockQuerier)
		mockGH := new(MockFetcher)
		p := NewDeveloperProcessor(mockQ, mockGH, testLogger)

		mockGH.On("GetUser", mock.Anything, "octocat").
			Return(userDetail("octocat", 999), nil).Once()
		mockQ.On("UpsertDeveloper", mock.Anything, mock.MatchedBy(func(arg database.UpsertDeveloperParams) bool {
			return arg.Login == "octocat" && arg.Followers == 999
		})).Return(database.Developer{ID: 11, Login: "octocat", Followers: 999, PublicRepos: 8}, nil).Once()
		mockQ.On("GetRepositoryAggregatesByOwner", mock.Anything, int64(11)).
			Return(database.GetRepositoryAggregatesByOwnerRow{TotalStars: 10000, RepoCount: 4}, nil).Once()
		mockQ.On("UpdateDeveloperAggregates", mock.Anything, mock.MatchedBy(func(arg database.UpdateDeveloperAggregatesParams) bool {
			// log10(1000) + 4*0.5 + log10(10001)*0.3 = 6.20 with zero contributions
			return arg.ID == 11 && arg.TotalStars == 10000 && arg.ActiveRepos == 4 &&
				arg.Contributions == 0 && arg.ImpactScore == 6.2
		})).Return(nil).Once()
		mockQ.On("UpsertDeveloperSnapshot", mock.Anything, mock.MatchedBy(func(arg database.UpsertDeveloperSnapshotParams) bool {
			return arg.DeveloperID == 11 && arg.SnapshotDate.Equal(snapshotDate) &&
				arg.Followers == 999 && arg.TotalStars == 10000 && arg.ImpactScore == 6.2
		})).Return(nil).Once()

		processed, failed, err := p.Process(ctx, snapshotDate, []string{"octocat"})

		require.NoError(t, err)
		assert.Equal(t, 1, processed)
		assert.Zero(t, failed)
		mockQ.AssertExpectations(t)
		mockGH.AssertExpectations(t)
	})

	t.Run("deduplicates logins and drops empty ones", func(t *testing.T) {
		mockQ := new(MockQuerier)
		mockGH := new(MockFetcher)
		p := NewDeveloperProcessor(mockQ, mockGH, testLogger)

		mockGH.On("GetUser", mock.Anything, "octocat").
			Return(userDetail("octocat", 10), nil).Once()
		mockQ.On("UpsertDeveloper", mock.Anything, mock.Anything).
			Return(database.Developer{ID: 11}, nil).Once()
		mockQ.On("GetRepositoryAggregatesByOwner", mock.Anything, mock.Anything).
			Return(database.GetRepositoryAggregatesByOwnerRow{}, nil).Once()
		mockQ.On("UpdateDeveloperAggregates", mock.Anything, mock.Anything).Return(nil).Once()
		mockQ.On("UpsertDeveloperSnapshot", mock.Anything, mock.Anything).Return(nil).Once()

		processed, failed, err := p.Process(ctx, snapshotDate, []string{"octocat", "", "octocat"})

		require.NoError(t, err)
		assert.Equal(t, 1, processed)
		assert.Zero(t, failed)
		mockGH.AssertNumberOfCalls(t, "GetUser", 1)
	})

	t.Run("one failing login does not abort the pass", func(t *testing.T) {
		mockQ := new(MockQuerier)
		mockGH := new(MockFetcher)
		p := NewDeveloperProcessor(mockQ, mockGH, testLogger)

		mockGH.On("GetUser", mock.Anything, "gone").
			Return(nil, errors.New("404")).Once()
		mockGH.On("GetUser", mock.Anything, "octocat").
			Return(userDetail("octocat", 10), nil).Once()
		mockQ.On("UpsertDeveloper", mock.Anything, mock.Anything).
			Return(database.Developer{ID: 11}, nil).Once()
		mockQ.On("GetRepositoryAggregatesByOwner", mock.Anything, mock.Anything).
			Return(database.GetRepositoryAggregatesByOwnerRow{}, nil).Once()
		mockQ.On("UpdateDeveloperAggregates", mock.Anything, mock.Anything).Return(nil).Once()
		mockQ.On("UpsertDeveloperSnapshot", mock.Anything, mock.Anything).Return(nil).Once()

		processed, failed, err := p.Process(ctx, snapshotDate, []string{"gone", "octocat"})

		require.NoError(t, err)
		assert.Equal(t, 1, processed)
		assert.Equal(t, 1, failed)
	})

	t.Run("fails when every login fails", func(t *testing.T) {
		mockQ := new(MockQuerier)
		mockGH := new(MockFetcher)
		p := NewDeveloperProcessor(mockQ, mockGH, testLogger)

		mockGH.On("GetUser", mock.Anything, mock.Anything).
			Return(nil, errors.New("rate limited"))

		processed, failed, err := p.Process(ctx, snapshotDate, []string{"a", "b"})

		require.Error(t, err)
		assert.Zero(t, processed)
		assert.Equal(t, 2, failed)
	})
}
