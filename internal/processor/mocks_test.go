// internal/processor/mocks_test.go
package processor

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gitdiscover-collector/internal/database"
	"gitdiscover-collector/internal/model"
)

// MockQuerier is a mock of the database.Querier interface.
type MockQuerier struct {
	mock.Mock
}

func (m *MockQuerier) GetRepositoryByFullName(ctx context.Context, fullName string) (database.Repository, error) {
	args := m.Called(ctx, fullName)
	return args.Get(0).(database.Repository), args.Error(1)
}
func (m *MockQuerier) UpsertRepository(ctx context.Context, arg database.UpsertRepositoryParams) (database.Repository, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(database.Repository), args.Error(1)
}
func (m *MockQuerier) GetRepositoryAggregatesByOwner(ctx context.Context, ownerID int64) (database.GetRepositoryAggregatesByOwnerRow, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(database.GetRepositoryAggregatesByOwnerRow), args.Error(1)
}
func (m *MockQuerier) ListSimilarRepositoryIDs(ctx context.Context, arg database.ListSimilarRepositoryIDsParams) ([]int64, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).([]int64), args.Error(1)
}
func (m *MockQuerier) ListOwnerLogins(ctx context.Context, repositoryIDs []int64) ([]string, error) {
	args := m.Called(ctx, repositoryIDs)
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockQuerier) UpsertDeveloperRef(ctx context.Context, arg database.UpsertDeveloperRefParams) (database.Developer, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(database.Developer), args.Error(1)
}
func (m *MockQuerier) UpsertDeveloper(ctx context.Context, arg database.UpsertDeveloperParams) (database.Developer, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(database.Developer), args.Error(1)
}
func (m *MockQuerier) UpdateDeveloperAggregates(ctx context.Context, arg database.UpdateDeveloperAggregatesParams) error {
	args := m.Called(ctx, arg)
	return args.Error(0)
}
func (m *MockQuerier) GetRepositorySnapshot(ctx context.Context, arg database.GetRepositorySnapshotParams) (database.RepositorySnapshot, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(database.RepositorySnapshot), args.Error(1)
}
func (m *MockQuerier) UpsertRepositorySnapshot(ctx context.Context, arg database.UpsertRepositorySnapshotParams) error {
	args := m.Called(ctx, arg)
	return args.Error(0)
}
func (m *MockQuerier) ListTopSnapshotsByDate(ctx context.Context, arg database.ListTopSnapshotsByDateParams) ([]database.ListTopSnapshotsByDateRow, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).([]database.ListTopSnapshotsByDateRow), args.Error(1)
}
func (m *MockQuerier) UpsertDeveloperSnapshot(ctx context.Context, arg database.UpsertDeveloperSnapshotParams) error {
	args := m.Called(ctx, arg)
	return args.Error(0)
}
func (m *MockQuerier) AiAnalysisExists(ctx context.Context, arg database.AiAnalysisExistsParams) (bool, error) {
	args := m.Called(ctx, arg)
	return args.Bool(0), args.Error(1)
}
func (m *MockQuerier) CreateAiAnalysis(ctx context.Context, arg database.CreateAiAnalysisParams) error {
	args := m.Called(ctx, arg)
	return args.Error(0)
}
func (m *MockQuerier) CreateSyncLog(ctx context.Context, arg database.CreateSyncLogParams) (database.SyncLog, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(database.SyncLog), args.Error(1)
}
func (m *MockQuerier) CompleteSyncLog(ctx context.Context, arg database.CompleteSyncLogParams) error {
	args := m.Called(ctx, arg)
	return args.Error(0)
}

// MockFetcher is a mock of the DetailFetcher interface.
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) GetRepository(ctx context.Context, owner, name string) (*model.Repository, error) {
	args := m.Called(ctx, owner, name)
	var repo *model.Repository
	if v := args.Get(0); v != nil {
		repo = v.(*model.Repository)
	}
	return repo, args.Error(1)
}

func (m *MockFetcher) GetUser(ctx context.Context, login string) (*model.User, error) {
	args := m.Called(ctx, login)
	var user *model.User
	if v := args.Get(0); v != nil {
		user = v.(*model.User)
	}
	return user, args.Error(1)
}
