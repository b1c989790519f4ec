// internal/jobs/mocks_test.go
package jobs

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"gitdiscover-collector/internal/ai"
	"gitdiscover-collector/internal/database"
	"gitdiscover-collector/internal/model"
	"gitdiscover-collector/internal/processor"
	"gitdiscover-collector/internal/trending"
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

// MockTrendingFetcher is a mock of the trending.Fetcher interface.
type MockTrendingFetcher struct {
	mock.Mock
}

func (m *MockTrendingFetcher) FetchTrending(ctx context.Context, window trending.Window, languageSlug string) ([]model.TrendingRepo, error) {
	args := m.Called(ctx, window, languageSlug)
	var items []model.TrendingRepo
	if v := args.Get(0); v != nil {
		items = v.([]model.TrendingRepo)
	}
	return items, args.Error(1)
}

// MockRepositoryProcessor is a mock of the repositoryProcessor interface.
type MockRepositoryProcessor struct {
	mock.Mock
}

func (m *MockRepositoryProcessor) Process(ctx context.Context, snapshotDate time.Time, candidates []model.TrendingRepo) (processor.BatchResult, error) {
	args := m.Called(ctx, snapshotDate, candidates)
	return args.Get(0).(processor.BatchResult), args.Error(1)
}

// MockDeveloperProcessor is a mock of the developerProcessor interface.
type MockDeveloperProcessor struct {
	mock.Mock
}

func (m *MockDeveloperProcessor) Process(ctx context.Context, snapshotDate time.Time, logins []string) (int, int, error) {
	args := m.Called(ctx, snapshotDate, logins)
	return args.Int(0), args.Int(1), args.Error(2)
}

// MockAnalyzer is a mock of the Analyzer interface.
type MockAnalyzer struct {
	mock.Mock
}

func (m *MockAnalyzer) Analyze(ctx context.Context, rc ai.RepoContext) (*model.Analysis, error) {
	args := m.Called(ctx, rc)
	var analysis *model.Analysis
	if v := args.Get(0); v != nil {
		analysis = v.(*model.Analysis)
	}
	return analysis, args.Error(1)
}
