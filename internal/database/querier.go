// internal/database/querier.go
package database

import "context"

// Querier is the query surface the rest of the collector depends on.
// Keeping it an interface lets callers swap in a mock for tests.
type Querier interface {
	GetRepositoryByFullName(ctx context.Context, fullName string) (Repository, error)
	UpsertRepository(ctx context.Context, arg UpsertRepositoryParams) (Repository, error)
	GetRepositoryAggregatesByOwner(ctx context.Context, ownerID int64) (GetRepositoryAggregatesByOwnerRow, error)
	ListSimilarRepositoryIDs(ctx context.Context, arg ListSimilarRepositoryIDsParams) ([]int64, error)
	ListOwnerLogins(ctx context.Context, repositoryIDs []int64) ([]string, error)

	UpsertDeveloperRef(ctx context.Context, arg UpsertDeveloperRefParams) (Developer, error)
	UpsertDeveloper(ctx context.Context, arg UpsertDeveloperParams) (Developer, error)
	UpdateDeveloperAggregates(ctx context.Context, arg UpdateDeveloperAggregatesParams) error

	GetRepositorySnapshot(ctx context.Context, arg GetRepositorySnapshotParams) (RepositorySnapshot, error)
	UpsertRepositorySnapshot(ctx context.Context, arg UpsertRepositorySnapshotParams) error
	ListTopSnapshotsByDate(ctx context.Context, arg ListTopSnapshotsByDateParams) ([]ListTopSnapshotsByDateRow, error)
	UpsertDeveloperSnapshot(ctx context.Context, arg UpsertDeveloperSnapshotParams) error

	AiAnalysisExists(ctx context.Context, arg AiAnalysisExistsParams) (bool, error)
	CreateAiAnalysis(ctx context.Context, arg CreateAiAnalysisParams) error

	CreateSyncLog(ctx context.Context, arg CreateSyncLogParams) (SyncLog, error)
	CompleteSyncLog(ctx context.Context, arg CompleteSyncLogParams) error
}

var _ Querier = (*Queries)(nil)
