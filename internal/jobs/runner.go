// internal/jobs/runner.go
package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"gitdiscover-collector/internal/database"
)

// Sync log states. A row moves from running to exactly one terminal state.
const (
	StatusRunning = "running"
	StatusSuccess = "success"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// Outcome is what a job body reports back to the runner.
type Outcome struct {
	Processed int
	Failed    int
	Skipped   bool
}

// JobFunc is a job body executed under the runner's lifecycle bookkeeping.
type JobFunc func(ctx context.Context) (Outcome, error)

// Runner wraps every job invocation: it opens a running SyncLog row before
// any work starts, closes it exactly once with the terminal state, updates
// the status tracker, and re-raises the job's error to the caller.
type Runner struct {
	db      database.Querier
	tracker *StatusTracker
	logger  *slog.Logger
	now     func() time.Time
}

// NewRunner creates a Runner.
func NewRunner(db database.Querier, tracker *StatusTracker, logger *slog.Logger) *Runner {
	return &Runner{
		db:      db,
		tracker: tracker,
		logger:  logger,
		now:     time.Now,
	}
}

// Run executes one job invocation.
func (r *Runner) Run(ctx context.Context, job JobType, fn JobFunc) error {
	startedAt := r.now()
	r.tracker.RecordStart(job, startedAt)

	logRow, err := r.db.CreateSyncLog(ctx, database.CreateSyncLogParams{
		SyncType:  string(job),
		Status:    StatusRunning,
		StartedAt: startedAt,
	})
	if err != nil {
		r.tracker.RecordFailure(job, err)
		return err
	}

	outcome, runErr := fn(ctx)
	completedAt := r.now()

	if runErr != nil {
		failed := int32(outcome.Failed)
		if failed == 0 {
			failed = 1
		}
		complete := database.CompleteSyncLogParams{
			ID:               logRow.ID,
			Status:           StatusFailed,
			RecordsProcessed: int32(outcome.Processed),
			RecordsFailed:    failed,
			CompletedAt:      completedAt,
			ErrorMessage:     pgtype.Text{String: runErr.Error(), Valid: true},
		}
		if err := r.db.CompleteSyncLog(ctx, complete); err != nil {
			r.logger.Error("Failed to record job failure", "job", job, "error", err)
		}
		r.tracker.RecordFailure(job, runErr)
		r.logger.Error("Job failed", "job", job, "error", runErr)
		return runErr
	}

	status := StatusSuccess
	if outcome.Skipped {
		status = StatusSkipped
	}
	err = r.db.CompleteSyncLog(ctx, database.CompleteSyncLogParams{
		ID:               logRow.ID,
		Status:           status,
		RecordsProcessed: int32(outcome.Processed),
		RecordsFailed:    int32(outcome.Failed),
		CompletedAt:      completedAt,
	})
	if err != nil {
		r.logger.Error("Failed to record job completion", "job", job, "error", err)
	}

	r.tracker.RecordSuccess(job, completedAt)
	r.logger.Info("Job finished", "job", job, "status", status,
		"processed", outcome.Processed, "failed", outcome.Failed)
	return nil
}
