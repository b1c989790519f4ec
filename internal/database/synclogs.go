// internal/database/synclogs.go
package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

const syncLogColumns = `id, sync_type, status, started_at, completed_at, records_processed, records_failed, error_message, created_at`

type CreateSyncLogParams struct {
	SyncType  string
	Status    string
	StartedAt time.Time
}

const createSyncLog = `
INSERT INTO sync_logs (sync_type, status, started_at)
VALUES ($1, $2, $3)
RETURNING ` + syncLogColumns

func (q *Queries) CreateSyncLog(ctx context.Context, arg CreateSyncLogParams) (SyncLog, error) {
	var l SyncLog
	err := q.db.QueryRow(ctx, createSyncLog, arg.SyncType, arg.Status, arg.StartedAt).Scan(
		&l.ID, &l.SyncType, &l.Status, &l.StartedAt, &l.CompletedAt,
		&l.RecordsProcessed, &l.RecordsFailed, &l.ErrorMessage, &l.CreatedAt,
	)
	return l, err
}

type CompleteSyncLogParams struct {
	ID               int64
	Status           string
	RecordsProcessed int32
	RecordsFailed    int32
	CompletedAt      time.Time
	ErrorMessage     pgtype.Text
}

// A sync log transitions from running to exactly one terminal state.
const completeSyncLog = `
UPDATE sync_logs
SET status = $2,
    records_processed = $3,
    records_failed = $4,
    completed_at = $5,
    error_message = $6
WHERE id = $1 AND status = 'running'`

func (q *Queries) CompleteSyncLog(ctx context.Context, arg CompleteSyncLogParams) error {
	_, err := q.db.Exec(ctx, completeSyncLog,
		arg.ID, arg.Status, arg.RecordsProcessed, arg.RecordsFailed, arg.CompletedAt, arg.ErrorMessage,
	)
	return err
}
