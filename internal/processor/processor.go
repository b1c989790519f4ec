// internal/processor/processor.go

// Package processor reconciles trending candidates and their owners against
// persisted state, computing growth deltas and scores along the way.
package processor

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	custom_errors "gitdiscover-collector/internal/errors"
	"gitdiscover-collector/internal/model"
)

// DetailFetcher is the authoritative-API capability the processors depend on.
type DetailFetcher interface {
	GetRepository(ctx context.Context, owner, name string) (*model.Repository, error)
	GetUser(ctx context.Context, login string) (*model.User, error)
}

func splitFullName(fullName string) (owner, name string, err error) {
	parts := strings.Split(fullName, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", &custom_errors.ErrInvalidRepoFormat{Repo: fullName}
	}
	return parts[0], parts[1], nil
}

func textFromPtr(s *string) pgtype.Text {
	if s == nil || *s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func timestamptzFromPtr(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: *t, Valid: true}
}
