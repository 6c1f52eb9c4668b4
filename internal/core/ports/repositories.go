package ports

import (
	"context"

	"escrow-relay/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// SecretRepository persists encrypted secrets. Every method runs inside the
// caller's transaction.
type SecretRepository interface {
	EnsureSchema(ctx context.Context, tx pgx.Tx) error
	ListByOwner(ctx context.Context, tx pgx.Tx, owner string) ([]domain.SecretRecord, error)
	Upsert(ctx context.Context, tx pgx.Tx, record *domain.SecretRecord) error
	Delete(ctx context.Context, tx pgx.Tx, owner, itemID string) error
	DeleteByOwner(ctx context.Context, tx pgx.Tx, owner string) error
	CountByOwner(ctx context.Context, tx pgx.Tx, owner string) (int, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
