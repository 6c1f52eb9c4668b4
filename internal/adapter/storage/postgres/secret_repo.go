package postgres

import (
	"context"
	"fmt"

	"escrow-relay/config"
	"escrow-relay/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

const secretColumns = `owner_id, item_id, ciphertext, iv, auth_tag,
		wrapped_key, wrapped_key_iv, wrapped_key_tag, key_version, created_at, updated_at`

// SecretRepo implements ports.SecretRepository against a configurable table.
type SecretRepo struct {
	table string
}

// NewSecretRepo rejects table names that are not plain lowercase identifiers.
func NewSecretRepo(table string) (*SecretRepo, error) {
	if !config.IsSafeIdentifier(table) {
		return nil, fmt.Errorf("unsafe secret table name %q", table)
	}
	return &SecretRepo{table: table}, nil
}

func (r *SecretRepo) EnsureSchema(ctx context.Context, tx pgx.Tx) error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %[1]s (
		owner_id        TEXT        NOT NULL,
		item_id         TEXT        NOT NULL,
		ciphertext      BYTEA       NOT NULL,
		iv              BYTEA       NOT NULL,
		auth_tag        BYTEA       NOT NULL,
		wrapped_key     BYTEA       NOT NULL,
		wrapped_key_iv  BYTEA       NOT NULL,
		wrapped_key_tag BYTEA       NOT NULL,
		key_version     TEXT        NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (owner_id, item_id)
	)`, r.table)
	if _, err := tx.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("create %s: %w", r.table, err)
	}

	index := fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%[1]s_owner ON %[1]s (owner_id)`, r.table)
	if _, err := tx.Exec(ctx, index); err != nil {
		return fmt.Errorf("create %s owner index: %w", r.table, err)
	}
	return nil
}

func (r *SecretRepo) ListByOwner(ctx context.Context, tx pgx.Tx, owner string) ([]domain.SecretRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE owner_id = $1 ORDER BY item_id`, secretColumns, r.table)

	rows, err := tx.Query(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("list secrets: %w", err)
	}
	defer rows.Close()

	var records []domain.SecretRecord
	for rows.Next() {
		var rec domain.SecretRecord
		p := &rec.Payload
		if err := rows.Scan(
			&rec.OwnerID, &rec.ItemID, &p.Ciphertext, &p.IV, &p.AuthTag,
			&p.WrappedKey.Ciphertext, &p.WrappedKey.IV, &p.WrappedKey.AuthTag,
			&p.KeyVersion, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan secret: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate secrets: %w", err)
	}
	return records, nil
}

// Upsert replaces the row for (owner, item) in place, keeping created_at.
func (r *SecretRepo) Upsert(ctx context.Context, tx pgx.Tx, rec *domain.SecretRecord) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (owner_id, item_id) DO UPDATE SET
			ciphertext = EXCLUDED.ciphertext,
			iv = EXCLUDED.iv,
			auth_tag = EXCLUDED.auth_tag,
			wrapped_key = EXCLUDED.wrapped_key,
			wrapped_key_iv = EXCLUDED.wrapped_key_iv,
			wrapped_key_tag = EXCLUDED.wrapped_key_tag,
			key_version = EXCLUDED.key_version,
			updated_at = EXCLUDED.updated_at`, r.table, secretColumns)

	p := rec.Payload
	_, err := tx.Exec(ctx, query,
		rec.OwnerID, rec.ItemID, p.Ciphertext, p.IV, p.AuthTag,
		p.WrappedKey.Ciphertext, p.WrappedKey.IV, p.WrappedKey.AuthTag,
		p.KeyVersion, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert secret: %w", err)
	}
	return nil
}

func (r *SecretRepo) Delete(ctx context.Context, tx pgx.Tx, owner, itemID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE owner_id = $1 AND item_id = $2`, r.table)
	if _, err := tx.Exec(ctx, query, owner, itemID); err != nil {
		return fmt.Errorf("delete secret: %w", err)
	}
	return nil
}

func (r *SecretRepo) DeleteByOwner(ctx context.Context, tx pgx.Tx, owner string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE owner_id = $1`, r.table)
	if _, err := tx.Exec(ctx, query, owner); err != nil {
		return fmt.Errorf("delete secrets by owner: %w", err)
	}
	return nil
}

func (r *SecretRepo) CountByOwner(ctx context.Context, tx pgx.Tx, owner string) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE owner_id = $1`, r.table)

	var n int
	if err := tx.QueryRow(ctx, query, owner).Scan(&n); err != nil {
		return 0, fmt.Errorf("count secrets: %w", err)
	}
	return n, nil
}
