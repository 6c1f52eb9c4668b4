package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"escrow-relay/config"
	"escrow-relay/internal/core/domain"
	"escrow-relay/internal/core/ports"
	"escrow-relay/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// SecretStore implements ports.SecretStore on top of a transactional
// repository and envelope encryption bound to "owner:item".
type SecretStore struct {
	repo       ports.SecretRepository
	transactor ports.DBTransactor
	crypto     ports.EnvelopeCrypto
	retry      config.SecretStoreConfig
	metrics    ports.RelayMetrics
	log        zerolog.Logger
	sleep      func(ctx context.Context, d time.Duration) error

	schemaMu    sync.Mutex
	schemaReady bool
}

func NewSecretStore(
	repo ports.SecretRepository,
	transactor ports.DBTransactor,
	crypto ports.EnvelopeCrypto,
	cfg config.SecretStoreConfig,
	metrics ports.RelayMetrics,
	log zerolog.Logger,
) *SecretStore {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &SecretStore{
		repo:       repo,
		transactor: transactor,
		crypto:     crypto,
		retry:      cfg,
		metrics:    metricsOrNop(metrics),
		log:        log,
		sleep:      sleepCtx,
	}
}

// Get returns every decryptable secret for owner. Rows that fail to decrypt
// are skipped.
func (s *SecretStore) Get(ctx context.Context, owner string) ([]domain.SecretItem, error) {
	owner, err := ownerArg(owner)
	if err != nil {
		return nil, err
	}

	var records []domain.SecretRecord
	err = s.withTx(ctx, "get", func(tx pgx.Tx) error {
		var err error
		records, err = s.repo.ListByOwner(ctx, tx, owner)
		return err
	})
	if err != nil {
		return nil, err
	}

	items := make([]domain.SecretItem, 0, len(records))
	for i := range records {
		rec := &records[i]
		plaintext, err := s.crypto.Decrypt(&rec.Payload, domain.SecretContext(owner, rec.ItemID))
		if err != nil {
			s.log.Warn().Err(err).
				Str("owner", owner).
				Str("item", rec.ItemID).
				Str("key_version", rec.Payload.KeyVersion).
				Msg("skipping secret that failed to decrypt")
			continue
		}
		items = append(items, domain.SecretItem{ItemID: rec.ItemID, Secret: string(plaintext)})
	}
	return items, nil
}

// Upsert encrypts secret and replaces any existing record for (owner, item).
func (s *SecretStore) Upsert(ctx context.Context, owner, itemID, secret string) error {
	owner, err := ownerArg(owner)
	if err != nil {
		return err
	}
	itemID, err = itemArg(itemID)
	if err != nil {
		return err
	}
	if secret == "" {
		return apperror.Validation("secret is required")
	}

	payload, err := s.crypto.Encrypt([]byte(secret), domain.SecretContext(owner, itemID))
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	record := &domain.SecretRecord{
		OwnerID:   owner,
		ItemID:    itemID,
		Payload:   *payload,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.withTx(ctx, "upsert", func(tx pgx.Tx) error {
		return s.repo.Upsert(ctx, tx, record)
	}); err != nil {
		return err
	}

	s.log.Info().Str("owner", owner).Str("item", itemID).Str("key_version", payload.KeyVersion).Msg("secret stored")
	return nil
}

func (s *SecretStore) Delete(ctx context.Context, owner, itemID string) error {
	owner, err := ownerArg(owner)
	if err != nil {
		return err
	}
	itemID, err = itemArg(itemID)
	if err != nil {
		return err
	}

	return s.withTx(ctx, "delete", func(tx pgx.Tx) error {
		return s.repo.Delete(ctx, tx, owner, itemID)
	})
}

func (s *SecretStore) DeleteAll(ctx context.Context, owner string) error {
	owner, err := ownerArg(owner)
	if err != nil {
		return err
	}

	return s.withTx(ctx, "delete_all", func(tx pgx.Tx) error {
		return s.repo.DeleteByOwner(ctx, tx, owner)
	})
}

func (s *SecretStore) Count(ctx context.Context, owner string) (int, error) {
	owner, err := ownerArg(owner)
	if err != nil {
		return 0, err
	}

	var n int
	err = s.withTx(ctx, "count", func(tx pgx.Tx) error {
		var err error
		n, err = s.repo.CountByOwner(ctx, tx, owner)
		return err
	})
	return n, err
}

// withTx runs fn in a transaction, retrying transient failures with doubling
// backoff up to the configured attempt count. The last error is returned.
func (s *SecretStore) withTx(ctx context.Context, op string, fn func(tx pgx.Tx) error) error {
	backoff := s.retry.BaseBackoff
	var lastErr error

	for attempt := 1; attempt <= s.retry.MaxAttempts; attempt++ {
		lastErr = s.ensureSchema(ctx)
		if lastErr == nil {
			lastErr = s.runTx(ctx, fn)
		}
		if lastErr == nil {
			return nil
		}
		if !isTransientStoreError(lastErr) || attempt == s.retry.MaxAttempts {
			break
		}

		s.metrics.ObserveStoreRetry(op)
		s.log.Warn().Err(lastErr).
			Str("op", op).
			Int("attempt", attempt).
			Dur("backoff", backoff).
			Msg("transient secret store error, retrying")

		if err := s.sleep(ctx, backoff); err != nil {
			lastErr = err
			break
		}
		backoff *= 2
		if s.retry.MaxBackoff > 0 && backoff > s.retry.MaxBackoff {
			backoff = s.retry.MaxBackoff
		}
	}

	return apperror.ErrStorage(fmt.Errorf("%s: %w", op, lastErr))
}

func (s *SecretStore) runTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// ensureSchema creates the table once per process. A failed attempt is
// retried by the next operation.
func (s *SecretStore) ensureSchema(ctx context.Context) error {
	s.schemaMu.Lock()
	defer s.schemaMu.Unlock()

	if s.schemaReady {
		return nil
	}
	if err := s.runTx(ctx, func(tx pgx.Tx) error {
		return s.repo.EnsureSchema(ctx, tx)
	}); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	s.schemaReady = true
	return nil
}

// isTransientStoreError covers serialization failures, deadlocks, connection
// loss, admin shutdown, too many connections and pgx's own retry hints.
func isTransientStoreError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "57P01", "53300":
			return true
		}
		return strings.HasPrefix(pgErr.Code, "08")
	}
	return pgconn.SafeToRetry(err) || pgconn.Timeout(err)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func ownerArg(owner string) (string, error) {
	owner = domain.NormalizeOwner(owner)
	if owner == "" {
		return "", apperror.Validation("owner is required")
	}
	return owner, nil
}

func itemArg(itemID string) (string, error) {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return "", apperror.Validation("item id is required")
	}
	return itemID, nil
}
