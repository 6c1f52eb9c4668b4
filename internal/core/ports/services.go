package ports

import (
	"context"
	"time"

	"escrow-relay/internal/core/domain"

	"github.com/ethereum/go-ethereum/common"
)

// EscrowVerifier proves a transaction performed the expected escrow lock.
// Failures are values, never errors.
type EscrowVerifier interface {
	Verify(ctx context.Context, req domain.EscrowLockVerificationRequest) domain.VerificationResult
}

// ReceiptConfirmer blocks until a submitted transaction succeeds, reverts or times out.
type ReceiptConfirmer interface {
	Confirm(ctx context.Context, txHash string, chainID int64) error
}

// Relayer executes privileged claims against the escrow contract.
type Relayer interface {
	ClaimToWallet(ctx context.Context, transferID common.Hash, recipient common.Address, chainID int64) (*domain.RelayerTxResult, error)
	ClaimToPayoutTreasury(ctx context.Context, transferID common.Hash, chainID int64) (*domain.RelayerTxResult, error)
}

// EnvelopeCrypto seals secrets under a per-secret data key wrapped by the key ring.
// context is bound as associated data on both tiers.
type EnvelopeCrypto interface {
	Encrypt(plaintext []byte, context string) (*domain.EncryptedPayload, error)
	Decrypt(payload *domain.EncryptedPayload, context string) ([]byte, error)
}

// SecretStore keeps linked-account credentials per owner and item.
type SecretStore interface {
	Get(ctx context.Context, owner string) ([]domain.SecretItem, error)
	Upsert(ctx context.Context, owner, itemID, secret string) error
	Delete(ctx context.Context, owner, itemID string) error
	DeleteAll(ctx context.Context, owner string) error
	Count(ctx context.Context, owner string) (int, error)
}

// SignatureService handles HMAC-SHA256 signing and verification.
type SignatureService interface {
	Sign(secretKey string, payload string) string
	Verify(secretKey string, payload string, signature string) bool
	BuildCanonicalString(method, path string, timestamp int64, nonce string, body string) string
}

// NonceStore manages nonce uniqueness for replay attack prevention.
type NonceStore interface {
	// CheckAndSet atomically checks if nonce exists, sets it if not.
	// Returns true if nonce is new (valid), false if already used.
	CheckAndSet(ctx context.Context, scope string, nonce string, ttl time.Duration) (bool, error)
}

// ClaimGuard marks a transfer as having a claim in flight.
type ClaimGuard interface {
	// Acquire returns false when another claim already holds the guard.
	// The token identifies this holder and must be passed to Release.
	Acquire(ctx context.Context, transferID string, ttl time.Duration) (token string, held bool, err error)
	// Release drops the guard only if token still holds it.
	Release(ctx context.Context, transferID string, token string) error
}

// ClaimResultCache remembers confirmed claim results per transfer.
type ClaimResultCache interface {
	// Get returns nil, nil on a miss.
	Get(ctx context.Context, transferID string) (*domain.ClaimRecord, error)
	Set(ctx context.Context, transferID string, record *domain.ClaimRecord, ttl time.Duration) error
}

// RelayMetrics records relay and store outcomes.
type RelayMetrics interface {
	ObserveVerification(valid bool)
	ObserveClaim(action domain.ClaimAction, mode domain.RelayerMode, status string)
	ObserveStoreRetry(op string)
}
