package domain

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// TransferStatus is the lifecycle state of an escrowed transfer.
type TransferStatus string

const (
	TransferStatusClaimStarted  TransferStatus = "CLAIM_STARTED"
	TransferStatusClaimedWallet TransferStatus = "CLAIMED_WALLET"
	TransferStatusClaimedBank   TransferStatus = "CLAIMED_BANK"
	TransferStatusClaimedDebit  TransferStatus = "CLAIMED_DEBIT"
	TransferStatusRefunded      TransferStatus = "REFUNDED"
	TransferStatusExpired       TransferStatus = "EXPIRED"
)

// IsTerminal returns true once funds have left the escrow or the lock lapsed.
func (s TransferStatus) IsTerminal() bool {
	switch s {
	case TransferStatusClaimedWallet, TransferStatusClaimedBank, TransferStatusClaimedDebit,
		TransferStatusRefunded, TransferStatusExpired:
		return true
	default:
		return false
	}
}

var (
	ErrNonPositivePrincipal = errors.New("principal must be positive")
	ErrNegativeSponsorFee   = errors.New("sponsor fee must not be negative")
	ErrLockedTotalMismatch  = errors.New("principal + sponsor fee must equal total locked")
)

// Transfer mirrors an escrow lock. Amounts are in the token's smallest unit.
type Transfer struct {
	TransferID        common.Hash    `json:"transfer_id"`
	RecipientHintHash common.Hash    `json:"recipient_hint_hash"`
	PrincipalAmount   *big.Int       `json:"principal_amount"`
	SponsorFeeAmount  *big.Int       `json:"sponsor_fee_amount"`
	TotalLockedAmount *big.Int       `json:"total_locked_amount"`
	Expiry            time.Time      `json:"expiry"`
	Status            TransferStatus `json:"status"`
}

// Validate enforces the amount invariants of a lock.
func (t *Transfer) Validate() error {
	return CheckLockedAmounts(t.PrincipalAmount, t.SponsorFeeAmount, t.TotalLockedAmount)
}

// CheckLockedAmounts requires principal > 0 and principal + fee == total.
func CheckLockedAmounts(principal, sponsorFee, total *big.Int) error {
	if principal == nil || principal.Sign() <= 0 {
		return ErrNonPositivePrincipal
	}
	if sponsorFee == nil || sponsorFee.Sign() < 0 {
		return ErrNegativeSponsorFee
	}
	if total == nil || new(big.Int).Add(principal, sponsorFee).Cmp(total) != 0 {
		return ErrLockedTotalMismatch
	}
	return nil
}

// ExpiryUnix is the expiry as whole seconds, the unit the contract stores.
func (t *Transfer) ExpiryUnix() uint64 {
	return uint64(t.Expiry.Unix())
}

// NewTransferID derives a transfer id from the sender, the recipient contact
// hash, the principal, the creation time and a random salt.
func NewTransferID(sender common.Address, contactHash common.Hash, principal *big.Int, now time.Time, salt []byte) common.Hash {
	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], uint64(now.UnixMilli()))

	return crypto.Keccak256Hash(
		sender.Bytes(),
		contactHash.Bytes(),
		common.LeftPadBytes(principal.Bytes(), 32),
		ts[:],
		salt,
	)
}

// NewSalt returns 16 random bytes for NewTransferID.
func NewSalt() ([]byte, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// RecipientHintHash is the on-chain commitment to a recipient contact hash.
func RecipientHintHash(contactHash common.Hash) common.Hash {
	return crypto.Keccak256Hash(contactHash.Bytes())
}
