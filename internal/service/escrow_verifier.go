package service

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"escrow-relay/config"
	"escrow-relay/internal/contracts"
	"escrow-relay/internal/core/domain"
	"escrow-relay/internal/core/ports"

	"github.com/rs/zerolog"
)

// EscrowLockVerifier implements ports.EscrowVerifier. Local checks run before
// any chain access; every failure is a VerificationResult, never an error.
type EscrowLockVerifier struct {
	clients    ports.ChainClients
	codec      *contracts.EscrowCodec
	chain      config.ChainConfig
	skip       bool
	production bool
	metrics    ports.RelayMetrics
	log        zerolog.Logger
}

func NewEscrowLockVerifier(
	clients ports.ChainClients,
	codec *contracts.EscrowCodec,
	cfg *config.Config,
	metrics ports.RelayMetrics,
	log zerolog.Logger,
) *EscrowLockVerifier {
	return &EscrowLockVerifier{
		clients:    clients,
		codec:      codec,
		chain:      cfg.Chain,
		skip:       cfg.Verification.Skip,
		production: cfg.App.IsProduction(),
		metrics:    metricsOrNop(metrics),
		log:        log,
	}
}

func (v *EscrowLockVerifier) Verify(ctx context.Context, req domain.EscrowLockVerificationRequest) domain.VerificationResult {
	result := v.verify(ctx, req)
	v.metrics.ObserveVerification(result.Valid)

	if result.Valid {
		v.log.Info().Str("tx_hash", req.TxHash).Int64("chain_id", req.ChainID).Msg("escrow lock verified")
	} else {
		v.log.Info().
			Str("tx_hash", req.TxHash).
			Int64("chain_id", req.ChainID).
			Str("reason", result.Reason).
			Msg("escrow lock rejected")
	}
	return result
}

func (v *EscrowLockVerifier) verify(ctx context.Context, req domain.EscrowLockVerificationRequest) domain.VerificationResult {
	// Format
	txHash, ok := domain.ParseHash(strings.TrimSpace(req.TxHash))
	if !ok {
		return domain.Rejected("invalid transaction hash")
	}
	transferID, ok := domain.ParseHash(strings.TrimSpace(req.ExpectedTransferID))
	if !ok {
		return domain.Rejected("invalid expected transferId")
	}
	hintHash, ok := domain.ParseHash(strings.TrimSpace(req.ExpectedRecipientHintHash))
	if !ok {
		return domain.Rejected("invalid expected recipientHintHash")
	}
	sender, ok := domain.ParseAddress(strings.TrimSpace(req.ExpectedSender))
	if !ok {
		return domain.Rejected("invalid expected sender address")
	}

	// Arithmetic
	principal, ok := parseAmount(req.PrincipalAmount)
	if !ok {
		return domain.Rejected("invalid principal amount")
	}
	sponsorFee, ok := parseAmount(req.SponsorFeeAmount)
	if !ok {
		return domain.Rejected("invalid sponsorFee amount")
	}
	total, ok := parseAmount(req.TotalLockedAmount)
	if !ok {
		return domain.Rejected("invalid totalLocked amount")
	}
	if err := domain.CheckLockedAmounts(principal, sponsorFee, total); err != nil {
		return domain.Rejected(err.Error())
	}

	expiry, err := parseExpiry(req.Expiry)
	if err != nil {
		return domain.Rejected("invalid expiry: " + err.Error())
	}

	if v.skip {
		if !v.production {
			return domain.Verified()
		}
		v.log.Warn().Str("tx_hash", req.TxHash).Msg("verification.skip is ignored in production")
	}

	escrow, ok := domain.ParseAddress(v.chain.EscrowAddressFor(req.ChainID))
	if !ok {
		return domain.Rejected(fmt.Sprintf("escrow contract not configured for chain %d", req.ChainID))
	}

	client, err := v.clients.Client(ctx, req.ChainID)
	if err != nil {
		return domain.Rejected(err.Error())
	}

	tx, err := client.TransactionByHash(ctx, txHash)
	if err != nil {
		return domain.Rejected("fetching transaction: " + err.Error())
	}
	if tx == nil {
		return domain.Rejected("transaction not found")
	}
	if tx.From != sender {
		return domain.Rejected(fmt.Sprintf("sender mismatch: transaction sent by %s", tx.From.Hex()))
	}
	if tx.To == nil || *tx.To != escrow {
		return domain.Rejected("destination mismatch: transaction is not addressed to the escrow contract")
	}

	call, err := v.codec.DecodeCreateTransfer(tx.Data)
	if err != nil {
		if errors.Is(err, contracts.ErrSelectorMismatch) {
			return domain.Rejected("call data is not a createTransfer call")
		}
		return domain.Rejected(err.Error())
	}

	switch {
	case call.TransferID != transferID:
		return domain.Rejected("transferId mismatch")
	case call.RecipientHintHash != hintHash:
		return domain.Rejected("recipientHintHash mismatch")
	case call.Principal.Cmp(principal) != 0:
		return domain.Rejected(fmt.Sprintf("principal mismatch: on-chain %s, expected %s", call.Principal, principal))
	case call.SponsorFee.Cmp(sponsorFee) != 0:
		return domain.Rejected(fmt.Sprintf("sponsorFee mismatch: on-chain %s, expected %s", call.SponsorFee, sponsorFee))
	case call.Expiry != uint64(expiry.Unix()):
		return domain.Rejected(fmt.Sprintf("expiry mismatch: on-chain %d, expected %d", call.Expiry, expiry.Unix()))
	}

	receipt, err := client.TransactionReceipt(ctx, txHash)
	if err != nil {
		return domain.Rejected("fetching receipt: " + err.Error())
	}
	if receipt == nil || !receipt.Succeeded() {
		return domain.Rejected("transaction not mined or reverted")
	}

	return domain.Verified()
}

func parseAmount(s string) (*big.Int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	return new(big.Int).SetString(s, 10)
}

// parseExpiry accepts unix seconds or RFC3339.
func parseExpiry(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty")
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < 0 {
			return time.Time{}, errors.New("negative timestamp")
		}
		return time.Unix(n, 0), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, errors.New("not unix seconds or RFC3339")
	}
	return t, nil
}
