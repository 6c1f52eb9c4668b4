package service

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"escrow-relay/config"
	"escrow-relay/internal/contracts"
	"escrow-relay/internal/core/domain"
	"escrow-relay/internal/core/ports"
	"escrow-relay/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rs/zerolog"
)

// RelayerDispatcher implements ports.Relayer. It encodes the claim, hands it
// to the configured signer and waits for confirmation. Configuration errors
// fall back to a simulated hash only when simulation is allowed.
//
// It does not serialize claims for the same transfer; see ClaimService.
type RelayerDispatcher struct {
	signer          ports.SignerBackend
	confirmer       ports.ReceiptConfirmer
	codec           *contracts.EscrowCodec
	chain           config.ChainConfig
	allowSimulation bool
	metrics         ports.RelayMetrics
	log             zerolog.Logger
	now             func() time.Time
}

// NewRelayerDispatcher accepts a nil signer, meaning no backend is configured.
func NewRelayerDispatcher(
	signer ports.SignerBackend,
	confirmer ports.ReceiptConfirmer,
	codec *contracts.EscrowCodec,
	cfg *config.Config,
	metrics ports.RelayMetrics,
	log zerolog.Logger,
) *RelayerDispatcher {
	return &RelayerDispatcher{
		signer:          signer,
		confirmer:       confirmer,
		codec:           codec,
		chain:           cfg.Chain,
		allowSimulation: cfg.Relayer.AllowSimulation,
		metrics:         metricsOrNop(metrics),
		log:             log,
		now:             time.Now,
	}
}

func (d *RelayerDispatcher) ClaimToWallet(ctx context.Context, transferID common.Hash, recipient common.Address, chainID int64) (*domain.RelayerTxResult, error) {
	return d.dispatch(ctx, domain.SubmitContext{
		Action:     domain.ClaimActionToWallet,
		TransferID: transferID,
		ChainID:    chainID,
		Recipient:  &recipient,
	})
}

func (d *RelayerDispatcher) ClaimToPayoutTreasury(ctx context.Context, transferID common.Hash, chainID int64) (*domain.RelayerTxResult, error) {
	return d.dispatch(ctx, domain.SubmitContext{
		Action:     domain.ClaimActionToPayoutTreasury,
		TransferID: transferID,
		ChainID:    chainID,
	})
}

func (d *RelayerDispatcher) dispatch(ctx context.Context, sc domain.SubmitContext) (*domain.RelayerTxResult, error) {
	result, err := d.submit(ctx, sc)

	var mode domain.RelayerMode
	if result != nil {
		mode = result.Mode
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	d.metrics.ObserveClaim(sc.Action, mode, status)

	return result, err
}

func (d *RelayerDispatcher) submit(ctx context.Context, sc domain.SubmitContext) (*domain.RelayerTxResult, error) {
	escrow, ok := domain.ParseAddress(d.chain.EscrowAddressFor(sc.ChainID))
	if !ok {
		return d.simulateOr(sc, apperror.ErrEscrowNotConfigured(sc.ChainID))
	}
	sc.EscrowAddress = escrow

	data, err := d.encode(sc)
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	if d.signer == nil {
		return d.simulateOr(sc, apperror.ErrNoSignerBackend())
	}

	txHash, err := d.signer.Submit(ctx, domain.ContractCall{To: escrow, Data: data, Value: big.NewInt(0)}, sc)
	if err != nil {
		if apperror.IsConfiguration(err) {
			return d.simulateOr(sc, err)
		}
		d.log.Error().Err(err).
			Str("action", string(sc.Action)).
			Str("transfer_id", sc.TransferID.Hex()).
			Int64("chain_id", sc.ChainID).
			Msg("claim submission failed")
		return nil, err
	}

	d.log.Info().
		Str("action", string(sc.Action)).
		Str("transfer_id", sc.TransferID.Hex()).
		Int64("chain_id", sc.ChainID).
		Str("tx_hash", txHash).
		Msg("claim submitted")

	if !waitsForReceipt(d.signer) {
		if err := d.confirmer.Confirm(ctx, txHash, sc.ChainID); err != nil {
			return nil, err
		}
	}

	return &domain.RelayerTxResult{TxHash: txHash, Mode: domain.RelayerModeOnchain}, nil
}

func waitsForReceipt(signer ports.SignerBackend) bool {
	mined, ok := signer.(ports.MinedSigner)
	return ok && mined.WaitsForReceipt()
}

func (d *RelayerDispatcher) encode(sc domain.SubmitContext) ([]byte, error) {
	switch sc.Action {
	case domain.ClaimActionToWallet:
		return d.codec.EncodeClaimToWallet(sc.TransferID, *sc.Recipient)
	case domain.ClaimActionToPayoutTreasury:
		return d.codec.EncodeClaimToPayoutTreasury(sc.TransferID)
	default:
		return nil, fmt.Errorf("unknown claim action %q", sc.Action)
	}
}

func (d *RelayerDispatcher) simulateOr(sc domain.SubmitContext, cause error) (*domain.RelayerTxResult, error) {
	if !d.allowSimulation {
		return nil, cause
	}

	hash := SimulatedTxHash(sc.Action, sc.TransferID, sc.Recipient, d.now())
	d.log.Warn().
		Str("action", string(sc.Action)).
		Str("transfer_id", sc.TransferID.Hex()).
		Int64("chain_id", sc.ChainID).
		Str("cause", cause.Error()).
		Msg("relayer not configured, returning simulated transaction")

	return &domain.RelayerTxResult{TxHash: hash.Hex(), Mode: domain.RelayerModeSimulated}, nil
}

// SimulatedTxHash is keccak256("action|transferId|recipient|unixSeconds").
// It is stable for identical inputs within the same second.
func SimulatedTxHash(action domain.ClaimAction, transferID common.Hash, recipient *common.Address, at time.Time) common.Hash {
	var to string
	if recipient != nil {
		to = recipient.Hex()
	}
	return crypto.Keccak256Hash([]byte(fmt.Sprintf("%s|%s|%s|%d", action, transferID.Hex(), to, at.Unix())))
}
