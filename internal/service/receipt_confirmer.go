package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"escrow-relay/config"
	"escrow-relay/internal/core/domain"
	"escrow-relay/internal/core/ports"
	"escrow-relay/pkg/apperror"

	"github.com/rs/zerolog"
)

// ReceiptConfirmer polls for a receipt until success, revert or deadline.
type ReceiptConfirmer struct {
	clients  ports.ChainClients
	required bool
	timeout  time.Duration
	interval time.Duration
	log      zerolog.Logger
}

func NewReceiptConfirmer(clients ports.ChainClients, cfg config.RelayerConfig, log zerolog.Logger) *ReceiptConfirmer {
	return &ReceiptConfirmer{
		clients:  clients,
		required: cfg.RequireConfirmation,
		timeout:  cfg.ConfirmTimeout,
		interval: cfg.ConfirmPollInterval,
		log:      log,
	}
}

// Confirm returns nil on a successful receipt, CHAIN_002 on a reverted one and
// CHAIN_003 when the deadline passes first. It is a no-op when confirmation
// is disabled.
func (c *ReceiptConfirmer) Confirm(ctx context.Context, txHash string, chainID int64) error {
	if !c.required {
		return nil
	}

	hash, ok := domain.ParseHash(txHash)
	if !ok {
		return apperror.ErrInvalidHash("tx_hash")
	}

	client, err := c.clients.Client(ctx, chainID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	var lastErr error
	for {
		receipt, err := client.TransactionReceipt(ctx, hash)
		switch {
		case err != nil:
			if ctx.Err() == nil {
				lastErr = err
				c.log.Debug().Err(err).Str("tx_hash", txHash).Msg("receipt lookup failed, retrying")
			}
		case receipt != nil && receipt.Succeeded():
			c.log.Info().
				Str("tx_hash", txHash).
				Int64("chain_id", chainID).
				Uint64("block", receipt.BlockNumber).
				Msg("transaction confirmed")
			return nil
		case receipt != nil:
			c.log.Warn().Str("tx_hash", txHash).Int64("chain_id", chainID).Msg("transaction reverted")
			return apperror.ErrTransactionReverted(txHash)
		}

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return apperror.ErrConfirmationTimeout(txHash, lastErr)
			}
			return fmt.Errorf("confirming %s: %w", txHash, ctx.Err())
		case <-ticker.C:
		}
	}
}
