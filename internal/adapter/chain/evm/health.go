package evm

import (
	"context"
	"fmt"

	"escrow-relay/pkg/apperror"
)

// HealthCheck implements ports.HealthChecker against the global RPC URL.
type HealthCheck struct {
	clients *Clients
}

func NewHealthCheck(clients *Clients) *HealthCheck {
	return &HealthCheck{clients: clients}
}

func (h *HealthCheck) Ping(ctx context.Context) error {
	url := h.clients.cfg.RPCURL
	if url == "" {
		return apperror.ErrMissingConfiguration("chain.rpc_url")
	}
	b, err := h.clients.forURL(ctx, url)
	if err != nil {
		return err
	}
	if _, err := b.BlockNumber(ctx); err != nil {
		return fmt.Errorf("block number: %w", err)
	}
	return nil
}

func (h *HealthCheck) Name() string {
	return "chain_rpc"
}
