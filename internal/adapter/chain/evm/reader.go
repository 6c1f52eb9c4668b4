package evm

import (
	"context"
	"fmt"

	"escrow-relay/internal/core/domain"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Reader implements ports.ChainClient over a Backend.
type Reader struct {
	backend Backend
}

func NewReader(b Backend) *Reader {
	return &Reader{backend: b}
}

func (r *Reader) TransactionByHash(ctx context.Context, hash common.Hash) (*domain.ChainTransaction, error) {
	tx, _, err := r.backend.TransactionByHash(ctx, hash)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("transaction by hash: %w", err)
	}

	from, err := types.Sender(types.LatestSignerForChainID(tx.ChainId()), tx)
	if err != nil {
		return nil, fmt.Errorf("recover sender: %w", err)
	}

	return &domain.ChainTransaction{
		Hash:  tx.Hash(),
		From:  from,
		To:    tx.To(),
		Data:  tx.Data(),
		Value: tx.Value(),
	}, nil
}

func (r *Reader) TransactionReceipt(ctx context.Context, hash common.Hash) (*domain.ChainReceipt, error) {
	receipt, err := r.backend.TransactionReceipt(ctx, hash)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("transaction receipt: %w", err)
	}
	return toChainReceipt(receipt), nil
}

func (r *Reader) BlockNumber(ctx context.Context) (uint64, error) {
	return r.backend.BlockNumber(ctx)
}

func toChainReceipt(receipt *types.Receipt) *domain.ChainReceipt {
	out := &domain.ChainReceipt{
		TxHash: receipt.TxHash,
		Status: receipt.Status,
	}
	if receipt.BlockNumber != nil {
		out.BlockNumber = receipt.BlockNumber.Uint64()
	}
	return out
}
