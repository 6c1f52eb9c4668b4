package ports

import (
	"context"

	"escrow-relay/internal/core/domain"

	"github.com/ethereum/go-ethereum/common"
)

// ChainClient is a read-only view of one chain's node.
type ChainClient interface {
	// TransactionByHash returns nil, nil when the node does not know the hash.
	TransactionByHash(ctx context.Context, hash common.Hash) (*domain.ChainTransaction, error)
	// TransactionReceipt returns nil, nil while the transaction is unmined.
	TransactionReceipt(ctx context.Context, hash common.Hash) (*domain.ChainReceipt, error)
	BlockNumber(ctx context.Context) (uint64, error)
}

// ChainClients hands out a client per chain id, dialing on first use.
type ChainClients interface {
	Client(ctx context.Context, chainID int64) (ChainClient, error)
}

// SignerBackend submits an encoded escrow call and returns the transaction hash.
// Missing credentials or unmapped networks surface as apperror configuration errors.
type SignerBackend interface {
	Submit(ctx context.Context, call domain.ContractCall, sc domain.SubmitContext) (string, error)
}

// MinedSigner is a SignerBackend whose Submit returns only once the
// transaction is mined with a successful receipt. The dispatcher does not
// confirm such submissions a second time.
type MinedSigner interface {
	SignerBackend
	WaitsForReceipt() bool
}
