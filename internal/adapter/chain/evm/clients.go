// Package evm adapts go-ethereum JSON-RPC clients to the core chain ports.
package evm

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"escrow-relay/config"
	"escrow-relay/internal/core/ports"
	"escrow-relay/pkg/apperror"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Backend is the slice of *ethclient.Client the relay needs.
type Backend interface {
	TransactionByHash(ctx context.Context, hash common.Hash) (tx *types.Transaction, isPending bool, err error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	BlockNumber(ctx context.Context) (uint64, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
}

// DialFunc opens a backend for an RPC URL.
type DialFunc func(ctx context.Context, rpcURL string) (Backend, error)

// Dial is the production DialFunc.
func Dial(ctx context.Context, rpcURL string) (Backend, error) {
	cli, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial rpc: %w", err)
	}
	return cli, nil
}

// Clients caches one backend per RPC URL. Concurrent first use may dial
// twice; the loser is discarded.
type Clients struct {
	cfg  config.ChainConfig
	dial DialFunc

	mu       sync.Mutex
	backends map[string]Backend
}

func NewClients(cfg config.ChainConfig, dial DialFunc) *Clients {
	if dial == nil {
		dial = Dial
	}
	return &Clients{
		cfg:      cfg,
		dial:     dial,
		backends: make(map[string]Backend),
	}
}

// Backend returns the raw backend for chainID, dialing on first use.
func (c *Clients) Backend(ctx context.Context, chainID int64) (Backend, string, error) {
	url := c.cfg.RPCURLFor(chainID)
	if url == "" {
		return nil, "", apperror.ErrMissingConfiguration(fmt.Sprintf("chain.rpc_url for chain %d", chainID))
	}
	b, err := c.forURL(ctx, url)
	if err != nil {
		return nil, "", err
	}
	return b, url, nil
}

// Client implements ports.ChainClients.
func (c *Clients) Client(ctx context.Context, chainID int64) (ports.ChainClient, error) {
	b, _, err := c.Backend(ctx, chainID)
	if err != nil {
		return nil, err
	}
	return NewReader(b), nil
}

func (c *Clients) forURL(ctx context.Context, url string) (Backend, error) {
	c.mu.Lock()
	b, ok := c.backends[url]
	c.mu.Unlock()
	if ok {
		return b, nil
	}

	b, err := c.dial(ctx, url)
	if err != nil {
		return nil, apperror.ErrChainRPC(err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.backends[url]; ok {
		return existing, nil
	}
	c.backends[url] = b
	return b, nil
}

// Close releases every dialed backend that supports it.
func (c *Clients) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for url, b := range c.backends {
		if closer, ok := b.(interface{ Close() }); ok {
			closer.Close()
		}
		delete(c.backends, url)
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, ethereum.NotFound)
}
