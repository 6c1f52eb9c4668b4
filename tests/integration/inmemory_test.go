package integration

import (
	"context"
	"math/big"
	"sort"
	"sync"
	"time"

	"escrow-relay/internal/core/domain"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/jackc/pgx/v5"
)

// --- Simulated chain (evm.Backend) ---

// simChain mines every transaction it sees. sendDelay widens the window in
// which concurrent claims overlap.
type simChain struct {
	mu        sync.Mutex
	txs       map[common.Hash]*types.Transaction
	receipts  map[common.Hash]*types.Receipt
	nonces    map[common.Address]uint64
	sent      int
	sendDelay time.Duration
}

func newSimChain() *simChain {
	return &simChain{
		txs:      make(map[common.Hash]*types.Transaction),
		receipts: make(map[common.Hash]*types.Receipt),
		nonces:   make(map[common.Address]uint64),
	}
}

// include records a transaction signed elsewhere as mined with status.
func (c *simChain) include(tx *types.Transaction, status uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.txs[tx.Hash()] = tx
	c.receipts[tx.Hash()] = &types.Receipt{TxHash: tx.Hash(), Status: status, BlockNumber: big.NewInt(int64(len(c.txs)))}
}

func (c *simChain) sentCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sent
}

func (c *simChain) TransactionByHash(_ context.Context, hash common.Hash) (*types.Transaction, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	tx, ok := c.txs[hash]
	if !ok {
		return nil, false, ethereum.NotFound
	}
	return tx, false, nil
}

func (c *simChain) TransactionReceipt(_ context.Context, hash common.Hash) (*types.Receipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.receipts[hash]
	if !ok {
		return nil, ethereum.NotFound
	}
	return r, nil
}

func (c *simChain) BlockNumber(context.Context) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return uint64(len(c.txs)), nil
}

func (c *simChain) PendingNonceAt(_ context.Context, account common.Address) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nonces[account], nil
}

func (c *simChain) SuggestGasPrice(context.Context) (*big.Int, error) {
	return big.NewInt(1_000_000_000), nil
}

func (c *simChain) EstimateGas(context.Context, ethereum.CallMsg) (uint64, error) {
	return 60_000, nil
}

func (c *simChain) SendTransaction(_ context.Context, tx *types.Transaction) error {
	if c.sendDelay > 0 {
		time.Sleep(c.sendDelay)
	}
	from, err := types.Sender(types.LatestSignerForChainID(tx.ChainId()), tx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.sent++
	c.nonces[from] = tx.Nonce() + 1
	c.mu.Unlock()

	c.include(tx, types.ReceiptStatusSuccessful)
	return nil
}

// --- In-memory secret repository ---

type memorySecretRepo struct {
	mu   sync.Mutex
	rows map[string]map[string]domain.SecretRecord
}

func newMemorySecretRepo() *memorySecretRepo {
	return &memorySecretRepo{rows: make(map[string]map[string]domain.SecretRecord)}
}

func (r *memorySecretRepo) EnsureSchema(context.Context, pgx.Tx) error { return nil }

func (r *memorySecretRepo) ListByOwner(_ context.Context, _ pgx.Tx, owner string) ([]domain.SecretRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.SecretRecord, 0, len(r.rows[owner]))
	for _, rec := range r.rows[owner] {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out, nil
}

func (r *memorySecretRepo) Upsert(_ context.Context, _ pgx.Tx, rec *domain.SecretRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rows[rec.OwnerID] == nil {
		r.rows[rec.OwnerID] = make(map[string]domain.SecretRecord)
	}
	r.rows[rec.OwnerID][rec.ItemID] = *rec
	return nil
}

func (r *memorySecretRepo) Delete(_ context.Context, _ pgx.Tx, owner, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows[owner], itemID)
	return nil
}

func (r *memorySecretRepo) DeleteByOwner(_ context.Context, _ pgx.Tx, owner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, owner)
	return nil
}

func (r *memorySecretRepo) CountByOwner(_ context.Context, _ pgx.Tx, owner string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows[owner]), nil
}

// --- In-memory transactor (no-op tx) ---

type inMemoryTransactor struct{}

func (inMemoryTransactor) Begin(context.Context) (pgx.Tx, error) {
	return noopTx{}, nil
}

// noopTx satisfies pgx.Tx; the repository above ignores it.
type noopTx struct{ pgx.Tx }

func (noopTx) Commit(context.Context) error   { return nil }
func (noopTx) Rollback(context.Context) error { return nil }
