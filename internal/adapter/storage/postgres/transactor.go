package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// SecretTxOptions runs secret-store work at SERIALIZABLE. Conflicting
// writers fail with 40001 and the store retries them.
var SecretTxOptions = pgx.TxOptions{IsoLevel: pgx.Serializable}

// Transactor implements ports.DBTransactor with fixed transaction options.
type Transactor struct {
	pool Pool
	opts pgx.TxOptions
}

func NewTransactor(pool Pool, opts pgx.TxOptions) *Transactor {
	return &Transactor{pool: pool, opts: opts}
}

func (t *Transactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return t.pool.BeginTx(ctx, t.opts)
}
