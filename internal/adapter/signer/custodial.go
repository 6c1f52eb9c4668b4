package signer

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"escrow-relay/config"
	"escrow-relay/internal/core/domain"
	"escrow-relay/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog"
)

// CustodialAPI is the part of custodial.Client the signer drives.
type CustodialAPI interface {
	GetOrCreateAccount(ctx context.Context, name string) (common.Address, error)
	SendTransaction(ctx context.Context, address common.Address, network, rawTx string) (string, error)
}

// CustodialSigner sends claims from a server wallet account held by the
// custodial API. Account addresses are cached per chain.
type CustodialSigner struct {
	api CustodialAPI
	cfg config.CDPConfig
	log zerolog.Logger

	mu       sync.Mutex
	accounts map[int64]common.Address
}

func NewCustodialSigner(api CustodialAPI, cfg config.CDPConfig, log zerolog.Logger) *CustodialSigner {
	return &CustodialSigner{
		api:      api,
		cfg:      cfg,
		log:      log,
		accounts: make(map[int64]common.Address),
	}
}

func (s *CustodialSigner) Submit(ctx context.Context, call domain.ContractCall, sc domain.SubmitContext) (string, error) {
	network, ok := s.cfg.NetworkFor(sc.ChainID)
	if !ok {
		return "", apperror.ErrUnsupportedNetwork(sc.ChainID)
	}

	from, err := s.account(ctx, sc.ChainID)
	if err != nil {
		return "", err
	}

	rawTx, err := unsignedTx(call, sc.ChainID)
	if err != nil {
		return "", err
	}

	hash, err := s.api.SendTransaction(ctx, from, network, rawTx)
	if err != nil {
		return "", err
	}
	if _, ok := domain.ParseHash(hash); !ok {
		return "", apperror.ErrSignerRejected(fmt.Errorf("custodial api returned malformed hash %q", hash))
	}

	s.log.Info().
		Str("tx_hash", hash).
		Str("network", network).
		Str("from", from.Hex()).
		Str("action", string(sc.Action)).
		Msg("custodial transaction sent")
	return hash, nil
}

// account resolves the sending address for chainID. Two concurrent first
// lookups both hit the API; get-or-create makes that harmless.
func (s *CustodialSigner) account(ctx context.Context, chainID int64) (common.Address, error) {
	s.mu.Lock()
	addr, ok := s.accounts[chainID]
	s.mu.Unlock()
	if ok {
		return addr, nil
	}

	name := s.cfg.AccountNameFor(chainID)
	if name == "" {
		return common.Address{}, apperror.ErrMissingConfiguration("relayer.cdp.account_name")
	}

	addr, err := s.api.GetOrCreateAccount(ctx, name)
	if err != nil {
		return common.Address{}, err
	}

	s.mu.Lock()
	s.accounts[chainID] = addr
	s.mu.Unlock()
	return addr, nil
}

// unsignedTx serializes an EIP-1559 transaction with only chain, target,
// value and data set. The API fills nonce, gas and fees.
func unsignedTx(call domain.ContractCall, chainID int64) (string, error) {
	to := call.To
	value := call.Value
	if value == nil {
		value = new(big.Int)
	}
	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID: big.NewInt(chainID),
		To:      &to,
		Value:   value,
		Data:    call.Data,
	})
	raw, err := tx.MarshalBinary()
	if err != nil {
		return "", fmt.Errorf("encoding transaction: %w", err)
	}
	return hexutil.Encode(raw), nil
}
