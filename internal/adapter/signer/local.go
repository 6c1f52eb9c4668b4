// Package signer holds the relayer signing strategies behind ports.SignerBackend.
package signer

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"escrow-relay/config"
	"escrow-relay/internal/adapter/chain/evm"
	"escrow-relay/internal/core/domain"
	"escrow-relay/pkg/apperror"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rs/zerolog"
)

const (
	defaultMineTimeout  = 2 * time.Minute
	defaultMineInterval = 2 * time.Second
)

// BackendSource resolves the RPC backend for a chain. *evm.Clients satisfies it.
type BackendSource interface {
	Backend(ctx context.Context, chainID int64) (evm.Backend, string, error)
}

// LocalKeySigner signs legacy transactions with a hot key held in config.
type LocalKeySigner struct {
	rawKey   string
	backends BackendSource
	timeout  time.Duration
	interval time.Duration
	log      zerolog.Logger

	keyOnce sync.Once
	key     *ecdsa.PrivateKey
	keyErr  error
}

func NewLocalKeySigner(cfg config.RelayerConfig, backends BackendSource, log zerolog.Logger) *LocalKeySigner {
	s := &LocalKeySigner{
		rawKey:   cfg.PrivateKey,
		backends: backends,
		timeout:  cfg.ConfirmTimeout,
		interval: cfg.ConfirmPollInterval,
		log:      log,
	}
	if s.timeout <= 0 {
		s.timeout = defaultMineTimeout
	}
	if s.interval <= 0 {
		s.interval = defaultMineInterval
	}
	return s
}

// WaitsForReceipt reports that Submit already waits for a successful receipt.
func (s *LocalKeySigner) WaitsForReceipt() bool { return true }

// Submit signs, sends and waits for the transaction to be mined.
// A reverted receipt is a hard error.
func (s *LocalKeySigner) Submit(ctx context.Context, call domain.ContractCall, sc domain.SubmitContext) (string, error) {
	key, err := s.privateKey()
	if err != nil {
		return "", err
	}

	backend, _, err := s.backends.Backend(ctx, sc.ChainID)
	if err != nil {
		return "", err
	}

	from := crypto.PubkeyToAddress(key.PublicKey)
	to := call.To
	value := call.Value
	if value == nil {
		value = new(big.Int)
	}

	nonce, err := backend.PendingNonceAt(ctx, from)
	if err != nil {
		return "", apperror.ErrChainRPC(fmt.Errorf("pending nonce: %w", err))
	}
	gasPrice, err := backend.SuggestGasPrice(ctx)
	if err != nil {
		return "", apperror.ErrChainRPC(fmt.Errorf("suggest gas price: %w", err))
	}
	gas, err := backend.EstimateGas(ctx, ethereum.CallMsg{From: from, To: &to, Data: call.Data, Value: value})
	if err != nil {
		return "", apperror.ErrChainRPC(fmt.Errorf("estimate gas: %w", err))
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Value:    value,
		Gas:      gas,
		GasPrice: gasPrice,
		Data:     call.Data,
	})
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(big.NewInt(sc.ChainID)), key)
	if err != nil {
		return "", apperror.ErrSignerConfiguration(fmt.Errorf("sign tx: %w", err))
	}

	if err := backend.SendTransaction(ctx, signed); err != nil {
		return "", apperror.ErrChainRPC(fmt.Errorf("send tx: %w", err))
	}

	hash := signed.Hash()
	s.log.Info().
		Str("tx_hash", hash.Hex()).
		Str("action", string(sc.Action)).
		Int64("chain_id", sc.ChainID).
		Uint64("nonce", nonce).
		Msg("relayer transaction sent")

	if err := s.waitMined(ctx, backend, hash); err != nil {
		return "", err
	}
	return hash.Hex(), nil
}

func (s *LocalKeySigner) privateKey() (*ecdsa.PrivateKey, error) {
	s.keyOnce.Do(func() {
		raw := strings.TrimSpace(s.rawKey)
		if raw == "" {
			s.keyErr = apperror.ErrMissingConfiguration("relayer.private_key")
			return
		}
		s.key, s.keyErr = parsePrivateKey(raw)
		if s.keyErr != nil {
			s.keyErr = apperror.ErrSignerConfiguration(s.keyErr)
		}
	})
	return s.key, s.keyErr
}

func (s *LocalKeySigner) waitMined(ctx context.Context, backend evm.Backend, hash common.Hash) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	var lastErr error
	for {
		receipt, err := backend.TransactionReceipt(ctx, hash)
		switch {
		case err == nil && receipt != nil:
			if receipt.Status != types.ReceiptStatusSuccessful {
				return apperror.ErrTransactionReverted(hash.Hex())
			}
			return nil
		case err != nil && !errors.Is(err, ethereum.NotFound):
			lastErr = err
		}

		select {
		case <-ctx.Done():
			return apperror.ErrConfirmationTimeout(hash.Hex(), lastErr)
		case <-ticker.C:
		}
	}
}

func parsePrivateKey(hexKey string) (*ecdsa.PrivateKey, error) {
	hexKey = strings.TrimPrefix(hexKey, "0x")
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	return key, nil
}
