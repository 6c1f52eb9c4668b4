package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"escrow-relay/config"
	"escrow-relay/internal/core/domain"
	"escrow-relay/internal/core/ports/mocks"
	"escrow-relay/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testTxHash = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

func confirmerConfig() config.RelayerConfig {
	return config.RelayerConfig{
		RequireConfirmation: true,
		ConfirmTimeout:      200 * time.Millisecond,
		ConfirmPollInterval: 5 * time.Millisecond,
	}
}

func TestReceiptConfirmer_SuccessAfterPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clients := mocks.NewMockChainClients(ctrl)
	client := mocks.NewMockChainClient(ctrl)
	clients.EXPECT().Client(gomock.Any(), int64(8453)).Return(client, nil)

	gomock.InOrder(
		client.EXPECT().TransactionReceipt(gomock.Any(), gomock.Any()).Return(nil, nil),
		client.EXPECT().TransactionReceipt(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset")),
		client.EXPECT().TransactionReceipt(gomock.Any(), gomock.Any()).Return(&domain.ChainReceipt{Status: 1, BlockNumber: 12}, nil),
	)

	c := NewReceiptConfirmer(clients, confirmerConfig(), zerolog.Nop())
	require.NoError(t, c.Confirm(context.Background(), testTxHash, 8453))
}

func TestReceiptConfirmer_RevertStopsPolling(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clients := mocks.NewMockChainClients(ctrl)
	client := mocks.NewMockChainClient(ctrl)
	clients.EXPECT().Client(gomock.Any(), int64(1)).Return(client, nil)
	client.EXPECT().TransactionReceipt(gomock.Any(), gomock.Any()).Return(&domain.ChainReceipt{Status: 0}, nil).Times(1)

	c := NewReceiptConfirmer(clients, confirmerConfig(), zerolog.Nop())
	err := c.Confirm(context.Background(), testTxHash, 1)

	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, "CHAIN_002"))
}

func TestReceiptConfirmer_TimeoutCarriesLastError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clients := mocks.NewMockChainClients(ctrl)
	client := mocks.NewMockChainClient(ctrl)
	clients.EXPECT().Client(gomock.Any(), int64(1)).Return(client, nil)

	transient := errors.New("502 bad gateway")
	client.EXPECT().TransactionReceipt(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ common.Hash) (*domain.ChainReceipt, error) {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, transient
		}).AnyTimes()

	cfg := confirmerConfig()
	cfg.ConfirmTimeout = 30 * time.Millisecond
	c := NewReceiptConfirmer(clients, cfg, zerolog.Nop())

	start := time.Now()
	err := c.Confirm(context.Background(), testTxHash, 1)

	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, "CHAIN_003"))
	assert.False(t, apperror.HasCode(err, "CHAIN_002"))
	assert.ErrorIs(t, err, transient)
	assert.Less(t, time.Since(start), time.Second)
}

func TestReceiptConfirmer_TimeoutWithoutErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clients := mocks.NewMockChainClients(ctrl)
	client := mocks.NewMockChainClient(ctrl)
	clients.EXPECT().Client(gomock.Any(), int64(1)).Return(client, nil)
	client.EXPECT().TransactionReceipt(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	cfg := confirmerConfig()
	cfg.ConfirmTimeout = 20 * time.Millisecond
	err := NewReceiptConfirmer(clients, cfg, zerolog.Nop()).Confirm(context.Background(), testTxHash, 1)

	assert.True(t, apperror.HasCode(err, "CHAIN_003"))
}

func TestReceiptConfirmer_Disabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clients := mocks.NewMockChainClients(ctrl)

	cfg := confirmerConfig()
	cfg.RequireConfirmation = false
	err := NewReceiptConfirmer(clients, cfg, zerolog.Nop()).Confirm(context.Background(), "not-even-a-hash", 1)

	assert.NoError(t, err)
}

func TestReceiptConfirmer_RejectsMalformedHash(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clients := mocks.NewMockChainClients(ctrl)
	err := NewReceiptConfirmer(clients, confirmerConfig(), zerolog.Nop()).Confirm(context.Background(), "0x1234", 1)

	assert.True(t, apperror.IsValidation(err))
}

func TestReceiptConfirmer_ClientError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clients := mocks.NewMockChainClients(ctrl)
	clients.EXPECT().Client(gomock.Any(), int64(99)).Return(nil, apperror.ErrMissingConfiguration("chain.rpc_url"))

	err := NewReceiptConfirmer(clients, confirmerConfig(), zerolog.Nop()).Confirm(context.Background(), testTxHash, 99)

	assert.True(t, apperror.IsConfiguration(err))
}
