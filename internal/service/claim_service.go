package service

import (
	"context"
	"time"

	"escrow-relay/config"
	"escrow-relay/internal/core/domain"
	"escrow-relay/internal/core/ports"
	"escrow-relay/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
)

// ClaimService serializes claims per transfer in front of a Relayer and
// replays confirmed results. Redis trouble never blocks a claim.
type ClaimService struct {
	relayer   ports.Relayer
	guard     ports.ClaimGuard
	results   ports.ClaimResultCache
	guardTTL  time.Duration
	resultTTL time.Duration
	log       zerolog.Logger
}

func NewClaimService(
	relayer ports.Relayer,
	guard ports.ClaimGuard,
	results ports.ClaimResultCache,
	cfg config.ClaimsConfig,
	log zerolog.Logger,
) *ClaimService {
	return &ClaimService{
		relayer:   relayer,
		guard:     guard,
		results:   results,
		guardTTL:  cfg.GuardTTL,
		resultTTL: cfg.ResultTTL,
		log:       log,
	}
}

func (s *ClaimService) ClaimToWallet(ctx context.Context, transferID common.Hash, recipient common.Address, chainID int64) (*domain.RelayerTxResult, error) {
	return s.claim(ctx, transferID, domain.ClaimActionToWallet, func(ctx context.Context) (*domain.RelayerTxResult, error) {
		return s.relayer.ClaimToWallet(ctx, transferID, recipient, chainID)
	})
}

func (s *ClaimService) ClaimToPayoutTreasury(ctx context.Context, transferID common.Hash, chainID int64) (*domain.RelayerTxResult, error) {
	return s.claim(ctx, transferID, domain.ClaimActionToPayoutTreasury, func(ctx context.Context) (*domain.RelayerTxResult, error) {
		return s.relayer.ClaimToPayoutTreasury(ctx, transferID, chainID)
	})
}

func (s *ClaimService) claim(
	ctx context.Context,
	transferID common.Hash,
	action domain.ClaimAction,
	run func(ctx context.Context) (*domain.RelayerTxResult, error),
) (*domain.RelayerTxResult, error) {
	id := transferID.Hex()
	log := s.log.With().Str("transfer_id", id).Str("action", string(action)).Logger()

	if result, err := s.cached(ctx, id, action, log); result != nil || err != nil {
		return result, err
	}

	token, held, err := s.guard.Acquire(ctx, id, s.guardTTL)
	switch {
	case err != nil:
		log.Warn().Err(err).Msg("claim guard unavailable, proceeding without it")
	case !held:
		return nil, apperror.ErrClaimInFlight(id)
	default:
		defer func() {
			if err := s.guard.Release(context.WithoutCancel(ctx), id, token); err != nil {
				log.Warn().Err(err).Msg("failed to release claim guard")
			}
		}()
		// A claim that held the guard before us may have finished in between.
		if result, err := s.cached(ctx, id, action, log); result != nil || err != nil {
			return result, err
		}
	}

	result, err := run(ctx)
	if err != nil {
		return nil, err
	}

	if result.Mode == domain.RelayerModeOnchain {
		record := &domain.ClaimRecord{Action: action, Result: *result}
		if err := s.results.Set(ctx, id, record, s.resultTTL); err != nil {
			log.Warn().Err(err).Msg("failed to cache claim result")
		}
	}
	return result, nil
}

// cached returns nil, nil on a miss or when the cache is unreachable.
// A claim recorded under a different action is a conflict.
func (s *ClaimService) cached(ctx context.Context, id string, action domain.ClaimAction, log zerolog.Logger) (*domain.RelayerTxResult, error) {
	record, err := s.results.Get(ctx, id)
	if err != nil {
		log.Warn().Err(err).Msg("claim result cache unavailable")
		return nil, nil
	}
	if record == nil {
		return nil, nil
	}
	if record.Action != action {
		return nil, apperror.ErrClaimActionMismatch(id, string(record.Action))
	}
	log.Info().Str("tx_hash", record.Result.TxHash).Msg("returning cached claim result")
	result := record.Result
	return &result, nil
}
