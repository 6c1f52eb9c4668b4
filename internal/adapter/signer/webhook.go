package signer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"escrow-relay/config"
	"escrow-relay/internal/core/domain"
	"escrow-relay/pkg/apperror"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/rs/zerolog"
)

const (
	relayerSecretHeader = "X-Relayer-Secret"
	maxSignerBody       = 1 << 20
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// WebhookSigner delegates signing to an operator-run HTTP service.
type WebhookSigner struct {
	url     string
	secret  string
	timeout time.Duration
	chain   config.ChainConfig
	client  HTTPClient
	log     zerolog.Logger
}

func NewWebhookSigner(cfg config.RelayerConfig, chain config.ChainConfig, client HTTPClient, log zerolog.Logger) *WebhookSigner {
	if client == nil {
		client = http.DefaultClient
	}
	return &WebhookSigner{
		url:     strings.TrimSpace(cfg.Webhook.URL),
		secret:  cfg.Webhook.Secret,
		timeout: cfg.Webhook.Timeout,
		chain:   chain,
		client:  client,
		log:     log,
	}
}

type webhookCall struct {
	To   string `json:"to"`
	Data string `json:"data"`
}

type webhookRequest struct {
	Action          domain.ClaimAction `json:"action"`
	TransferID      string             `json:"transferId"`
	ChainID         int64              `json:"chainId"`
	RecipientWallet string             `json:"recipientWallet,omitempty"`
	EscrowAddress   string             `json:"escrowAddress"`
	RPCURL          string             `json:"rpcUrl,omitempty"`
	Call            webhookCall        `json:"call"`
}

func (s *WebhookSigner) Submit(ctx context.Context, call domain.ContractCall, sc domain.SubmitContext) (string, error) {
	if s.url == "" {
		return "", apperror.ErrMissingConfiguration("relayer.webhook.url")
	}

	body := webhookRequest{
		Action:        sc.Action,
		TransferID:    sc.TransferID.Hex(),
		ChainID:       sc.ChainID,
		EscrowAddress: sc.EscrowAddress.Hex(),
		RPCURL:        s.chain.RPCURLFor(sc.ChainID),
		Call: webhookCall{
			To:   call.To.Hex(),
			Data: hexutil.Encode(call.Data),
		},
	}
	if sc.Recipient != nil {
		body.RecipientWallet = sc.Recipient.Hex()
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encoding signer request: %w", err)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return "", apperror.ErrSignerConfiguration(fmt.Errorf("building signer request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	if s.secret != "" {
		req.Header.Set(relayerSecretHeader, s.secret)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", apperror.ErrSignerRejected(fmt.Errorf("calling signer webhook: %w", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxSignerBody))
	if err != nil {
		return "", apperror.ErrSignerRejected(fmt.Errorf("reading signer response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", apperror.ErrSignerRejected(fmt.Errorf("signer webhook returned %d: %s", resp.StatusCode, errorMessage(respBody)))
	}

	hash, ok := parseSignerResponse(respBody)
	if !ok {
		return "", apperror.ErrSignerRejected(errors.New("signer response has no valid transaction hash"))
	}

	s.log.Info().
		Str("tx_hash", hash).
		Str("action", string(sc.Action)).
		Str("transfer_id", body.TransferID).
		Int64("chain_id", sc.ChainID).
		Msg("signer webhook accepted claim")
	return hash, nil
}

// parseSignerResponse reads the first present field of txHash, hash and
// transactionHash. That field alone must be a well-formed 32-byte hash.
func parseSignerResponse(body []byte) (string, bool) {
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return "", false
	}
	for _, key := range []string{"txHash", "hash", "transactionHash"} {
		raw, present := fields[key]
		if !present {
			continue
		}
		v, ok := raw.(string)
		if !ok {
			return "", false
		}
		if _, valid := domain.ParseHash(v); !valid {
			return "", false
		}
		return v, true
	}
	return "", false
}

func errorMessage(body []byte) string {
	var fields struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &fields); err == nil {
		if fields.Message != "" {
			return fields.Message
		}
		if fields.Error != "" {
			return fields.Error
		}
	}
	text := strings.TrimSpace(string(body))
	if len(text) > 200 {
		text = text[:200]
	}
	return text
}
