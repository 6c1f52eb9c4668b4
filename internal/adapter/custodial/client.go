package custodial

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"escrow-relay/config"
	"escrow-relay/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	accountsPath      = "/v2/evm/accounts"
	idempotencyHeader = "X-Idempotency-Key"
	walletAuthHeader  = "X-Wallet-Auth"
	maxResponseBody   = 1 << 20
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status    int    `json:"-"`
	ErrorType string `json:"errorType"`
	Message   string `json:"errorMessage"`
}

func (e *APIError) Error() string {
	if e.ErrorType != "" {
		return fmt.Sprintf("cdp api %d %s: %s", e.Status, e.ErrorType, e.Message)
	}
	return fmt.Sprintf("cdp api %d: %s", e.Status, e.Message)
}

// Client talks to the server wallet endpoints. Credentials are checked on
// first use so a misconfigured client still constructs.
type Client struct {
	cfg  config.CDPConfig
	http HTTPClient
	log  zerolog.Logger

	once   sync.Once
	base   *url.URL
	tokens *TokenIssuer
	err    error
}

func NewClient(cfg config.CDPConfig, httpClient HTTPClient, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{cfg: cfg, http: httpClient, log: log}
}

func (c *Client) init() error {
	c.once.Do(func() {
		switch {
		case strings.TrimSpace(c.cfg.APIKeyID) == "":
			c.err = apperror.ErrMissingConfiguration("relayer.cdp.api_key_id")
			return
		case strings.TrimSpace(c.cfg.APIKeySecret) == "":
			c.err = apperror.ErrMissingConfiguration("relayer.cdp.api_key_secret")
			return
		case strings.TrimSpace(c.cfg.WalletSecret) == "":
			c.err = apperror.ErrMissingConfiguration("relayer.cdp.wallet_secret")
			return
		}

		base, err := url.Parse(strings.TrimRight(strings.TrimSpace(c.cfg.BaseURL), "/"))
		if err != nil || base.Host == "" {
			c.err = apperror.ErrSignerConfiguration(fmt.Errorf("invalid relayer.cdp.base_url %q", c.cfg.BaseURL))
			return
		}

		tokens, err := NewTokenIssuer(c.cfg.APIKeyID, c.cfg.APIKeySecret, c.cfg.WalletSecret)
		if err != nil {
			c.err = apperror.ErrSignerConfiguration(err)
			return
		}
		c.base = base
		c.tokens = tokens
	})
	return c.err
}

type accountResponse struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

// GetOrCreateAccount resolves the EVM account registered under name,
// creating it when the API does not know it yet.
func (c *Client) GetOrCreateAccount(ctx context.Context, name string) (common.Address, error) {
	if err := c.init(); err != nil {
		return common.Address{}, err
	}

	var acct accountResponse
	err := c.do(ctx, http.MethodGet, accountsPath+"/by-name/"+url.PathEscape(name), nil, &acct)
	var apiErr *APIError
	switch {
	case err == nil:
	case errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound:
		if err := c.do(ctx, http.MethodPost, accountsPath, map[string]any{"name": name}, &acct); err != nil {
			return common.Address{}, apperror.ErrSignerRejected(fmt.Errorf("create account %q: %w", name, err))
		}
		c.log.Info().Str("account", name).Str("address", acct.Address).Msg("created custodial account")
	default:
		return common.Address{}, apperror.ErrSignerRejected(fmt.Errorf("get account %q: %w", name, err))
	}

	if !common.IsHexAddress(acct.Address) {
		return common.Address{}, apperror.ErrSignerRejected(fmt.Errorf("account %q has invalid address %q", name, acct.Address))
	}
	return common.HexToAddress(acct.Address), nil
}

type sendResponse struct {
	TransactionHash string `json:"transactionHash"`
}

// SendTransaction asks the API to sign and broadcast rawTx (0x RLP hex)
// from address on network.
func (c *Client) SendTransaction(ctx context.Context, address common.Address, network, rawTx string) (string, error) {
	if err := c.init(); err != nil {
		return "", err
	}

	path := accountsPath + "/" + address.Hex() + "/send/transaction"
	body := map[string]any{
		"network":     network,
		"transaction": rawTx,
	}

	var out sendResponse
	if err := c.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return "", apperror.ErrSignerRejected(fmt.Errorf("send transaction: %w", err))
	}
	if out.TransactionHash == "" {
		return "", apperror.ErrSignerRejected(errors.New("send transaction: response has no transaction hash"))
	}
	return out.TransactionHash, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	fullPath := c.base.Path + path
	target := *c.base
	target.Path = fullPath

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	bearer, err := c.tokens.Bearer(method, c.base.Host, fullPath)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Accept", "application/json")

	if method != http.MethodGet {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(idempotencyHeader, uuid.NewString())

		walletAuth, err := c.tokens.WalletAuth(method, c.base.Host, fullPath, payload)
		if err != nil {
			return err
		}
		req.Header.Set(walletAuthHeader, walletAuth)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, fullPath, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		if json.Unmarshal(respBody, apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(respBody))
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
