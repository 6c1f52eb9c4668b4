package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"escrow-relay/config"
	"escrow-relay/internal/adapter/chain/evm"
	httpHandler "escrow-relay/internal/adapter/http/handler"
	"escrow-relay/internal/adapter/metrics"
	"escrow-relay/internal/adapter/signer"
	redisStorage "escrow-relay/internal/adapter/storage/redis"
	"escrow-relay/internal/contracts"
	"escrow-relay/internal/core/ports"
	"escrow-relay/internal/service"
	"escrow-relay/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	hmacSecret  = "integration-service-secret"
	relayerKey  = "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"
	senderKey   = "8f2a55949038a9610f50fb23b5883af3b4ecb3c3bb792cbcefbd1542c692be63"
	escrowAddr  = "0x00000000000000000000000000000000000000e5"
	chainID     = int64(84532)
	ringKeyHex  = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
	recipient   = "0x00000000000000000000000000000000000000a1"
	hintHash    = "0x2222222222222222222222222222222222222222222222222222222222222222"
	lockExpiry  = int64(1_900_000_000)
	lockedTotal = int64(1_000_000)
)

// testApp wires the real HTTP layer, middleware, services, redis stores, evm
// reader and local-key signer. Postgres is replaced by an in-memory repository
// and the chain by simChain.
type testApp struct {
	server *httptest.Server
	redis  *miniredis.Miniredis
	chain  *simChain
	sigSvc *service.HMACSignatureService
}

func testConfig(mode string) *config.Config {
	return &config.Config{
		App:   config.AppConfig{Environment: "development"},
		Chain: config.ChainConfig{RPCURL: "sim://base-sepolia", EscrowAddress: escrowAddr},
		Relayer: config.RelayerConfig{
			Mode:                mode,
			AllowSimulation:     true,
			RequireConfirmation: true,
			ConfirmTimeout:      5 * time.Second,
			ConfirmPollInterval: 5 * time.Millisecond,
			PrivateKey:          relayerKey,
		},
		SecretStore: config.SecretStoreConfig{
			Table:       "linked_account_secrets",
			MaxAttempts: 3,
			BaseBackoff: time.Millisecond,
			MaxBackoff:  10 * time.Millisecond,
		},
		Encryption: config.EncryptionConfig{Keys: fmt.Sprintf(`{"v1":%q}`, ringKeyHex), DefaultVersion: "v1"},
		Claims:     config.ClaimsConfig{GuardTTL: time.Minute, ResultTTL: time.Hour},
		API:        config.APIConfig{HMACSecret: hmacSecret},
	}
}

func newTestApp(t *testing.T, mode string) *testApp {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := testConfig(mode)
	log := logger.New("error", false)
	chain := newSimChain()

	clients := evm.NewClients(cfg.Chain, func(context.Context, string) (evm.Backend, error) {
		return chain, nil
	})
	registry := metrics.NewRegistry()
	codec := contracts.MustEscrowCodec()

	var backend ports.SignerBackend
	if mode == config.RelayerModeLocalKey {
		backend = signer.NewLocalKeySigner(cfg.Relayer, clients, log)
	}
	dispatcher := service.NewRelayerDispatcher(backend, service.NewReceiptConfirmer(clients, cfg.Relayer, log), codec, cfg, registry, log)
	claims := service.NewClaimService(dispatcher, redisStorage.NewClaimGuard(rdb), redisStorage.NewClaimResultCache(rdb), cfg.Claims, log)

	secretStore := service.NewSecretStore(newMemorySecretRepo(), inMemoryTransactor{}, service.NewEnvelopeCrypto(cfg.Encryption), cfg.SecretStore, registry, log)
	sigSvc := service.NewHMACSignatureService()

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Verifier:       service.NewEscrowLockVerifier(clients, codec, cfg, registry, log),
		Relayer:        claims,
		SecretStore:    secretStore,
		SigSvc:         sigSvc,
		NonceStore:     redisStorage.NewNonceStore(rdb),
		HMACSecret:     hmacSecret,
		RateLimitStore: redisStorage.NewRateLimitStore(rdb),
		HealthCheckers: []ports.HealthChecker{redisStorage.NewHealthCheck(rdb), evm.NewHealthCheck(clients)},
		Metrics:        registry.Handler(),
		Logger:         log,
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testApp{server: server, redis: mr, chain: chain, sigSvc: sigSvc}
}

type apiResponse struct {
	Status    int
	Data      json.RawMessage `json:"data"`
	ErrorCode string          `json:"error_code"`
}

// call signs the request the way a calling service would.
func (a *testApp) call(t *testing.T, method, path string, body interface{}) apiResponse {
	t.Helper()
	return a.callWithNonce(t, method, path, body, uuid.NewString())
}

func (a *testApp) callWithNonce(t *testing.T, method, path string, body interface{}, nonce string) apiResponse {
	t.Helper()

	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		require.NoError(t, err)
	}
	ts := time.Now().Unix()
	signature := a.sigSvc.Sign(hmacSecret, a.sigSvc.BuildCanonicalString(method, path, ts, nonce, string(raw)))

	req, err := http.NewRequest(method, a.server.URL+path, bytes.NewReader(raw))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Service-Signature", signature)
	req.Header.Set("X-Timestamp", strconv.FormatInt(ts, 10))
	req.Header.Set("X-Nonce", nonce)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := apiResponse{Status: resp.StatusCode}
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(data) > 0 {
		require.NoError(t, json.Unmarshal(data, &out))
	}
	return out
}

// lockOnChain signs a createTransfer from the sender key and mines it.
func (a *testApp) lockOnChain(t *testing.T, transferID common.Hash, status uint64) (common.Hash, common.Address) {
	t.Helper()

	key, err := crypto.HexToECDSA(senderKey)
	require.NoError(t, err)

	data, err := contracts.MustEscrowCodec().EncodeCreateTransfer(contracts.CreateTransferCall{
		TransferID:        transferID,
		Principal:         big.NewInt(lockedTotal),
		SponsorFee:        big.NewInt(0),
		Expiry:            uint64(lockExpiry),
		RecipientHintHash: common.HexToHash(hintHash),
	})
	require.NoError(t, err)

	to := common.HexToAddress(escrowAddr)
	tx, err := types.SignTx(types.NewTx(&types.LegacyTx{
		Nonce:    0,
		To:       &to,
		Value:    big.NewInt(0),
		Gas:      120_000,
		GasPrice: big.NewInt(1_000_000_000),
		Data:     data,
	}), types.LatestSignerForChainID(big.NewInt(chainID)), key)
	require.NoError(t, err)

	a.chain.include(tx, status)
	return tx.Hash(), crypto.PubkeyToAddress(key.PublicKey)
}

func newTransferID() common.Hash {
	return crypto.Keccak256Hash([]byte(uuid.NewString()))
}

// --- Integration Tests ---

func TestIntegration_HealthCheck(t *testing.T) {
	app := newTestApp(t, config.RelayerModeLocalKey)

	resp, err := http.Get(app.server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
}

func TestIntegration_UnsignedRequestRejected(t *testing.T) {
	app := newTestApp(t, config.RelayerModeLocalKey)

	resp, err := http.Post(app.server.URL+"/api/v1/claims/treasury", "application/json", bytes.NewBufferString(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestIntegration_ReplayedNonceRejected(t *testing.T) {
	app := newTestApp(t, config.RelayerModeLocalKey)

	first := app.callWithNonce(t, http.MethodGet, "/api/v1/linked-accounts/0xabc/count", nil, "fixed-nonce")
	assert.Equal(t, http.StatusOK, first.Status)

	replay := app.callWithNonce(t, http.MethodGet, "/api/v1/linked-accounts/0xabc/count", nil, "fixed-nonce")
	assert.Equal(t, http.StatusForbidden, replay.Status)
	assert.Equal(t, "SEC_003", replay.ErrorCode)
}

func TestIntegration_VerifyEscrowLock(t *testing.T) {
	app := newTestApp(t, config.RelayerModeLocalKey)

	transferID := newTransferID()
	txHash, sender := app.lockOnChain(t, transferID, types.ReceiptStatusSuccessful)

	req := map[string]interface{}{
		"tx_hash":                      txHash.Hex(),
		"expected_sender":              sender.Hex(),
		"chain_id":                     chainID,
		"expected_transfer_id":         transferID.Hex(),
		"expected_recipient_hint_hash": hintHash,
		"principal_amount":             strconv.FormatInt(lockedTotal, 10),
		"sponsor_fee_amount":           "0",
		"total_locked_amount":          strconv.FormatInt(lockedTotal, 10),
		"expiry":                       strconv.FormatInt(lockExpiry, 10),
	}

	resp := app.call(t, http.MethodPost, "/api/v1/escrow/verify", req)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.JSONEq(t, `{"valid":true}`, string(resp.Data))

	req["total_locked_amount"] = "999999"
	resp = app.call(t, http.MethodPost, "/api/v1/escrow/verify", req)
	require.Equal(t, http.StatusOK, resp.Status)

	var result struct {
		Valid  bool   `json:"valid"`
		Reason string `json:"reason"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.Reason)
}

func TestIntegration_ClaimToWalletOnchainAndCached(t *testing.T) {
	app := newTestApp(t, config.RelayerModeLocalKey)
	transferID := newTransferID()

	body := map[string]interface{}{
		"transfer_id":       transferID.Hex(),
		"recipient_address": recipient,
		"chain_id":          chainID,
	}

	first := app.call(t, http.MethodPost, "/api/v1/claims/wallet", body)
	require.Equal(t, http.StatusOK, first.Status, "error %s", first.ErrorCode)

	var claim struct {
		TxHash string `json:"tx_hash"`
		Mode   string `json:"mode"`
	}
	require.NoError(t, json.Unmarshal(first.Data, &claim))
	assert.Equal(t, "onchain", claim.Mode)
	assert.Regexp(t, `^0x[0-9a-f]{64}$`, claim.TxHash)

	second := app.call(t, http.MethodPost, "/api/v1/claims/wallet", body)
	require.Equal(t, http.StatusOK, second.Status)
	assert.JSONEq(t, string(first.Data), string(second.Data))
	assert.Equal(t, 1, app.chain.sentCount())
}

func TestIntegration_ClaimSimulatedWithoutBackend(t *testing.T) {
	app := newTestApp(t, "")

	resp := app.call(t, http.MethodPost, "/api/v1/claims/treasury", map[string]interface{}{
		"transfer_id": newTransferID().Hex(),
		"chain_id":    chainID,
	})
	require.Equal(t, http.StatusOK, resp.Status)

	var claim struct {
		TxHash string `json:"tx_hash"`
		Mode   string `json:"mode"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &claim))
	assert.Equal(t, "simulated", claim.Mode)
	assert.Regexp(t, `^0x[0-9a-f]{64}$`, claim.TxHash)
	assert.Zero(t, app.chain.sentCount())
}

func TestIntegration_LinkedAccountsLifecycle(t *testing.T) {
	app := newTestApp(t, config.RelayerModeLocalKey)
	owner := "0x00000000000000000000000000000000000000B2"
	base := "/api/v1/linked-accounts/" + owner

	for _, item := range []string{"item-2", "item-1"} {
		resp := app.call(t, http.MethodPut, base+"/items/"+item, map[string]string{"secret": "access-" + item})
		require.Equal(t, http.StatusNoContent, resp.Status, "error %s", resp.ErrorCode)
	}

	resp := app.call(t, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.JSONEq(t, `{"owner":"0x00000000000000000000000000000000000000b2","items":[
		{"item_id":"item-1","secret":"access-item-1"},
		{"item_id":"item-2","secret":"access-item-2"}]}`, string(resp.Data))

	resp = app.call(t, http.MethodPut, base+"/items/item-1", map[string]string{"secret": "rotated"})
	require.Equal(t, http.StatusNoContent, resp.Status)

	resp = app.call(t, http.MethodDelete, base+"/items/item-2", nil)
	require.Equal(t, http.StatusNoContent, resp.Status)

	resp = app.call(t, http.MethodGet, base, nil)
	assert.JSONEq(t, `{"owner":"0x00000000000000000000000000000000000000b2","items":[
		{"item_id":"item-1","secret":"rotated"}]}`, string(resp.Data))

	resp = app.call(t, http.MethodDelete, base, nil)
	require.Equal(t, http.StatusNoContent, resp.Status)

	resp = app.call(t, http.MethodGet, base+"/count", nil)
	assert.JSONEq(t, `{"owner":"0x00000000000000000000000000000000000000b2","count":0}`, string(resp.Data))
}

func TestIntegration_MetricsExposed(t *testing.T) {
	app := newTestApp(t, "")
	app.call(t, http.MethodPost, "/api/v1/claims/treasury", map[string]interface{}{
		"transfer_id": newTransferID().Hex(),
		"chain_id":    chainID,
	})

	resp, err := http.Get(app.server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(raw), "escrow_relay_claims_total")
}
