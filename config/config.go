package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Relayer modes accepted by relayer.mode. An empty mode means no signer backend.
const (
	RelayerModeLocalKey        = "local_key"
	RelayerModeManagedWebhook  = "managed_webhook"
	RelayerModeCDPServerWallet = "cdp_server_wallet"
)

const EnvironmentProduction = "production"

var safeIdentifier = regexp.MustCompile(`^[a-z_][a-z0-9_]{0,62}$`)

// IsSafeIdentifier reports whether name can be spliced into SQL as a bare
// lowercase identifier.
func IsSafeIdentifier(name string) bool {
	return safeIdentifier.MatchString(name)
}

// defaultCDPNetworks maps chain ids to CDP network names when no override is set.
var defaultCDPNetworks = map[int64]string{
	1:        "ethereum",
	11155111: "ethereum-sepolia",
	8453:     "base",
	84532:    "base-sepolia",
	137:      "polygon",
	10:       "optimism",
	42161:    "arbitrum",
}

// Config holds all application configuration.
type Config struct {
	App          AppConfig          `mapstructure:"app"`
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Redis        RedisConfig        `mapstructure:"redis"`
	Log          LogConfig          `mapstructure:"log"`
	Chain        ChainConfig        `mapstructure:"chain"`
	Relayer      RelayerConfig      `mapstructure:"relayer"`
	SecretStore  SecretStoreConfig  `mapstructure:"secret_store"`
	Encryption   EncryptionConfig   `mapstructure:"encryption"`
	Verification VerificationConfig `mapstructure:"verification"`
	Claims       ClaimsConfig       `mapstructure:"claims"`
	API          APIConfig          `mapstructure:"api"`
}

type AppConfig struct {
	Environment string `mapstructure:"environment"` // development, staging, production
}

func (a AppConfig) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(a.Environment), EnvironmentProduction)
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// ChainConfig holds the global chain endpoints plus per-chain overrides keyed
// by decimal chain id.
type ChainConfig struct {
	RPCURL        string                   `mapstructure:"rpc_url"`
	EscrowAddress string                   `mapstructure:"escrow_address"`
	Overrides     map[string]ChainOverride `mapstructure:"overrides"`
}

type ChainOverride struct {
	RPCURL        string `mapstructure:"rpc_url"`
	EscrowAddress string `mapstructure:"escrow_address"`
}

// EscrowAddressFor returns the per-chain escrow address, falling back to the
// global one. The result may be empty.
func (c ChainConfig) EscrowAddressFor(chainID int64) string {
	if o, ok := c.override(chainID); ok && strings.TrimSpace(o.EscrowAddress) != "" {
		return strings.TrimSpace(o.EscrowAddress)
	}
	return strings.TrimSpace(c.EscrowAddress)
}

// RPCURLFor returns the per-chain RPC endpoint, falling back to the global one.
func (c ChainConfig) RPCURLFor(chainID int64) string {
	if o, ok := c.override(chainID); ok && strings.TrimSpace(o.RPCURL) != "" {
		return strings.TrimSpace(o.RPCURL)
	}
	return strings.TrimSpace(c.RPCURL)
}

func (c ChainConfig) override(chainID int64) (ChainOverride, bool) {
	o, ok := c.Overrides[strconv.FormatInt(chainID, 10)]
	return o, ok
}

type RelayerConfig struct {
	Mode                string        `mapstructure:"mode"`
	AllowSimulation     bool          `mapstructure:"allow_simulation"`
	RequireConfirmation bool          `mapstructure:"require_confirmation"`
	ConfirmTimeout      time.Duration `mapstructure:"confirm_timeout"`
	ConfirmPollInterval time.Duration `mapstructure:"confirm_poll_interval"`
	PrivateKey          string        `mapstructure:"private_key"`
	Webhook             WebhookConfig `mapstructure:"webhook"`
	CDP                 CDPConfig     `mapstructure:"cdp"`
}

type WebhookConfig struct {
	URL     string        `mapstructure:"url"`
	Secret  string        `mapstructure:"secret"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CDPConfig configures the Coinbase CDP server wallet backend.
type CDPConfig struct {
	APIKeyID     string            `mapstructure:"api_key_id"`
	APIKeySecret string            `mapstructure:"api_key_secret"` // PEM encoded EC private key
	WalletSecret string            `mapstructure:"wallet_secret"`  // PEM or base64 DER EC private key
	BaseURL      string            `mapstructure:"base_url"`
	AccountName  string            `mapstructure:"account_name"`
	Networks     map[string]string `mapstructure:"networks"`
	AccountNames map[string]string `mapstructure:"account_names"`
}

// NetworkFor resolves the CDP network name for a chain: explicit override
// first, then the built-in table.
func (c CDPConfig) NetworkFor(chainID int64) (string, bool) {
	if n := strings.TrimSpace(c.Networks[strconv.FormatInt(chainID, 10)]); n != "" {
		return n, true
	}
	n, ok := defaultCDPNetworks[chainID]
	return n, ok
}

// AccountNameFor returns the custodial account name used on a chain.
func (c CDPConfig) AccountNameFor(chainID int64) string {
	if n := strings.TrimSpace(c.AccountNames[strconv.FormatInt(chainID, 10)]); n != "" {
		return n
	}
	return strings.TrimSpace(c.AccountName)
}

type SecretStoreConfig struct {
	Table       string        `mapstructure:"table"`
	MaxAttempts int           `mapstructure:"max_attempts"`
	BaseBackoff time.Duration `mapstructure:"base_backoff"`
	MaxBackoff  time.Duration `mapstructure:"max_backoff"`
}

// EncryptionConfig is the raw key ring material. Keys is a JSON object of
// version to key (hex or base64); Key is the single-key fallback.
type EncryptionConfig struct {
	Keys           string `mapstructure:"keys"`
	Key            string `mapstructure:"key"`
	ActiveVersion  string `mapstructure:"active_version"`
	DefaultVersion string `mapstructure:"default_version"`
}

type VerificationConfig struct {
	Skip bool `mapstructure:"skip"`
}

type ClaimsConfig struct {
	GuardTTL  time.Duration `mapstructure:"guard_ttl"`
	ResultTTL time.Duration `mapstructure:"result_ttl"`
}

type APIConfig struct {
	HMACSecret string `mapstructure:"hmac_secret"`
}

// Validate rejects settings that would be unsafe to run with.
func (c *Config) Validate() error {
	switch strings.TrimSpace(c.Relayer.Mode) {
	case "", RelayerModeLocalKey, RelayerModeManagedWebhook, RelayerModeCDPServerWallet:
	default:
		return fmt.Errorf("relayer.mode %q is not one of %s, %s, %s",
			c.Relayer.Mode, RelayerModeLocalKey, RelayerModeManagedWebhook, RelayerModeCDPServerWallet)
	}

	if !IsSafeIdentifier(c.SecretStore.Table) {
		return fmt.Errorf("secret_store.table %q is not a safe SQL identifier", c.SecretStore.Table)
	}
	if c.SecretStore.MaxAttempts < 1 {
		return fmt.Errorf("secret_store.max_attempts must be at least 1")
	}
	if c.SecretStore.MaxBackoff < c.SecretStore.BaseBackoff {
		return fmt.Errorf("secret_store.max_backoff must not be below base_backoff")
	}

	if c.Relayer.RequireConfirmation {
		if c.Relayer.ConfirmTimeout <= 0 || c.Relayer.ConfirmPollInterval <= 0 {
			return fmt.Errorf("relayer confirm_timeout and confirm_poll_interval must be positive")
		}
	}
	if c.Relayer.Webhook.Timeout <= 0 {
		return fmt.Errorf("relayer.webhook.timeout must be positive")
	}

	for id := range c.Chain.Overrides {
		if _, err := strconv.ParseInt(id, 10, 64); err != nil {
			return fmt.Errorf("chain.overrides key %q is not a chain id", id)
		}
	}
	return nil
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: RELAY_.
// Nested keys use underscore: RELAY_CHAIN_RPC_URL, RELAY_RELAYER_MODE, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("app.environment", "development")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "escrow_relay")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	v.SetDefault("chain.rpc_url", "")
	v.SetDefault("chain.escrow_address", "")

	v.SetDefault("relayer.mode", "")
	v.SetDefault("relayer.allow_simulation", false)
	v.SetDefault("relayer.require_confirmation", true)
	v.SetDefault("relayer.confirm_timeout", "2m")
	v.SetDefault("relayer.confirm_poll_interval", "3s")
	v.SetDefault("relayer.private_key", "")
	v.SetDefault("relayer.webhook.url", "")
	v.SetDefault("relayer.webhook.secret", "")
	v.SetDefault("relayer.webhook.timeout", "15s")
	v.SetDefault("relayer.cdp.api_key_id", "")
	v.SetDefault("relayer.cdp.api_key_secret", "")
	v.SetDefault("relayer.cdp.wallet_secret", "")
	v.SetDefault("relayer.cdp.base_url", "https://api.cdp.coinbase.com/platform")
	v.SetDefault("relayer.cdp.account_name", "escrow-relayer")

	v.SetDefault("secret_store.table", "linked_account_secrets")
	v.SetDefault("secret_store.max_attempts", 3)
	v.SetDefault("secret_store.base_backoff", "100ms")
	v.SetDefault("secret_store.max_backoff", "2s")

	v.SetDefault("encryption.keys", "")
	v.SetDefault("encryption.key", "")
	v.SetDefault("encryption.active_version", "")
	v.SetDefault("encryption.default_version", "v1")

	v.SetDefault("verification.skip", false)
	v.SetDefault("claims.guard_ttl", "5m")
	v.SetDefault("claims.result_ttl", "24h")
	v.SetDefault("api.hmac_secret", "")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// RELAY_RELAYER_WEBHOOK_URL -> relayer.webhook.url
	v.SetEnvPrefix("RELAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Env vars alone are enough to run.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}
