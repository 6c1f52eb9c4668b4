package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// Code families.
const (
	prefixValidation    = "VAL_"
	prefixConfiguration = "CFG_"
	prefixChain         = "CHAIN_"
	prefixRelay         = "RELAY_"
	prefixStore         = "STORE_"
	prefixCrypto        = "CRYPTO_"
)

// HasCode reports whether err wraps an AppError with the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Code == code
}

// IsConfiguration reports whether err belongs to the configuration family.
// The relayer uses this to decide between simulation and a hard failure.
func IsConfiguration(err error) bool {
	return hasPrefix(err, prefixConfiguration)
}

// IsValidation reports whether err belongs to the validation family.
func IsValidation(err error) bool {
	return hasPrefix(err, prefixValidation)
}

func hasPrefix(err error, prefix string) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return strings.HasPrefix(appErr.Code, prefix)
}

// ---- Validation (VAL) ----

// Validation returns a VAL_001 error with a caller supplied reason.
func Validation(message string) *AppError {
	return New(prefixValidation+"001", message, http.StatusBadRequest)
}

func ErrInvalidHash(field string) *AppError {
	return New(prefixValidation+"002", fmt.Sprintf("%s must be a 32-byte hex value", field), http.StatusBadRequest)
}

func ErrInvalidAddress(field string) *AppError {
	return New(prefixValidation+"003", fmt.Sprintf("%s must be a hex address", field), http.StatusBadRequest)
}

// ---- Configuration (CFG) ----

func ErrMissingConfiguration(setting string) *AppError {
	return New(prefixConfiguration+"001", fmt.Sprintf("missing configuration: %s", setting), http.StatusServiceUnavailable)
}

func ErrEscrowNotConfigured(chainID int64) *AppError {
	return New(prefixConfiguration+"002", fmt.Sprintf("escrow contract not configured for chain %d", chainID), http.StatusServiceUnavailable)
}

func ErrUnsupportedNetwork(chainID int64) *AppError {
	return New(prefixConfiguration+"003", fmt.Sprintf("no network mapping for chain %d", chainID), http.StatusServiceUnavailable)
}

func ErrSignerConfiguration(err error) *AppError {
	return Wrap(prefixConfiguration+"004", "signer backend misconfigured", http.StatusServiceUnavailable, err)
}

func ErrNoSignerBackend() *AppError {
	return New(prefixConfiguration+"005", "no relayer backend configured", http.StatusServiceUnavailable)
}

// ---- Chain (CHAIN) ----

func ErrChainRPC(err error) *AppError {
	return Wrap(prefixChain+"001", "chain rpc failure", http.StatusBadGateway, err)
}

func ErrTransactionReverted(txHash string) *AppError {
	return New(prefixChain+"002", fmt.Sprintf("transaction %s reverted", txHash), http.StatusBadGateway)
}

// ErrConfirmationTimeout carries the last transient error seen while polling, if any.
func ErrConfirmationTimeout(txHash string, lastErr error) *AppError {
	return Wrap(prefixChain+"003", fmt.Sprintf("timed out waiting for receipt of %s", txHash), http.StatusGatewayTimeout, lastErr)
}

// ---- Relay (RELAY) ----

func ErrSignerRejected(err error) *AppError {
	return Wrap(prefixRelay+"001", "signer backend rejected the request", http.StatusBadGateway, err)
}

func ErrClaimInFlight(transferID string) *AppError {
	return New(prefixRelay+"002", fmt.Sprintf("claim already in flight for transfer %s", transferID), http.StatusConflict)
}

// ErrClaimActionMismatch is returned when a transfer was already settled by a different claim action.
func ErrClaimActionMismatch(transferID string, settledBy string) *AppError {
	return New(prefixRelay+"003", fmt.Sprintf("transfer %s was already claimed via %s", transferID, settledBy), http.StatusConflict)
}

// ---- Secret store (STORE) ----

func ErrStorage(err error) *AppError {
	return Wrap(prefixStore+"001", "secret store failure", http.StatusInternalServerError, err)
}

// ---- Crypto (CRYPTO) ----

func ErrEncryptionFailure(err error) *AppError {
	return Wrap(prefixCrypto+"001", "encryption failure", http.StatusInternalServerError, err)
}

func ErrUnknownKeyVersion(version string) *AppError {
	return New(prefixCrypto+"002", fmt.Sprintf("unknown key version %q", version), http.StatusInternalServerError)
}

func ErrDecryptionFailure(err error) *AppError {
	return Wrap(prefixCrypto+"003", "decryption failure", http.StatusInternalServerError, err)
}

// ---- Security (SEC) ----

func ErrInvalidSignature() *AppError {
	return New("SEC_001", "Invalid signature", http.StatusUnauthorized)
}

func ErrTimestampExpired() *AppError {
	return New("SEC_002", "Request timestamp expired", http.StatusForbidden)
}

func ErrNonceUsed() *AppError {
	return New("SEC_003", "Nonce has already been used", http.StatusForbidden)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// InternalError wraps an unexpected internal error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}
