// Package custodial is a client for the Coinbase CDP server wallet API.
package custodial

import (
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenTTL = 2 * time.Minute

// TokenIssuer mints the two ES256 JWTs the API expects: a bearer token per
// request and a wallet-auth token for writes.
type TokenIssuer struct {
	keyID     string
	apiKey    *ecdsa.PrivateKey
	walletKey *ecdsa.PrivateKey
	now       func() time.Time
}

// NewTokenIssuer parses both keys. walletSecret may be empty for read-only use.
func NewTokenIssuer(keyID, apiKeySecret, walletSecret string) (*TokenIssuer, error) {
	apiKey, err := parseECKey(apiKeySecret)
	if err != nil {
		return nil, fmt.Errorf("api key secret: %w", err)
	}

	var walletKey *ecdsa.PrivateKey
	if strings.TrimSpace(walletSecret) != "" {
		walletKey, err = parseECKey(walletSecret)
		if err != nil {
			return nil, fmt.Errorf("wallet secret: %w", err)
		}
	}

	return &TokenIssuer{
		keyID:     keyID,
		apiKey:    apiKey,
		walletKey: walletKey,
		now:       time.Now,
	}, nil
}

// Bearer signs a token scoped to one "METHOD host/path" URI.
func (t *TokenIssuer) Bearer(method, host, path string) (string, error) {
	now := t.now()
	claims := jwt.MapClaims{
		"sub":  t.keyID,
		"iss":  "cdp",
		"aud":  []string{"cdp_service"},
		"nbf":  now.Unix(),
		"exp":  now.Add(tokenTTL).Unix(),
		"uris": []string{method + " " + host + path},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)
	token.Header["kid"] = t.keyID
	token.Header["nonce"] = randomNonce()

	signed, err := token.SignedString(t.apiKey)
	if err != nil {
		return "", fmt.Errorf("signing bearer token: %w", err)
	}
	return signed, nil
}

// WalletAuth signs a token binding the request body via its SHA-256.
func (t *TokenIssuer) WalletAuth(method, host, path string, body []byte) (string, error) {
	if t.walletKey == nil {
		return "", errors.New("wallet secret not configured")
	}

	now := t.now()
	claims := jwt.MapClaims{
		"iat":  now.Unix(),
		"nbf":  now.Unix(),
		"jti":  uuid.NewString(),
		"uris": []string{method + " " + host + path},
	}
	if len(body) > 0 {
		sum := sha256.Sum256(body)
		claims["reqHash"] = hex.EncodeToString(sum[:])
	}

	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)
	signed, err := token.SignedString(t.walletKey)
	if err != nil {
		return "", fmt.Errorf("signing wallet token: %w", err)
	}
	return signed, nil
}

// parseECKey accepts a PEM block or base64 DER (PKCS#8 or SEC1).
func parseECKey(material string) (*ecdsa.PrivateKey, error) {
	material = strings.TrimSpace(strings.ReplaceAll(material, `\n`, "\n"))
	if material == "" {
		return nil, errors.New("empty key")
	}
	if strings.Contains(material, "-----BEGIN") {
		return jwt.ParseECPrivateKeyFromPEM([]byte(material))
	}

	der, err := base64.StdEncoding.DecodeString(material)
	if err != nil {
		return nil, fmt.Errorf("decoding key: %w", err)
	}
	if key, err := x509.ParsePKCS8PrivateKey(der); err == nil {
		ec, ok := key.(*ecdsa.PrivateKey)
		if !ok {
			return nil, errors.New("key is not an EC private key")
		}
		return ec, nil
	}
	return x509.ParseECPrivateKey(der)
}

func randomNonce() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
