package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"escrow-relay/config"
	"escrow-relay/internal/core/domain"
	"escrow-relay/pkg/apperror"
)

const (
	keySize           = 32
	ivSize            = 12
	tagSize           = 16
	defaultKeyVersion = "v1"
)

// KeyRing holds the wrapping keys by version. It is read-only once built.
type KeyRing struct {
	keys   map[string][]byte
	active string
}

// ParseKeyRing builds a ring from encryption.keys (a JSON object of version to
// hex or base64 key) or, failing that, from encryption.key under the default
// version. Every key must decode to exactly 32 bytes.
func ParseKeyRing(cfg config.EncryptionConfig) (*KeyRing, error) {
	defaultVersion := strings.TrimSpace(cfg.DefaultVersion)
	if defaultVersion == "" {
		defaultVersion = defaultKeyVersion
	}

	keys := make(map[string][]byte)
	switch {
	case strings.TrimSpace(cfg.Keys) != "":
		var raw map[string]string
		if err := json.Unmarshal([]byte(cfg.Keys), &raw); err != nil {
			return nil, fmt.Errorf("encryption.keys is not a JSON object: %w", err)
		}
		for version, material := range raw {
			version = strings.TrimSpace(version)
			if version == "" {
				return nil, fmt.Errorf("encryption.keys has an empty version")
			}
			key, err := decodeKey(material)
			if err != nil {
				return nil, fmt.Errorf("encryption key %s: %w", version, err)
			}
			keys[version] = key
		}
	case strings.TrimSpace(cfg.Key) != "":
		key, err := decodeKey(cfg.Key)
		if err != nil {
			return nil, fmt.Errorf("encryption key %s: %w", defaultVersion, err)
		}
		keys[defaultVersion] = key
	}

	if len(keys) == 0 {
		return nil, apperror.ErrMissingConfiguration("encryption.keys or encryption.key")
	}

	active := strings.TrimSpace(cfg.ActiveVersion)
	if active == "" {
		active = defaultVersion
	}
	if _, ok := keys[active]; !ok {
		return nil, fmt.Errorf("active key version %q is not in the key ring", active)
	}

	return &KeyRing{keys: keys, active: active}, nil
}

func decodeKey(material string) ([]byte, error) {
	material = strings.TrimSpace(material)
	hexPart := strings.TrimPrefix(material, "0x")
	if len(hexPart) == 2*keySize {
		if key, err := hex.DecodeString(hexPart); err == nil {
			return key, nil
		}
	}
	key, err := base64.StdEncoding.DecodeString(material)
	if err != nil {
		return nil, fmt.Errorf("key is neither 64 hex chars nor base64")
	}
	if len(key) != keySize {
		return nil, fmt.Errorf("key must be %d bytes, got %d", keySize, len(key))
	}
	return key, nil
}

// Active returns the version used for new encryptions.
func (r *KeyRing) Active() string {
	return r.active
}

// Versions lists the known versions in sorted order.
func (r *KeyRing) Versions() []string {
	out := make([]string, 0, len(r.keys))
	for v := range r.keys {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func (r *KeyRing) key(version string) ([]byte, bool) {
	k, ok := r.keys[version]
	return k, ok
}

// EnvelopeCrypto implements ports.EnvelopeCrypto with AES-256-GCM on both
// tiers. The key ring is parsed on first use.
type EnvelopeCrypto struct {
	cfg  config.EncryptionConfig
	once sync.Once
	ring *KeyRing
	err  error
}

func NewEnvelopeCrypto(cfg config.EncryptionConfig) *EnvelopeCrypto {
	return &EnvelopeCrypto{cfg: cfg}
}

// NewEnvelopeCryptoWithRing skips configuration parsing.
func NewEnvelopeCryptoWithRing(ring *KeyRing) *EnvelopeCrypto {
	e := &EnvelopeCrypto{ring: ring}
	e.once.Do(func() {})
	return e
}

// KeyRing returns the parsed ring, parsing it on the first call. A parse
// failure is sticky for the life of the process.
func (e *EnvelopeCrypto) KeyRing() (*KeyRing, error) {
	e.once.Do(func() {
		e.ring, e.err = ParseKeyRing(e.cfg)
	})
	return e.ring, e.err
}

// Encrypt seals plaintext under a fresh data key and wraps that key with the
// active ring key. context is authenticated on both tiers.
func (e *EnvelopeCrypto) Encrypt(plaintext []byte, context string) (*domain.EncryptedPayload, error) {
	ring, err := e.KeyRing()
	if err != nil {
		return nil, apperror.ErrEncryptionFailure(err)
	}
	wrappingKey, _ := ring.key(ring.active)

	dataKey := make([]byte, keySize)
	if _, err := io.ReadFull(rand.Reader, dataKey); err != nil {
		return nil, apperror.ErrEncryptionFailure(fmt.Errorf("generating data key: %w", err))
	}

	ct, iv, tag, err := seal(dataKey, plaintext, []byte(context))
	if err != nil {
		return nil, apperror.ErrEncryptionFailure(err)
	}
	wct, wiv, wtag, err := seal(wrappingKey, dataKey, []byte(context))
	if err != nil {
		return nil, apperror.ErrEncryptionFailure(err)
	}

	return &domain.EncryptedPayload{
		Ciphertext: ct,
		IV:         iv,
		AuthTag:    tag,
		WrappedKey: domain.WrappedKey{Ciphertext: wct, IV: wiv, AuthTag: wtag},
		KeyVersion: ring.active,
	}, nil
}

// Decrypt unwraps the data key with the ring key named by the payload. A
// version missing from the ring fails closed.
func (e *EnvelopeCrypto) Decrypt(payload *domain.EncryptedPayload, context string) ([]byte, error) {
	if payload == nil {
		return nil, apperror.ErrDecryptionFailure(fmt.Errorf("nil payload"))
	}
	ring, err := e.KeyRing()
	if err != nil {
		return nil, apperror.ErrDecryptionFailure(err)
	}
	wrappingKey, ok := ring.key(payload.KeyVersion)
	if !ok {
		return nil, apperror.ErrUnknownKeyVersion(payload.KeyVersion)
	}

	dataKey, err := open(wrappingKey, payload.WrappedKey.Ciphertext, payload.WrappedKey.IV, payload.WrappedKey.AuthTag, []byte(context))
	if err != nil {
		return nil, apperror.ErrDecryptionFailure(fmt.Errorf("unwrapping data key: %w", err))
	}
	if len(dataKey) != keySize {
		return nil, apperror.ErrDecryptionFailure(fmt.Errorf("data key is %d bytes", len(dataKey)))
	}

	plaintext, err := open(dataKey, payload.Ciphertext, payload.IV, payload.AuthTag, []byte(context))
	if err != nil {
		return nil, apperror.ErrDecryptionFailure(err)
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating GCM: %w", err)
	}
	return aesGCM, nil
}

// seal returns ciphertext, iv and tag as separate slices.
func seal(key, plaintext, aad []byte) (ct, iv, tag []byte, err error) {
	aesGCM, err := newGCM(key)
	if err != nil {
		return nil, nil, nil, err
	}

	iv = make([]byte, ivSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, nil, nil, fmt.Errorf("generating iv: %w", err)
	}

	sealed := aesGCM.Seal(nil, iv, plaintext, aad)
	split := len(sealed) - tagSize
	return sealed[:split], iv, sealed[split:], nil
}

func open(key, ct, iv, tag, aad []byte) ([]byte, error) {
	if len(iv) != ivSize {
		return nil, fmt.Errorf("iv must be %d bytes, got %d", ivSize, len(iv))
	}
	if len(tag) != tagSize {
		return nil, fmt.Errorf("auth tag must be %d bytes, got %d", tagSize, len(tag))
	}
	aesGCM, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	sealed := make([]byte, 0, len(ct)+len(tag))
	sealed = append(sealed, ct...)
	sealed = append(sealed, tag...)

	plaintext, err := aesGCM.Open(nil, iv, sealed, aad)
	if err != nil {
		return nil, fmt.Errorf("decrypting: %w", err)
	}
	return plaintext, nil
}
