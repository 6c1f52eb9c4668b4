package domain

import (
	"strings"
	"time"
)

// WrappedKey is the per-secret data key sealed under a ring key.
type WrappedKey struct {
	Ciphertext []byte `json:"ciphertext"`
	IV         []byte `json:"iv"`
	AuthTag    []byte `json:"auth_tag"`
}

// EncryptedPayload is an envelope: the secret sealed under a random data key,
// and that key sealed under the ring key named by KeyVersion.
type EncryptedPayload struct {
	Ciphertext []byte     `json:"ciphertext"`
	IV         []byte     `json:"iv"`       // 12 bytes
	AuthTag    []byte     `json:"auth_tag"` // 16 bytes
	WrappedKey WrappedKey `json:"wrapped_key"`
	KeyVersion string     `json:"key_version"`
}

// SecretRecord is one stored credential. (OwnerID, ItemID) is unique.
type SecretRecord struct {
	OwnerID   string           `json:"owner_id"`
	ItemID    string           `json:"item_id"`
	Payload   EncryptedPayload `json:"-"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// SecretItem is a decrypted record as handed back to callers.
type SecretItem struct {
	ItemID string `json:"item_id"`
	Secret string `json:"secret"`
}

// NormalizeOwner trims and lowercases an owner id (typically a wallet address).
func NormalizeOwner(owner string) string {
	return strings.ToLower(strings.TrimSpace(owner))
}

// SecretContext is the associated data binding a payload to its row.
func SecretContext(owner, itemID string) string {
	return owner + ":" + itemID
}
