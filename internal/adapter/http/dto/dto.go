package dto

// VerifyEscrowRequest is the body for POST /escrow/verify. Field formats are
// checked by the verifier so malformed input comes back as {valid:false}.
type VerifyEscrowRequest struct {
	TxHash                    string `json:"tx_hash" binding:"required"`
	ExpectedSender            string `json:"expected_sender" binding:"required"`
	ChainID                   int64  `json:"chain_id" binding:"required,gt=0"`
	ExpectedTransferID        string `json:"expected_transfer_id" binding:"required"`
	ExpectedRecipientHintHash string `json:"expected_recipient_hint_hash" binding:"required"`
	PrincipalAmount           string `json:"principal_amount" binding:"required"`
	SponsorFeeAmount          string `json:"sponsor_fee_amount" binding:"required"`
	TotalLockedAmount         string `json:"total_locked_amount" binding:"required"`
	Expiry                    string `json:"expiry" binding:"required"`
}

// VerifyEscrowResponse mirrors domain.VerificationResult.
type VerifyEscrowResponse struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// ClaimToWalletRequest releases a locked transfer to a recipient wallet.
type ClaimToWalletRequest struct {
	TransferID       string `json:"transfer_id" binding:"required,hex32"`
	RecipientAddress string `json:"recipient_address" binding:"required,evm_address"`
	ChainID          int64  `json:"chain_id" binding:"required,gt=0"`
}

// ClaimToTreasuryRequest releases a locked transfer to the payout treasury.
type ClaimToTreasuryRequest struct {
	TransferID string `json:"transfer_id" binding:"required,hex32"`
	ChainID    int64  `json:"chain_id" binding:"required,gt=0"`
}

// ClaimResponse is returned by both claim endpoints.
type ClaimResponse struct {
	TxHash string `json:"tx_hash"`
	Mode   string `json:"mode"`
}

// OwnerURI binds the :owner path segment.
type OwnerURI struct {
	Owner string `uri:"owner" binding:"required,max=128"`
}

// LinkedAccountURI binds :owner and :item.
type LinkedAccountURI struct {
	Owner  string `uri:"owner" binding:"required,max=128"`
	ItemID string `uri:"item" binding:"required,max=128,safe_id"`
}

// UpsertSecretRequest stores or replaces the secret for one item.
type UpsertSecretRequest struct {
	Secret string `json:"secret" binding:"required,max=4096"`
}

// LinkedAccountItem is one decrypted item.
type LinkedAccountItem struct {
	ItemID string `json:"item_id"`
	Secret string `json:"secret"`
}

// LinkedAccountsResponse lists an owner's items.
type LinkedAccountsResponse struct {
	Owner string              `json:"owner"`
	Items []LinkedAccountItem `json:"items"`
}

// LinkedAccountCountResponse is returned by GET …/:owner/count.
type LinkedAccountCountResponse struct {
	Owner string `json:"owner"`
	Count int    `json:"count"`
}
