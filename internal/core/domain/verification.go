package domain

// EscrowLockVerificationRequest describes the lock a caller expects a
// transaction to have performed. Amounts are decimal strings in the token's
// smallest unit; Expiry is unix seconds or RFC3339.
type EscrowLockVerificationRequest struct {
	TxHash                    string `json:"tx_hash"`
	ExpectedSender            string `json:"expected_sender"`
	ChainID                   int64  `json:"chain_id"`
	ExpectedTransferID        string `json:"expected_transfer_id"`
	ExpectedRecipientHintHash string `json:"expected_recipient_hint_hash"`
	PrincipalAmount           string `json:"principal_amount"`
	SponsorFeeAmount          string `json:"sponsor_fee_amount"`
	TotalLockedAmount         string `json:"total_locked_amount"`
	Expiry                    string `json:"expiry"`
}

// VerificationResult is all-or-nothing: Reason is set only when Valid is false.
type VerificationResult struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

func Verified() VerificationResult {
	return VerificationResult{Valid: true}
}

func Rejected(reason string) VerificationResult {
	return VerificationResult{Valid: false, Reason: reason}
}
