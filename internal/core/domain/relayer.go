package domain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// RelayerMode tells the caller whether a claim really hit the chain.
type RelayerMode string

const (
	RelayerModeOnchain   RelayerMode = "onchain"
	RelayerModeSimulated RelayerMode = "simulated"
)

// RelayerTxResult is returned by every claim operation.
type RelayerTxResult struct {
	TxHash string      `json:"tx_hash"`
	Mode   RelayerMode `json:"mode"`
}

// ClaimAction names the privileged escrow function being relayed.
type ClaimAction string

const (
	ClaimActionToWallet         ClaimAction = "claimToWallet"
	ClaimActionToPayoutTreasury ClaimAction = "claimToPayoutTreasury"
)

// ClaimRecord is a confirmed claim remembered per transfer.
type ClaimRecord struct {
	Action ClaimAction     `json:"action"`
	Result RelayerTxResult `json:"result"`
}

// ContractCall is an encoded call ready for a signer.
type ContractCall struct {
	To    common.Address
	Data  []byte
	Value *big.Int
}

// SubmitContext carries the claim metadata some signers forward to their backend.
type SubmitContext struct {
	Action        ClaimAction
	TransferID    common.Hash
	ChainID       int64
	Recipient     *common.Address
	EscrowAddress common.Address
}
