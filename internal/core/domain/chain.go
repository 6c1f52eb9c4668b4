package domain

import (
	"math/big"
	"regexp"

	"github.com/ethereum/go-ethereum/common"
)

// ChainTransaction is the subset of a mined or pending transaction the core reads.
type ChainTransaction struct {
	Hash  common.Hash
	From  common.Address
	To    *common.Address // nil for contract creation
	Data  []byte
	Value *big.Int
}

// ChainReceipt is the terminal state of a mined transaction.
type ChainReceipt struct {
	TxHash      common.Hash
	Status      uint64
	BlockNumber uint64
}

// ReceiptStatusSuccessful matches the EVM receipt status for a successful execution.
const ReceiptStatusSuccessful uint64 = 1

func (r *ChainReceipt) Succeeded() bool {
	return r.Status == ReceiptStatusSuccessful
}

var (
	hash32Pattern  = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)
	addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
)

// ParseHash accepts exactly 0x followed by 64 hex digits.
func ParseHash(s string) (common.Hash, bool) {
	if !hash32Pattern.MatchString(s) {
		return common.Hash{}, false
	}
	return common.HexToHash(s), true
}

// ParseAddress accepts exactly 0x followed by 40 hex digits. Checksums are not enforced.
func ParseAddress(s string) (common.Address, bool) {
	if !addressPattern.MatchString(s) {
		return common.Address{}, false
	}
	return common.HexToAddress(s), true
}
