package contracts

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrCouldNotDecode is returned instead of partially decoded arguments.
	ErrCouldNotDecode = errors.New("could not decode call data")
	// ErrSelectorMismatch means the call data targets a different function.
	ErrSelectorMismatch = errors.New("call data selector does not match function")
)

// EscrowCodec packs and unpacks escrow contract calls.
type EscrowCodec struct {
	abi abi.ABI
}

func NewEscrowCodec() (*EscrowCodec, error) {
	parsed, err := abi.JSON(strings.NewReader(EscrowABI))
	if err != nil {
		return nil, fmt.Errorf("parse escrow abi: %w", err)
	}
	return &EscrowCodec{abi: parsed}, nil
}

// MustEscrowCodec panics if the embedded ABI does not parse.
func MustEscrowCodec() *EscrowCodec {
	c, err := NewEscrowCodec()
	if err != nil {
		panic(err)
	}
	return c
}

// DecodedCall is a call resolved from its selector, with arguments keyed by
// their ABI names.
type DecodedCall struct {
	Method string
	Args   map[string]interface{}
}

// CreateTransferCall holds the typed arguments of createTransfer.
type CreateTransferCall struct {
	TransferID        common.Hash
	Principal         *big.Int
	SponsorFee        *big.Int
	Expiry            uint64
	RecipientHintHash common.Hash
}

// Selector returns the 4-byte function selector for method.
func (c *EscrowCodec) Selector(method string) ([]byte, error) {
	m, ok := c.abi.Methods[method]
	if !ok {
		return nil, fmt.Errorf("unknown escrow method %q", method)
	}
	return m.ID, nil
}

// Encode packs args for method, type-checked against the ABI.
func (c *EscrowCodec) Encode(method string, args ...interface{}) ([]byte, error) {
	data, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", method, err)
	}
	return data, nil
}

func (c *EscrowCodec) EncodeCreateTransfer(call CreateTransferCall) ([]byte, error) {
	return c.Encode(MethodCreateTransfer,
		[32]byte(call.TransferID),
		call.Principal,
		call.SponsorFee,
		call.Expiry,
		[32]byte(call.RecipientHintHash),
	)
}

func (c *EscrowCodec) EncodeClaimToWallet(transferID common.Hash, recipient common.Address) ([]byte, error) {
	return c.Encode(MethodClaimToWallet, [32]byte(transferID), recipient)
}

func (c *EscrowCodec) EncodeClaimToPayoutTreasury(transferID common.Hash) ([]byte, error) {
	return c.Encode(MethodClaimToPayoutTreasury, [32]byte(transferID))
}

// Decode resolves the method from the selector and unpacks its arguments.
func (c *EscrowCodec) Decode(data []byte) (*DecodedCall, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("%w: %d bytes is shorter than a selector", ErrCouldNotDecode, len(data))
	}
	m, err := c.abi.MethodById(data[:4])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCouldNotDecode, err)
	}
	return unpack(m, data)
}

// DecodeFor decodes data only if its selector is method's selector.
func (c *EscrowCodec) DecodeFor(method string, data []byte) (*DecodedCall, error) {
	m, ok := c.abi.Methods[method]
	if !ok {
		return nil, fmt.Errorf("unknown escrow method %q", method)
	}
	if len(data) < 4 {
		return nil, fmt.Errorf("%w: %d bytes is shorter than a selector", ErrCouldNotDecode, len(data))
	}
	if !bytes.Equal(data[:4], m.ID) {
		return nil, fmt.Errorf("%w: got 0x%x, want 0x%x (%s)", ErrSelectorMismatch, data[:4], m.ID, method)
	}
	return unpack(&m, data)
}

// DecodeCreateTransfer decodes createTransfer call data into typed fields.
func (c *EscrowCodec) DecodeCreateTransfer(data []byte) (*CreateTransferCall, error) {
	decoded, err := c.DecodeFor(MethodCreateTransfer, data)
	if err != nil {
		return nil, err
	}

	transferID, ok1 := decoded.Args["transferId"].([32]byte)
	principal, ok2 := decoded.Args["principal"].(*big.Int)
	sponsorFee, ok3 := decoded.Args["sponsorFee"].(*big.Int)
	expiry, ok4 := decoded.Args["expiry"].(uint64)
	hint, ok5 := decoded.Args["recipientHintHash"].([32]byte)
	if !(ok1 && ok2 && ok3 && ok4 && ok5) {
		return nil, fmt.Errorf("%w: unexpected argument types for %s", ErrCouldNotDecode, MethodCreateTransfer)
	}

	return &CreateTransferCall{
		TransferID:        common.Hash(transferID),
		Principal:         principal,
		SponsorFee:        sponsorFee,
		Expiry:            expiry,
		RecipientHintHash: common.Hash(hint),
	}, nil
}

func unpack(m *abi.Method, data []byte) (*DecodedCall, error) {
	args := make(map[string]interface{}, len(m.Inputs))
	if err := m.Inputs.UnpackIntoMap(args, data[4:]); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCouldNotDecode, m.Name, err)
	}
	return &DecodedCall{Method: m.Name, Args: args}, nil
}
