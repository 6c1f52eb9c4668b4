package dto

import (
	"regexp"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	safeStringRe = regexp.MustCompile(`^[a-zA-Z0-9_\-\.]+$`)
	hex32Re      = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("safe_id", validateSafeID)
		_ = v.RegisterValidation("hex32", validateHex32)
		_ = v.RegisterValidation("evm_address", validateEVMAddress)
	}
}

// validateSafeID allows alphanumeric, underscore, dash, and dot.
func validateSafeID(fl validator.FieldLevel) bool {
	return safeStringRe.MatchString(fl.Field().String())
}

// validateHex32 accepts a 0x-prefixed 32-byte value.
func validateHex32(fl validator.FieldLevel) bool {
	return hex32Re.MatchString(fl.Field().String())
}

func validateEVMAddress(fl validator.FieldLevel) bool {
	return common.IsHexAddress(fl.Field().String())
}
