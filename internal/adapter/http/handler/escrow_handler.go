package handler

import (
	"escrow-relay/internal/adapter/http/dto"
	"escrow-relay/internal/core/domain"
	"escrow-relay/internal/core/ports"
	"escrow-relay/pkg/apperror"
	"escrow-relay/pkg/response"

	"github.com/gin-gonic/gin"
)

// EscrowHandler handles escrow lock verification.
type EscrowHandler struct {
	verifier ports.EscrowVerifier
}

func NewEscrowHandler(verifier ports.EscrowVerifier) *EscrowHandler {
	return &EscrowHandler{verifier: verifier}
}

// Verify handles POST /api/v1/escrow/verify. A failed verification is a 200
// with valid=false; only an unparseable body is a 400.
func (h *EscrowHandler) Verify(c *gin.Context) {
	var req dto.VerifyEscrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result := h.verifier.Verify(c.Request.Context(), domain.EscrowLockVerificationRequest{
		TxHash:                    req.TxHash,
		ExpectedSender:            req.ExpectedSender,
		ChainID:                   req.ChainID,
		ExpectedTransferID:        req.ExpectedTransferID,
		ExpectedRecipientHintHash: req.ExpectedRecipientHintHash,
		PrincipalAmount:           req.PrincipalAmount,
		SponsorFeeAmount:          req.SponsorFeeAmount,
		TotalLockedAmount:         req.TotalLockedAmount,
		Expiry:                    req.Expiry,
	})

	response.OK(c, dto.VerifyEscrowResponse{Valid: result.Valid, Reason: result.Reason})
}
