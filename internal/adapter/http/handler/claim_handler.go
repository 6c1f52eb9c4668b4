package handler

import (
	"escrow-relay/internal/adapter/http/dto"
	"escrow-relay/internal/core/domain"
	"escrow-relay/internal/core/ports"
	"escrow-relay/pkg/apperror"
	"escrow-relay/pkg/response"

	"github.com/gin-gonic/gin"
)

// ClaimHandler exposes the relayer's two claim actions.
type ClaimHandler struct {
	relayer ports.Relayer
}

func NewClaimHandler(relayer ports.Relayer) *ClaimHandler {
	return &ClaimHandler{relayer: relayer}
}

// ClaimToWallet handles POST /api/v1/claims/wallet.
func (h *ClaimHandler) ClaimToWallet(c *gin.Context) {
	var req dto.ClaimToWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	transferID, ok := domain.ParseHash(req.TransferID)
	if !ok {
		response.Error(c, apperror.ErrInvalidHash("transfer_id"))
		return
	}
	recipient, ok := domain.ParseAddress(req.RecipientAddress)
	if !ok {
		response.Error(c, apperror.ErrInvalidAddress("recipient_address"))
		return
	}

	result, err := h.relayer.ClaimToWallet(c.Request.Context(), transferID, recipient, req.ChainID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toClaimResponse(result))
}

// ClaimToPayoutTreasury handles POST /api/v1/claims/treasury.
func (h *ClaimHandler) ClaimToPayoutTreasury(c *gin.Context) {
	var req dto.ClaimToTreasuryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	transferID, ok := domain.ParseHash(req.TransferID)
	if !ok {
		response.Error(c, apperror.ErrInvalidHash("transfer_id"))
		return
	}

	result, err := h.relayer.ClaimToPayoutTreasury(c.Request.Context(), transferID, req.ChainID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toClaimResponse(result))
}

func toClaimResponse(r *domain.RelayerTxResult) dto.ClaimResponse {
	return dto.ClaimResponse{TxHash: r.TxHash, Mode: string(r.Mode)}
}
