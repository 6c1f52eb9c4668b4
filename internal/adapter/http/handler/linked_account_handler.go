package handler

import (
	"escrow-relay/internal/adapter/http/dto"
	"escrow-relay/internal/core/domain"
	"escrow-relay/internal/core/ports"
	"escrow-relay/pkg/apperror"
	"escrow-relay/pkg/response"

	"github.com/gin-gonic/gin"
)

// LinkedAccountHandler manages encrypted linked-account secrets per owner.
type LinkedAccountHandler struct {
	store ports.SecretStore
}

func NewLinkedAccountHandler(store ports.SecretStore) *LinkedAccountHandler {
	return &LinkedAccountHandler{store: store}
}

// List handles GET /api/v1/linked-accounts/:owner.
func (h *LinkedAccountHandler) List(c *gin.Context) {
	var uri dto.OwnerURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	items, err := h.store.Get(c.Request.Context(), uri.Owner)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := dto.LinkedAccountsResponse{
		Owner: domain.NormalizeOwner(uri.Owner),
		Items: make([]dto.LinkedAccountItem, 0, len(items)),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.LinkedAccountItem{ItemID: item.ItemID, Secret: item.Secret})
	}
	response.OK(c, resp)
}

// Count handles GET /api/v1/linked-accounts/:owner/count.
func (h *LinkedAccountHandler) Count(c *gin.Context) {
	var uri dto.OwnerURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	n, err := h.store.Count(c.Request.Context(), uri.Owner)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.LinkedAccountCountResponse{Owner: domain.NormalizeOwner(uri.Owner), Count: n})
}

// Upsert handles PUT /api/v1/linked-accounts/:owner/items/:item.
func (h *LinkedAccountHandler) Upsert(c *gin.Context) {
	var uri dto.LinkedAccountURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	var req dto.UpsertSecretRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	if err := h.store.Upsert(c.Request.Context(), uri.Owner, uri.ItemID, req.Secret); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Delete handles DELETE /api/v1/linked-accounts/:owner/items/:item.
func (h *LinkedAccountHandler) Delete(c *gin.Context) {
	var uri dto.LinkedAccountURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	if err := h.store.Delete(c.Request.Context(), uri.Owner, uri.ItemID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DeleteAll handles DELETE /api/v1/linked-accounts/:owner.
func (h *LinkedAccountHandler) DeleteAll(c *gin.Context) {
	var uri dto.OwnerURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	if err := h.store.DeleteAll(c.Request.Context(), uri.Owner); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
