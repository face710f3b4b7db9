package handler

import (
	"time"

	"collateral-ledger/internal/adapter/http/dto"
	"collateral-ledger/internal/core/domain"
	"collateral-ledger/internal/core/ports"
	"collateral-ledger/pkg/apperror"
	"collateral-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// VaultHandler handles vault lifecycle and fund-movement endpoints.
type VaultHandler struct {
	vaultSvc ports.VaultService
}

// NewVaultHandler creates a new VaultHandler.
func NewVaultHandler(vaultSvc ports.VaultService) *VaultHandler {
	return &VaultHandler{vaultSvc: vaultSvc}
}

// Create handles POST /api/v1/vault.
func (h *VaultHandler) Create(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	vault, err := h.vaultSvc.Initialize(c.Request.Context(), owner)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, toVaultResponse(vault))
}

// Get handles GET /api/v1/vault.
func (h *VaultHandler) Get(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	vault, err := h.vaultSvc.Get(c.Request.Context(), owner)
	if err != nil {
		response.Error(c, err)
		return
	}
	if vault == nil {
		response.Error(c, apperror.ErrNotFound("vault"))
		return
	}
	response.OK(c, toVaultResponse(vault))
}

// Deposit handles POST /api/v1/vault/deposit.
func (h *VaultHandler) Deposit(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	vault, err := h.vaultSvc.Deposit(c.Request.Context(), owner, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toVaultResponse(vault))
}

// Withdraw handles POST /api/v1/vault/withdraw.
func (h *VaultHandler) Withdraw(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	vault, err := h.vaultSvc.Withdraw(c.Request.Context(), owner, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toVaultResponse(vault))
}

func toVaultResponse(v *domain.Vault) dto.VaultResponse {
	return dto.VaultResponse{
		Address:   v.Address,
		OwnerID:   v.OwnerID.String(),
		Balance:   v.Balance,
		CreatedAt: v.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
