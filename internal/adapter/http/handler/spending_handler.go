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

// SpendingHandler handles spending-account endpoints.
type SpendingHandler struct {
	spendingSvc ports.SpendingService
}

// NewSpendingHandler creates a new SpendingHandler.
func NewSpendingHandler(spendingSvc ports.SpendingService) *SpendingHandler {
	return &SpendingHandler{spendingSvc: spendingSvc}
}

// Create handles POST /api/v1/spending.
func (h *SpendingHandler) Create(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	account, err := h.spendingSvc.InitializeSpendingAccount(c.Request.Context(), owner)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, toSpendingAccountResponse(account))
}

// UpdateLimit handles POST /api/v1/spending/limit. The new limit is derived
// from the current vault balance, not supplied by the caller.
func (h *SpendingHandler) UpdateLimit(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	account, err := h.spendingSvc.UpdateSpendingLimit(c.Request.Context(), owner)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toSpendingAccountResponse(account))
}

// Authorize handles POST /api/v1/spending/authorize.
func (h *SpendingHandler) Authorize(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	account, err := h.spendingSvc.AuthorizeSpend(c.Request.Context(), owner, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toSpendingAccountResponse(account))
}

// Reset handles POST /api/v1/spending/reset.
func (h *SpendingHandler) Reset(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	account, err := h.spendingSvc.ResetSpendTracker(c.Request.Context(), owner)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toSpendingAccountResponse(account))
}

func toSpendingAccountResponse(s *domain.SpendingAccount) dto.SpendingAccountResponse {
	return dto.SpendingAccountResponse{
		Address:       s.Address,
		OwnerID:       s.OwnerID.String(),
		SpendingLimit: s.SpendingLimit,
		AmountSpent:   s.AmountSpent,
		CreatedAt:     s.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     s.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
