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

// StakingHandler handles treasury and staking endpoints.
type StakingHandler struct {
	stakingSvc ports.StakingService
}

// NewStakingHandler creates a new StakingHandler.
func NewStakingHandler(stakingSvc ports.StakingService) *StakingHandler {
	return &StakingHandler{stakingSvc: stakingSvc}
}

// CreateTreasury handles POST /api/v1/treasury. The treasury is a shared
// singleton; repeated calls return the existing pool as a conflict.
func (h *StakingHandler) CreateTreasury(c *gin.Context) {
	if _, ok := ownerID(c); !ok {
		return
	}

	treasury, err := h.stakingSvc.InitializeTreasury(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, toTreasuryResponse(treasury))
}

// CreateYieldAccount handles POST /api/v1/yield.
func (h *StakingHandler) CreateYieldAccount(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	account, err := h.stakingSvc.InitializeYieldAccount(c.Request.Context(), owner)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, toYieldAccountResponse(account))
}

// Stake handles POST /api/v1/staking/stake.
func (h *StakingHandler) Stake(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	account, err := h.stakingSvc.Stake(c.Request.Context(), owner, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toYieldAccountResponse(account))
}

// Unstake handles POST /api/v1/staking/unstake.
func (h *StakingHandler) Unstake(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	account, err := h.stakingSvc.Unstake(c.Request.Context(), owner, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toYieldAccountResponse(account))
}

func toTreasuryResponse(t *domain.Treasury) dto.TreasuryResponse {
	return dto.TreasuryResponse{
		Address:   t.Address,
		Balance:   t.Balance,
		CreatedAt: t.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: t.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toYieldAccountResponse(y *domain.YieldAccount) dto.YieldAccountResponse {
	return dto.YieldAccountResponse{
		Address:      y.Address,
		OwnerID:      y.OwnerID.String(),
		StakedAmount: y.StakedAmount,
		CreatedAt:    y.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    y.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
