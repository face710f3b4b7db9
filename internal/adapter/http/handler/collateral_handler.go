package handler

import (
	"collateral-ledger/internal/core/ports"
	"collateral-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// CollateralHandler handles position evaluation and liquidation endpoints.
type CollateralHandler struct {
	collateralSvc ports.CollateralService
}

// NewCollateralHandler creates a new CollateralHandler.
func NewCollateralHandler(collateralSvc ports.CollateralService) *CollateralHandler {
	return &CollateralHandler{collateralSvc: collateralSvc}
}

// Position handles GET /api/v1/collateral/position. Read-only; nothing in
// the ledger changes regardless of how unhealthy the position is.
func (h *CollateralHandler) Position(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	report, err := h.collateralSvc.Position(c.Request.Context(), owner)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, report)
}

// Liquidate handles POST /api/v1/liquidation. Evaluates the caller's
// position against a fresh price and rebalances it when undercollateralized.
func (h *CollateralHandler) Liquidate(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	report, err := h.collateralSvc.Liquidate(c.Request.Context(), owner)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, report)
}
