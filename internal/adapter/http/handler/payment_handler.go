package handler

import (
	"time"

	"collateral-ledger/internal/adapter/http/dto"
	"collateral-ledger/internal/core/domain"
	"collateral-ledger/internal/core/ports"
	"collateral-ledger/pkg/apperror"
	"collateral-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PaymentHandler handles merchant registration and payment settlement.
type PaymentHandler struct {
	paymentSvc ports.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentSvc ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc}
}

// RegisterMerchant handles POST /api/v1/merchants. The authenticated owner
// becomes the merchant authority.
func (h *PaymentHandler) RegisterMerchant(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	var req dto.MerchantRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	merchant, err := h.paymentSvc.RegisterMerchant(c.Request.Context(), owner, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, toMerchantResponse(merchant))
}

// ProcessPayment handles POST /api/v1/payments.
func (h *PaymentHandler) ProcessPayment(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	merchantID, err := uuid.Parse(req.MerchantID)
	if err != nil {
		response.Error(c, apperror.Validation("merchant_id must be a UUID"))
		return
	}

	receipt, err := h.paymentSvc.ProcessPayment(c.Request.Context(), ports.PaymentRequest{
		OwnerID:     owner,
		MerchantID:  merchantID,
		Destination: req.Destination,
		Amount:      req.Amount,
		ReferenceID: req.ReferenceID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, receipt)
}

func toMerchantResponse(m *domain.MerchantAccount) dto.MerchantResponse {
	return dto.MerchantResponse{
		Address:   m.Address,
		OwnerID:   m.OwnerID.String(),
		Name:      m.Name,
		CreatedAt: m.CreatedAt.UTC().Format(time.RFC3339),
	}
}
