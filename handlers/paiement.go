package handlers

import (
	"net/http"
	"time"

	paiementRepo "telecare/database/repository/paiement"
	"telecare/models"
	"telecare/services/payment"
	"telecare/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaiementHandler serves the payment record endpoints.
type PaiementHandler struct {
	Repo     paiementRepo.PaiementRepository
	Payments payment.PaymentService
}

type createPaiementRequest struct {
	Amount         float64 `json:"amount" binding:"required"`
	ConsultationID string  `json:"consultationId" binding:"required"`
	Method         string  `json:"method"`
}

// CreateHandler handles POST /api/paiements. Checkout-driven payments are
// created by the reconciler; this covers manually recorded ones.
func (h *PaiementHandler) CreateHandler(c *gin.Context) {
	logger := utils.GetLogger()
	var req createPaiementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	p := &models.Paiement{
		ID:             uuid.NewString(),
		Amount:         req.Amount,
		Status:         models.PaiementPending,
		Date:           now,
		ConsultationID: req.ConsultationID,
		Method:         req.Method,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if p.Method == "" {
		p.Method = "card"
	}

	if err := h.Repo.Create(p); err != nil {
		logger.Error("Failed to create payment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment"})
		return
	}
	c.JSON(http.StatusCreated, p)
}

// GetByIDHandler handles GET /api/paiements/:id.
func (h *PaiementHandler) GetByIDHandler(c *gin.Context) {
	id := c.Param("id")
	p, err := h.Repo.GetByID(id)
	if err != nil {
		utils.GetLogger().Error("Failed to fetch payment", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payment"})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// GetAllHandler handles GET /api/paiements.
func (h *PaiementHandler) GetAllHandler(c *gin.Context) {
	list, err := h.Repo.GetAll()
	if err != nil {
		utils.GetLogger().Error("Failed to list payments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list payments"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetByConsultationHandler handles GET /api/paiements/consultation/:consultationId.
func (h *PaiementHandler) GetByConsultationHandler(c *gin.Context) {
	list, err := h.Repo.GetByConsultation(c.Param("consultationId"))
	if err != nil {
		utils.GetLogger().Error("Failed to list payments by consultation", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list payments"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// RefundHandler handles POST /api/paiements/:id/refund. Refunds are the only
// way a paid session ever becomes unpaid again.
func (h *PaiementHandler) RefundHandler(c *gin.Context) {
	id := c.Param("id")
	var req struct {
		Amount float64 `json:"amount"`
		Reason string  `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.Payments.Refund(id, req.Amount, req.Reason)
	if err != nil {
		respondPaymentError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteHandler handles DELETE /api/paiements/:id.
func (h *PaiementHandler) DeleteHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.Repo.Delete(id); err != nil {
		utils.GetLogger().Error("Failed to delete payment", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete payment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment deleted"})
}

// respondPaymentError maps typed payment errors to HTTP statuses.
func respondPaymentError(c *gin.Context, err error) {
	switch {
	case payment.IsAlreadyPaid(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case payment.IsPaymentNotCompleted(err):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
	default:
		respondLifecycleError(c, err)
	}
}
