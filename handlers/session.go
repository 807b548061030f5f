package handlers

import (
	"net/http"

	"telecare/services/payment"
	"telecare/services/session"

	"github.com/gin-gonic/gin"
)

// SessionHandler serves the session lifecycle and checkout endpoints. A
// session id may belong to either identifier space; resolution is the
// lifecycle controller's job, not the caller's.
type SessionHandler struct {
	Sessions session.SessionService
	Payments payment.PaymentService
}

// GetHandler handles GET /api/sessions/:id.
func (h *SessionHandler) GetHandler(c *gin.Context) {
	ref, err := h.Sessions.Resolve(c.Param("id"))
	if err != nil {
		respondLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, ref.Entity())
}

// CompleteHandler handles POST /api/sessions/:id/complete.
func (h *SessionHandler) CompleteHandler(c *gin.Context) {
	ref, err := h.Sessions.Complete(c.Param("id"))
	if err != nil {
		respondLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, ref.Entity())
}

// InitiatePaymentHandler handles POST /api/sessions/:id/payment.
func (h *SessionHandler) InitiatePaymentHandler(c *gin.Context) {
	var req struct {
		PayerEmail string `json:"payerEmail"`
	}
	// Body is optional; the payer email falls back to the patient profile.
	_ = c.ShouldBindJSON(&req)

	intent, err := h.Payments.Initiate(c.Request.Context(), c.Param("id"), req.PayerEmail)
	if err != nil {
		respondPaymentError(c, err)
		return
	}
	c.JSON(http.StatusOK, intent)
}

// ConfirmPaymentHandler handles POST /api/sessions/:id/payment/confirm.
// Confirming twice is a no-op success, so redirect and webhook may race.
func (h *SessionHandler) ConfirmPaymentHandler(c *gin.Context) {
	var req struct {
		ExternalSessionID string `json:"externalSessionId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ref, err := h.Payments.Confirm(c.Request.Context(), c.Param("id"), req.ExternalSessionID)
	if err != nil {
		respondPaymentError(c, err)
		return
	}
	c.JSON(http.StatusOK, ref.Entity())
}
