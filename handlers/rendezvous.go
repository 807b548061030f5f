package handlers

import (
	"net/http"
	"time"

	rendezvousRepo "telecare/database/repository/rendezvous"
	"telecare/models"
	"telecare/services/session"
	"telecare/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RendezVousHandler serves the rendez-vous CRUD and booking transitions.
type RendezVousHandler struct {
	Repo         rendezvousRepo.RendezVousRepository
	Sessions     session.SessionService
	DefaultPrice float64
}

type createRendezVousRequest struct {
	Date      time.Time   `json:"date" binding:"required"`
	Type      string      `json:"type"`
	MedecinID string      `json:"medecinId" binding:"required"`
	PatientID string      `json:"patientId" binding:"required"`
	Notes     string      `json:"notes"`
	Reminders []time.Time `json:"reminders"`
	Price     float64     `json:"price"`
}

// CreateHandler handles POST /api/rendezvous.
func (h *RendezVousHandler) CreateHandler(c *gin.Context) {
	logger := utils.GetLogger()
	var req createRendezVousRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	price := req.Price
	if price <= 0 {
		price = h.DefaultPrice
	}
	now := time.Now()
	rdv := &models.RendezVous{
		ID:        uuid.NewString(),
		Date:      req.Date,
		Status:    models.RendezVousPlanned,
		Type:      req.Type,
		MedecinID: req.MedecinID,
		PatientID: req.PatientID,
		Notes:     req.Notes,
		Reminders: req.Reminders,
		Price:     price,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if rdv.Type == "" {
		rdv.Type = "teleconsultation"
	}

	if err := h.Repo.Create(rdv); err != nil {
		logger.Error("Failed to create rendez-vous", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create rendez-vous"})
		return
	}
	c.JSON(http.StatusCreated, rdv)
}

// GetByIDHandler handles GET /api/rendezvous/:id.
func (h *RendezVousHandler) GetByIDHandler(c *gin.Context) {
	id := c.Param("id")
	rdv, err := h.Repo.GetByID(id)
	if err != nil {
		utils.GetLogger().Error("Failed to fetch rendez-vous", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rendez-vous"})
		return
	}
	if rdv == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Rendez-vous not found"})
		return
	}
	c.JSON(http.StatusOK, rdv)
}

// GetAllHandler handles GET /api/rendezvous.
func (h *RendezVousHandler) GetAllHandler(c *gin.Context) {
	list, err := h.Repo.GetAll()
	if err != nil {
		utils.GetLogger().Error("Failed to list rendez-vous", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list rendez-vous"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetByMedecinHandler handles GET /api/rendezvous/medecin/:medecinId.
func (h *RendezVousHandler) GetByMedecinHandler(c *gin.Context) {
	list, err := h.Repo.GetByMedecin(c.Param("medecinId"))
	if err != nil {
		utils.GetLogger().Error("Failed to list rendez-vous by doctor", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list rendez-vous"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetByPatientHandler handles GET /api/rendezvous/patient/:patientId.
func (h *RendezVousHandler) GetByPatientHandler(c *gin.Context) {
	list, err := h.Repo.GetByPatient(c.Param("patientId"))
	if err != nil {
		utils.GetLogger().Error("Failed to list rendez-vous by patient", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list rendez-vous"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// UpdateHandler handles PUT /api/rendezvous/:id. Status transitions go
// through the dedicated confirm/cancel/end endpoints, never through here.
func (h *RendezVousHandler) UpdateHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")
	rdv, err := h.Repo.GetByID(id)
	if err != nil {
		logger.Error("Failed to fetch rendez-vous", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rendez-vous"})
		return
	}
	if rdv == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Rendez-vous not found"})
		return
	}

	var req struct {
		Date      *time.Time  `json:"date"`
		Notes     *string     `json:"notes"`
		Reminders []time.Time `json:"reminders"`
		Price     *float64    `json:"price"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Date != nil {
		rdv.Date = *req.Date
	}
	if req.Notes != nil {
		rdv.Notes = *req.Notes
	}
	if req.Reminders != nil {
		rdv.Reminders = req.Reminders
	}
	if req.Price != nil {
		rdv.Price = *req.Price
	}

	if err := h.Repo.Update(rdv); err != nil {
		logger.Error("Failed to update rendez-vous", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update rendez-vous"})
		return
	}
	c.JSON(http.StatusOK, rdv)
}

// DeleteHandler handles DELETE /api/rendezvous/:id.
func (h *RendezVousHandler) DeleteHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.Repo.Delete(id); err != nil {
		utils.GetLogger().Error("Failed to delete rendez-vous", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete rendez-vous"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rendez-vous deleted"})
}

// ConfirmHandler handles PUT /api/rendezvous/:id/confirmer.
func (h *RendezVousHandler) ConfirmHandler(c *gin.Context) {
	id := c.Param("id")
	rdv, err := h.Sessions.Confirm(id)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rdv)
}

// CancelHandler handles PUT /api/rendezvous/:id/annuler.
func (h *RendezVousHandler) CancelHandler(c *gin.Context) {
	id := c.Param("id")
	rdv, err := h.Sessions.Cancel(id)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rdv)
}

// respondLifecycleError maps typed lifecycle errors to HTTP statuses.
func respondLifecycleError(c *gin.Context, err error) {
	switch {
	case session.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case session.IsInvalidState(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		utils.GetLogger().Error("Lifecycle operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
