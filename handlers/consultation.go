package handlers

import (
	"net/http"
	"time"

	consultationRepo "telecare/database/repository/consultation"
	"telecare/models"
	"telecare/services/storage"
	"telecare/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ConsultationHandler serves the consultation CRUD and document uploads.
type ConsultationHandler struct {
	Repo    consultationRepo.ConsultationRepository
	Storage storage.DocumentStorage
}

type createConsultationRequest struct {
	Date         time.Time `json:"date" binding:"required"`
	MedecinID    string    `json:"medecinId" binding:"required"`
	PatientID    string    `json:"patientId" binding:"required"`
	Type         string    `json:"type"`
	Duration     int       `json:"duration"`
	Price        float64   `json:"price"`
	MedicalNotes string    `json:"medicalNotes"`
	VideoLink    string    `json:"videoLink"`
}

// CreateHandler handles POST /api/consultations.
func (h *ConsultationHandler) CreateHandler(c *gin.Context) {
	logger := utils.GetLogger()
	var req createConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	cons := &models.Consultation{
		ID:           uuid.NewString(),
		Date:         req.Date,
		Status:       models.ConsultationPlanned,
		MedecinID:    req.MedecinID,
		PatientID:    req.PatientID,
		Type:         req.Type,
		Duration:     req.Duration,
		Price:        req.Price,
		MedicalNotes: req.MedicalNotes,
		VideoLink:    req.VideoLink,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if cons.Type == "" {
		cons.Type = "teleconsultation"
	}

	if err := h.Repo.Create(cons); err != nil {
		logger.Error("Failed to create consultation", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create consultation"})
		return
	}
	c.JSON(http.StatusCreated, cons)
}

// GetByIDHandler handles GET /api/consultations/:id.
func (h *ConsultationHandler) GetByIDHandler(c *gin.Context) {
	id := c.Param("id")
	cons, err := h.Repo.GetByID(id)
	if err != nil {
		utils.GetLogger().Error("Failed to fetch consultation", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch consultation"})
		return
	}
	if cons == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Consultation not found"})
		return
	}
	c.JSON(http.StatusOK, cons)
}

// GetAllHandler handles GET /api/consultations.
func (h *ConsultationHandler) GetAllHandler(c *gin.Context) {
	list, err := h.Repo.GetAll()
	if err != nil {
		utils.GetLogger().Error("Failed to list consultations", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list consultations"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetByMedecinHandler handles GET /api/consultations/medecin/:medecinId.
func (h *ConsultationHandler) GetByMedecinHandler(c *gin.Context) {
	list, err := h.Repo.GetByMedecin(c.Param("medecinId"))
	if err != nil {
		utils.GetLogger().Error("Failed to list consultations by doctor", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list consultations"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetByPatientHandler handles GET /api/consultations/patient/:patientId.
func (h *ConsultationHandler) GetByPatientHandler(c *gin.Context) {
	list, err := h.Repo.GetByPatient(c.Param("patientId"))
	if err != nil {
		utils.GetLogger().Error("Failed to list consultations by patient", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list consultations"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// UpdateHandler handles PUT /api/consultations/:id. Status moves through the
// lifecycle endpoints, not here.
func (h *ConsultationHandler) UpdateHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")
	cons, err := h.Repo.GetByID(id)
	if err != nil {
		logger.Error("Failed to fetch consultation", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch consultation"})
		return
	}
	if cons == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Consultation not found"})
		return
	}

	var req struct {
		Date         *time.Time `json:"date"`
		Duration     *int       `json:"duration"`
		Price        *float64   `json:"price"`
		MedicalNotes *string    `json:"medicalNotes"`
		VideoLink    *string    `json:"videoLink"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Date != nil {
		cons.Date = *req.Date
	}
	if req.Duration != nil {
		cons.Duration = *req.Duration
	}
	if req.Price != nil {
		cons.Price = *req.Price
	}
	if req.MedicalNotes != nil {
		cons.MedicalNotes = *req.MedicalNotes
	}
	if req.VideoLink != nil {
		cons.VideoLink = *req.VideoLink
	}

	if err := h.Repo.Update(cons); err != nil {
		logger.Error("Failed to update consultation", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update consultation"})
		return
	}
	c.JSON(http.StatusOK, cons)
}

// DeleteHandler handles DELETE /api/consultations/:id.
func (h *ConsultationHandler) DeleteHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.Repo.Delete(id); err != nil {
		utils.GetLogger().Error("Failed to delete consultation", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete consultation"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Consultation deleted"})
}

// UploadDocumentHandler handles POST /api/consultations/:id/documents. It
// stores the multipart file and appends its URL to the consultation record.
func (h *ConsultationHandler) UploadDocumentHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")

	cons, err := h.Repo.GetByID(id)
	if err != nil {
		logger.Error("Failed to fetch consultation", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch consultation"})
		return
	}
	if cons == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Consultation not found"})
		return
	}

	fileHeader, err := c.FormFile("document")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing 'document' file field"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	url, err := h.Storage.Upload(c.Request.Context(), file, fileHeader.Filename, id)
	if err != nil {
		logger.Error("Failed to store document", zap.String("consultationId", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store document"})
		return
	}

	if err := h.Repo.PushDocument(id, url); err != nil {
		logger.Error("Failed to attach document", zap.String("consultationId", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach document"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}
