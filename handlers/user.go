package handlers

import (
	"net/http"
	"time"

	userRepo "telecare/database/repository/user"
	"telecare/models"
	"telecare/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserHandler serves the patient/doctor profile endpoints. Credential
// issuance lives in the identity service; these only manage profiles.
type UserHandler struct {
	Repo userRepo.UserRepository
}

// CreateHandler handles POST /api/users.
func (h *UserHandler) CreateHandler(c *gin.Context) {
	logger := utils.GetLogger()
	var req struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email" binding:"required,email"`
		Role      string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	switch req.Role {
	case models.RolePatient, models.RoleMedecin, models.RoleAdmin:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role"})
		return
	}

	now := time.Now()
	usr := &models.User{
		ID:        uuid.NewString(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      req.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.Repo.Create(usr); err != nil {
		logger.Error("Failed to create user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}
	c.JSON(http.StatusCreated, usr)
}

// GetByIDHandler handles GET /api/users/:id.
func (h *UserHandler) GetByIDHandler(c *gin.Context) {
	id := c.Param("id")
	usr, err := h.Repo.GetByID(id)
	if err != nil {
		utils.GetLogger().Error("Failed to fetch user", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}
	if usr == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, usr)
}

// UpdateHandler handles PUT /api/users/:id.
func (h *UserHandler) UpdateHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")
	usr, err := h.Repo.GetByID(id)
	if err != nil {
		logger.Error("Failed to fetch user", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}
	if usr == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var req struct {
		FirstName *string `json:"firstName"`
		LastName  *string `json:"lastName"`
		Email     *string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.FirstName != nil {
		usr.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		usr.LastName = *req.LastName
	}
	if req.Email != nil {
		usr.Email = *req.Email
	}

	if err := h.Repo.Update(usr); err != nil {
		logger.Error("Failed to update user", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}
	c.JSON(http.StatusOK, usr)
}

// DeleteHandler handles DELETE /api/users/:id.
func (h *UserHandler) DeleteHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.Repo.Delete(id); err != nil {
		utils.GetLogger().Error("Failed to delete user", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
