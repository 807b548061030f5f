package handlers

import (
	"net/http"
	"time"

	"telecare/models"
	"telecare/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetDailyStatsHandler handles
// GET /api/consultations/statistics/medecin/:medecinId. Optional startDate
// and endDate query parameters bound the aggregation window.
func (h *ConsultationHandler) GetDailyStatsHandler(c *gin.Context) {
	from, ok := parseDateQuery(c, "startDate")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "endDate")
	if !ok {
		return
	}

	stats, err := h.Repo.GetDailyStatsByMedecin(c.Param("medecinId"), from, to)
	if err != nil {
		utils.GetLogger().Error("Failed to aggregate consultation statistics",
			zap.String("medecinId", c.Param("medecinId")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate statistics"})
		return
	}
	if stats == nil {
		stats = []models.ConsultationDailyStat{}
	}
	c.JSON(http.StatusOK, stats)
}

// parseDateQuery reads an optional date query parameter, accepting RFC 3339
// or plain YYYY-MM-DD. On a malformed value it writes a 400 and returns
// ok=false.
func parseDateQuery(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + ", expected RFC 3339 or YYYY-MM-DD"})
	return time.Time{}, false
}
