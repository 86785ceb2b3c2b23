// internal/handlers/health.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/games-api/internal/database"
	"github.com/javajoker/games-api/internal/i18n"
	"github.com/javajoker/games-api/internal/utils"
)

const version = "1.0.0"

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	if err := database.Ping(h.db); err != nil {
		logrus.WithError(err).Error("Health check: database ping failed")
		c.PureJSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "down",
			"error":    i18n.T(utils.GetLangFromContext(c), i18n.KeyHealthDatabaseDown),
			"version":  version,
		})
		return
	}

	utils.SuccessResponse(c, gin.H{
		"status":   "healthy",
		"database": "up",
		"version":  version,
	})
}
