package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"hospital-schemes-server/internal/models"
	"hospital-schemes-server/internal/store"
	"hospital-schemes-server/internal/utils"
)

// DashboardHandler serves the admin aggregates.
type DashboardHandler struct {
	Store *store.Store
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(s *store.Store) *DashboardHandler {
	return &DashboardHandler{Store: s}
}

// GetDashboard returns totals, per-scheme statistics, recent enrollments and
// per-patient enrollment counts. A storage failure yields zeros and empty
// lists flagged as degraded rather than an error.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	dash, err := h.Store.Dashboard(c.Request.Context())
	if err != nil {
		log.Warn().Err(err).Msg("Dashboard degraded")
		dash = models.EmptyDashboard()
		dash.Degraded = true
		utils.Success(c, "Dashboard data unavailable", dash)
		return
	}
	utils.Success(c, "Dashboard fetched successfully", dash)
}
