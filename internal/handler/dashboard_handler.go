package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/sekolah-console/internal/response"
	"github.com/stemsi/sekolah-console/internal/service"
)

// DashboardHandler serves the signed-in user's home view.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Show godoc
// GET /dashboard
// Returns notifications, active banners and the visible grade tree.
func (h *DashboardHandler) Show(c *gin.Context) {
	data, err := h.dashboard.Get(c.Request.Context(), currentUser(c))
	if err != nil {
		fail(c, err, nil)
		return
	}
	response.Success(c, http.StatusOK, data)
}
