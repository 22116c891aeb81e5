package handlers

import (
	"net/http"

	"github.com/Dosada05/sporter/services"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
}

func NewDashboardHandler(s services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: s}
}

// Stats godoc
// @Summary Сводка по закреплённым видам спорта
// @Tags subadmin
// @Produce json
// @Success 200 {object} models.DashboardStats
// @Failure 403 {object} map[string]interface{}
// @Security BearerAuth
// @Router /subadmin/dashboard [get]
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	actor, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	stats, err := h.dashboardService.GetStats(r.Context(), actor)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, stats, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
