package handler

import (
	"net/http"

	"puntoventa/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct{ svc service.DashboardService }

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Totales godoc
// @Summary      Totales del dashboard
// @Description  Tarjetas del panel: total de productos, productos con stock bajo y ventas de los últimos 7 días. Cacheado 30s.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.DashboardTotalesResponse
// @Router       /v1/dashboard/totales [get]
func (h *DashboardHandler) Totales(c *gin.Context) {
	resp, err := h.svc.Totales(c.Request.Context())
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
