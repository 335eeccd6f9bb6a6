package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/planta-despachos/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del dashboard de operaciones.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Dashboard de operaciones
// @Description  Tarjetas de silos (stock, capacidad, % de llenado, stock bajo), m³ despachados por día
//
//	en los últimos 7 días y los 5 despachos más recientes.
//
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
