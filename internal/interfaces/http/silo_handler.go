package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/planta-despachos/internal/application/dto"
	"github.com/jhoicas/planta-despachos/internal/application/inventory"
	"github.com/jhoicas/planta-despachos/internal/application/usecase"
)

// SiloHandler maneja las peticiones HTTP de silos y sus llenados.
type SiloHandler struct {
	uc   *usecase.SiloUseCase
	fill *inventory.SiloFillUseCase
}

// NewSiloHandler construye el handler.
func NewSiloHandler(uc *usecase.SiloUseCase, fill *inventory.SiloFillUseCase) *SiloHandler {
	return &SiloHandler{uc: uc, fill: fill}
}

// Create godoc
// @Summary      Registrar silo
// @Tags         silos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSiloRequest  true  "Nombre, capacidad, stock inicial, mínimo"
// @Success      201   {object}  dto.SiloResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/silos [post]
func (h *SiloHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSiloRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar silos
// @Tags         silos
// @Produce      json
// @Success      200  {object}  dto.SiloListResponse
// @Router       /api/silos [get]
func (h *SiloHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener silo por ID
// @Tags         silos
// @Produce      json
// @Param        id   path  string  true  "ID del silo"
// @Success      200  {object}  dto.SiloResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/silos/{id} [get]
func (h *SiloHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "silo no encontrado")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar silo (nombre, capacidad, mínimo, estado)
// @Description  El stock no se edita aquí; cambia solo con despachos y llenados.
// @Tags         silos
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del silo"
// @Param        body  body  dto.UpdateSiloRequest   true  "Campos a modificar"
// @Success      200   {object}  dto.SiloResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/silos/{id} [put]
func (h *SiloHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSiloRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "silo no encontrado")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar silo
// @Tags         silos
// @Param        id   path  string  true  "ID del silo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "tiene despachos registrados"
// @Router       /api/silos/{id} [delete]
func (h *SiloHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Fill godoc
// @Summary      Llenar silo (ingreso de cemento)
// @Description  Todo o nada: si current_stock + amount supera la capacidad no se modifica el stock.
// @Tags         silos
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del silo"
// @Param        body  body  dto.FillSiloRequest  true  "Cantidad y datos del ingreso"
// @Success      200   {object}  dto.FillSiloResponse
// @Failure      400   {object}  dto.ErrorResponse  "INVALID_AMOUNT"
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "CAPACITY_EXCEEDED"
// @Router       /api/silos/{id}/fill [post]
func (h *SiloHandler) Fill(c *fiber.Ctx) error {
	var in dto.FillSiloRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.fill.Fill(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListInputs godoc
// @Summary      Historial de ingresos de cemento de un silo
// @Tags         silos
// @Produce      json
// @Param        id      path   string  true   "ID del silo"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {array}   dto.CementInputResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/silos/{id}/inputs [get]
func (h *SiloHandler) ListInputs(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	out, err := h.fill.ListInputs(c.Context(), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"items": out, "page": dto.PageResponse{Limit: page.Limit, Offset: page.Offset}})
}
