package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/planta-despachos/internal/application/dto"
	"github.com/jhoicas/planta-despachos/internal/application/usecase"
)

// DriverHandler maneja las peticiones HTTP de conductores.
type DriverHandler struct {
	uc *usecase.DriverUseCase
}

// NewDriverHandler construye el handler.
func NewDriverHandler(uc *usecase.DriverUseCase) *DriverHandler {
	return &DriverHandler{uc: uc}
}

// Create godoc
// @Summary      Crear conductor
// @Tags         drivers
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DriverRequest  true  "Datos del conductor"
// @Success      201   {object}  dto.DriverResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/drivers [post]
func (h *DriverHandler) Create(c *fiber.Ctx) error {
	var in dto.DriverRequest
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
// @Summary      Listar conductores
// @Tags         drivers
// @Produce      json
// @Param        q       query  string  false  "Búsqueda por nombre o placa"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.DriverListResponse
// @Router       /api/drivers [get]
func (h *DriverHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.Query("q"), pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener conductor por ID
// @Tags         drivers
// @Produce      json
// @Param        id   path  string  true  "ID del conductor"
// @Success      200  {object}  dto.DriverResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drivers/{id} [get]
func (h *DriverHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "conductor no encontrado")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar conductor
// @Tags         drivers
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID del conductor"
// @Param        body  body  dto.DriverRequest  true  "Datos del conductor"
// @Success      200   {object}  dto.DriverResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/drivers/{id} [put]
func (h *DriverHandler) Update(c *fiber.Ctx) error {
	var in dto.DriverRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "conductor no encontrado")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar conductor
// @Tags         drivers
// @Param        id   path  string  true  "ID del conductor"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drivers/{id} [delete]
func (h *DriverHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
