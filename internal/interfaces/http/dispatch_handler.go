package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/planta-despachos/internal/application/dto"
	"github.com/jhoicas/planta-despachos/internal/application/inventory"
)

// DispatchHandler maneja las peticiones HTTP de despachos.
type DispatchHandler struct {
	uc   *inventory.DispatchUseCase
	note *inventory.DeliveryNoteUseCase
}

// NewDispatchHandler construye el handler.
func NewDispatchHandler(uc *inventory.DispatchUseCase, note *inventory.DeliveryNoteUseCase) *DispatchHandler {
	return &DispatchHandler{uc: uc, note: note}
}

// Create godoc
// @Summary      Registrar despacho
// @Description  Debita quantity_m3 del silo. Cliente/conductor: *_id de un registro o *_name como texto libre.
// @Tags         dispatches
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DispatchRequest  true  "Datos del despacho"
// @Success      201   {object}  dto.DispatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "INSUFFICIENT_STOCK"
// @Router       /api/dispatches [post]
func (h *DispatchHandler) Create(c *fiber.Ctx) error {
	var in dto.DispatchRequest
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
// @Summary      Listar despachos
// @Tags         dispatches
// @Produce      json
// @Param        period     query  string  false  "all | today | week | month | year"
// @Param        silo_id    query  string  false  "Filtrar por silo"
// @Param        client_id  query  string  false  "Filtrar por cliente (ID o manual_<nombre>)"
// @Param        driver_id  query  string  false  "Filtrar por conductor (ID o manual_<nombre>)"
// @Param        q          query  string  false  "Búsqueda libre"
// @Param        limit      query  int     false  "Límite"  default(20)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200        {object}  dto.DispatchListResponse
// @Router       /api/dispatches [get]
func (h *DispatchHandler) List(c *fiber.Ctx) error {
	in := dto.DispatchListRequest{
		Limit:    c.QueryInt("limit", 20),
		Offset:   c.QueryInt("offset", 0),
		Period:   c.Query("period"),
		SiloID:   c.Query("silo_id"),
		ClientID: c.Query("client_id"),
		DriverID: c.Query("driver_id"),
		Search:   c.Query("q"),
	}
	out, err := h.uc.List(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener despacho por ID
// @Tags         dispatches
// @Produce      json
// @Param        id   path  string  true  "ID del despacho"
// @Success      200  {object}  dto.DispatchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dispatches/{id} [get]
func (h *DispatchHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "despacho no encontrado")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar despacho
// @Description  Mismo silo: se aplica solo la diferencia. Silo distinto: se devuelve todo al anterior y se debita el nuevo.
// @Tags         dispatches
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del despacho"
// @Param        body  body  dto.DispatchRequest  true  "Datos del despacho"
// @Success      200   {object}  dto.DispatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "INSUFFICIENT_STOCK"
// @Router       /api/dispatches/{id} [put]
func (h *DispatchHandler) Update(c *fiber.Ctx) error {
	var in dto.DispatchRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar despacho (devuelve la cantidad al silo)
// @Tags         dispatches
// @Param        id   path  string  true  "ID del despacho"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dispatches/{id} [delete]
func (h *DispatchHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeliveryNote godoc
// @Summary      Descargar guía de despacho (PDF)
// @Tags         dispatches
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del despacho"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dispatches/{id}/pdf [get]
func (h *DispatchHandler) DeliveryNote(c *fiber.Ctx) error {
	pdf, filename, err := h.note.Download(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}
