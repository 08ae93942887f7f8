package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ergpos/inventario-api/internal/application/dto"
	"github.com/ergpos/inventario-api/internal/application/usecase"
)

// AuditoriaHandler consultas de solo lectura sobre el rastro de auditoría,
// más la purga administrativa.
type AuditoriaHandler struct {
	uc *usecase.AuditoriaUseCase
}

func NewAuditoriaHandler(uc *usecase.AuditoriaUseCase) *AuditoriaHandler {
	return &AuditoriaHandler{uc: uc}
}

// Buscar godoc
// @Summary      Buscar registros de auditoría
// @Description  Filtros excluyentes: fechas RFC 3339, tabla, evento o usuario_id. Sin filtros devuelve los 100 más recientes.
// @Tags         auditoria
// @Security     Bearer
// @Produce      json
// @Param        tabla       query  string  false  "Nombre de tabla"
// @Param        evento      query  string  false  "INSERT | UPDATE | DELETE"
// @Param        usuario_id  query  string  false  "ID de usuario"
// @Param        desde       query  string  false  "Fecha inicial RFC 3339"
// @Param        hasta       query  string  false  "Fecha final RFC 3339"
// @Success      200  {array}   dto.AuditoriaResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/auditoria [get]
func (h *AuditoriaHandler) Buscar(c *fiber.Ctx) error {
	var q dto.BuscarAuditoriaQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "INVALID_QUERY", "parámetros de búsqueda inválidos")
	}
	out, err := h.uc.Buscar(c.Context(), q)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Obtener devuelve un registro por ID.
func (h *AuditoriaHandler) Obtener(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "INVALID_QUERY", "id inválido")
	}
	out, err := h.uc.Obtener(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// HistorialRegistro devuelve los eventos de un registro concreto, por
// ejemplo el ciclo de vida completo de un movimiento.
func (h *AuditoriaHandler) HistorialRegistro(c *fiber.Ctx) error {
	out, err := h.uc.HistorialRegistro(c.Context(), c.Params("tabla"), c.Params("registro_id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// ContarPorEvento cuenta registros de un tipo de evento.
func (h *AuditoriaHandler) ContarPorEvento(c *fiber.Ctx) error {
	n, err := h.uc.ContarPorEvento(c.Context(), c.Params("evento"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(fiber.Map{"evento": c.Params("evento"), "total": n})
}

// PurgarAntiguos elimina registros anteriores a ?fecha_limite= (RFC 3339).
// Solo admin.
func (h *AuditoriaHandler) PurgarAntiguos(c *fiber.Ctx) error {
	fechaLimite, err := time.Parse(time.RFC3339, c.Query("fecha_limite"))
	if err != nil {
		return badRequest(c, "INVALID_QUERY", "fecha_limite inválida (RFC 3339)")
	}
	n, err := h.uc.PurgarAntiguos(c.Context(), fechaLimite)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(fiber.Map{"eliminados": n})
}
