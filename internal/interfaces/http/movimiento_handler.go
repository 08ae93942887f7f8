package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ergpos/inventario-api/internal/application/dto"
	"github.com/ergpos/inventario-api/internal/application/inventory"
	"github.com/ergpos/inventario-api/pkg/validator"
)

// MovimientoHandler maneja las peticiones HTTP del motor de movimientos.
type MovimientoHandler struct {
	uc *inventory.MovimientoUseCase
}

// NewMovimientoHandler construye el handler.
func NewMovimientoHandler(uc *inventory.MovimientoUseCase) *MovimientoHandler {
	return &MovimientoHandler{uc: uc}
}

// Crear godoc
// @Summary      Registrar movimiento de inventario
// @Description  Registra una ENTRADA o SALIDA. Estado opcional: ACTIVO (defecto) aplica el efecto de stock ya; PENDIENTE lo difiere hasta activar.
// @Tags         movimientos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearMovimientoRequest  true  "codigo_producto, tipo, cantidad, codigo_usuario, ruc_proveedor (opcional), estado (opcional)"
// @Success      201   {object}  dto.MovimientoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movimientos [post]
func (h *MovimientoHandler) Crear(c *fiber.Ctx) error {
	var in dto.CrearMovimientoRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if msgs := validator.ValidateStruct(in); msgs != nil {
		return validationError(c, msgs)
	}
	out, err := h.uc.Crear(c.Context(), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Obtener godoc
// @Summary      Obtener movimiento por ID
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovimientoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movimientos/{id} [get]
func (h *MovimientoHandler) Obtener(c *fiber.Ctx) error {
	out, err := h.uc.Obtener(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Listar godoc
// @Summary      Buscar movimientos
// @Description  Filtros por código de producto/usuario, RUC de proveedor, tipo, estado y rango de fechas RFC 3339. Sin fechas, último año.
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Param        codigo_producto  query  string  false  "Código de producto"
// @Param        tipo             query  string  false  "ENTRADA | SALIDA"
// @Param        estado           query  string  false  "ACTIVO | ANULADO | PENDIENTE"
// @Param        desde            query  string  false  "Fecha inicial RFC 3339"
// @Param        hasta            query  string  false  "Fecha final RFC 3339"
// @Success      200  {array}   dto.MovimientoResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movimientos [get]
func (h *MovimientoHandler) Listar(c *fiber.Ctx) error {
	var q dto.ListarMovimientosQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "INVALID_QUERY", "parámetros de búsqueda inválidos")
	}
	out, err := h.uc.Listar(c.Context(), q)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Anular godoc
// @Summary      Anular un movimiento ACTIVO
// @Description  Revierte el efecto de stock y deja el movimiento en ANULADO (terminal). Falla si la reversión dejaría stock negativo.
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovimientoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/movimientos/{id}/anular [patch]
func (h *MovimientoHandler) Anular(c *fiber.Ctx) error {
	out, err := h.uc.Anular(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Activar godoc
// @Summary      Activar un movimiento PENDIENTE
// @Description  Aplica ahora el efecto de stock. Una salida sin stock suficiente falla y el movimiento permanece PENDIENTE.
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovimientoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/movimientos/{id}/activar [patch]
func (h *MovimientoHandler) Activar(c *fiber.Ctx) error {
	out, err := h.uc.Activar(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// VerificarConsistencia godoc
// @Summary      Verificar consistencia stock vs movimientos
// @Description  Compara el contador de stock contra la suma de efectos de los movimientos ACTIVOS. Solo lectura.
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Param        codigo  path      string  true  "Código de producto"
// @Success      200     {object}  dto.ConsistenciaResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/movimientos/consistencia/{codigo} [get]
func (h *MovimientoHandler) VerificarConsistencia(c *fiber.Ctx) error {
	out, err := h.uc.VerificarConsistencia(c.Context(), c.Params("codigo"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
