package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ergpos/inventario-api/internal/application/dto"
	"github.com/ergpos/inventario-api/internal/application/usecase"
	"github.com/ergpos/inventario-api/pkg/validator"
)

// ProductoHandler maneja las peticiones HTTP de productos.
type ProductoHandler struct {
	uc *usecase.ProductoUseCase
}

// NewProductoHandler construye el handler.
func NewProductoHandler(uc *usecase.ProductoUseCase) *ProductoHandler {
	return &ProductoHandler{uc: uc}
}

// Crear godoc
// @Summary      Crear producto
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearProductoRequest  true  "codigo, nombre, codigo_categoria, precio, stock_minimo, stock_inicial"
// @Success      201   {object}  dto.ProductoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/productos [post]
func (h *ProductoHandler) Crear(c *fiber.Ctx) error {
	var in dto.CrearProductoRequest
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
// @Summary      Obtener producto por código
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        codigo  path      string  true  "Código de producto"
// @Success      200     {object}  dto.ProductoResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/productos/{codigo} [get]
func (h *ProductoHandler) Obtener(c *fiber.Ctx) error {
	out, err := h.uc.Obtener(c.Context(), c.Params("codigo"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Actualizar godoc
// @Summary      Actualizar producto
// @Description  Actualiza campos de catálogo. El stock no se modifica por aquí.
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.ActualizarProductoRequest  true  "campos a modificar"
// @Success      200   {object}  dto.ProductoResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [put]
func (h *ProductoHandler) Actualizar(c *fiber.Ctx) error {
	var in dto.ActualizarProductoRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Actualizar(c.Context(), c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Listar godoc
// @Summary      Listar productos
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        activos  query  bool  false  "Solo activos"
// @Param        limit    query  int   false  "Límite (defecto 20)"
// @Param        offset   query  int   false  "Offset"
// @Success      200  {array}  dto.ProductoResponse
// @Router       /api/productos [get]
func (h *ProductoHandler) Listar(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "parámetros de paginación inválidos")
	}
	soloActivos := c.QueryBool("activos", false)
	out, err := h.uc.Listar(c.Context(), soloActivos, page)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// ListarStockBajo godoc
// @Summary      Productos con stock bajo
// @Description  Productos activos en o bajo su umbral de alerta (stock_minimo, mínimo 5).
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductoResponse
// @Router       /api/productos/stock-bajo [get]
func (h *ProductoHandler) ListarStockBajo(c *fiber.Ctx) error {
	out, err := h.uc.ListarStockBajo(c.Context())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// VerificarStock godoc
// @Summary      Verificar disponibilidad de stock
// @Description  Lectura optimista: el motor re-valida bajo el lock al registrar la salida.
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        codigo    path   string  true  "Código de producto"
// @Param        cantidad  query  int     true  "Cantidad solicitada"
// @Success      200  {object}  dto.VerificacionStockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{codigo}/stock [get]
func (h *ProductoHandler) VerificarStock(c *fiber.Ctx) error {
	cantidad, err := strconv.Atoi(c.Query("cantidad", "0"))
	if err != nil {
		return badRequest(c, "INVALID_QUERY", "cantidad inválida")
	}
	out, err := h.uc.VerificarStock(c.Context(), c.Params("codigo"), cantidad)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
