package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ergpos/inventario-api/internal/application/dto"
	"github.com/ergpos/inventario-api/internal/application/usecase"
	"github.com/ergpos/inventario-api/pkg/validator"
)

// CategoriaHandler maneja las peticiones HTTP de categorías.
type CategoriaHandler struct {
	uc *usecase.CategoriaUseCase
}

func NewCategoriaHandler(uc *usecase.CategoriaUseCase) *CategoriaHandler {
	return &CategoriaHandler{uc: uc}
}

// Crear godoc
// @Summary      Crear categoría
// @Tags         categorias
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearCategoriaRequest  true  "codigo, nombre"
// @Success      201   {object}  dto.CategoriaResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categorias [post]
func (h *CategoriaHandler) Crear(c *fiber.Ctx) error {
	var in dto.CrearCategoriaRequest
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

// Obtener devuelve una categoría por código.
func (h *CategoriaHandler) Obtener(c *fiber.Ctx) error {
	out, err := h.uc.Obtener(c.Context(), c.Params("codigo"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Actualizar actualiza una categoría por ID.
func (h *CategoriaHandler) Actualizar(c *fiber.Ctx) error {
	var in dto.ActualizarCategoriaRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Actualizar(c.Context(), c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Listar lista categorías; ?activas=true filtra las activas.
func (h *CategoriaHandler) Listar(c *fiber.Ctx) error {
	out, err := h.uc.Listar(c.Context(), c.QueryBool("activas", false))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// ProveedorHandler maneja las peticiones HTTP de proveedores.
type ProveedorHandler struct {
	uc *usecase.ProveedorUseCase
}

func NewProveedorHandler(uc *usecase.ProveedorUseCase) *ProveedorHandler {
	return &ProveedorHandler{uc: uc}
}

// Crear godoc
// @Summary      Crear proveedor
// @Tags         proveedores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearProveedorRequest  true  "ruc, nombre"
// @Success      201   {object}  dto.ProveedorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/proveedores [post]
func (h *ProveedorHandler) Crear(c *fiber.Ctx) error {
	var in dto.CrearProveedorRequest
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

// Obtener devuelve un proveedor por RUC.
func (h *ProveedorHandler) Obtener(c *fiber.Ctx) error {
	out, err := h.uc.Obtener(c.Context(), c.Params("ruc"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Actualizar actualiza un proveedor por ID. El RUC es inmutable.
func (h *ProveedorHandler) Actualizar(c *fiber.Ctx) error {
	var in dto.ActualizarProveedorRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Actualizar(c.Context(), c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Listar lista proveedores con paginación; ?activos=true filtra los activos.
func (h *ProveedorHandler) Listar(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "parámetros de paginación inválidos")
	}
	out, err := h.uc.Listar(c.Context(), c.QueryBool("activos", false), page)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
