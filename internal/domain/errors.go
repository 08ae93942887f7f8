package domain

import "fmt"

// Códigos de error de negocio. El dominio no conoce códigos HTTP: la capa
// de transporte decide cómo mapear cada código a un status.
const (
	CodeProductoNotFound   = "PRODUCTO_NOT_FOUND"
	CodeUsuarioNotFound    = "USUARIO_NOT_FOUND"
	CodeProveedorNotFound  = "PROVEEDOR_NOT_FOUND"
	CodeCategoriaNotFound  = "CATEGORIA_NOT_FOUND"
	CodeMovimientoNotFound = "MOVIMIENTO_NOT_FOUND"
	CodeAuditNotFound      = "AUDIT_NOT_FOUND"

	CodeProductoInactive  = "PRODUCTO_INACTIVE"
	CodeUsuarioInactive   = "USUARIO_INACTIVE"
	CodeProveedorInactive = "PROVEEDOR_INACTIVE"
	CodeCategoriaInactive = "CATEGORIA_INACTIVE"

	CodeInvalidTipo          = "INVALID_TIPO"
	CodeInvalidEstado        = "INVALID_ESTADO"
	CodeInvalidMovementState = "INVALID_MOVEMENT_STATE"
	CodeInsufficientStock    = "INSUFFICIENT_STOCK"
	CodeNegativeStock        = "NEGATIVE_STOCK"

	CodeInvalidInput     = "INVALID_INPUT"
	CodeInvalidDateRange = "INVALID_DATE_RANGE"
	CodeDuplicate        = "DUPLICATE_RESOURCE"
	CodeUnauthorized     = "UNAUTHORIZED"
)

// Error es un error de negocio con código estable y mensaje para el cliente.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is compara por código, de modo que errors.Is funcione contra los sentinela
// aunque el mensaje sea dinámico.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// NewError construye un error de negocio.
func NewError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Errorf construye un error de negocio con mensaje formateado.
func Errorf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// StockInsuficienteError rechaza una salida que excede el stock disponible.
// Lleva las cantidades observadas bajo el lock para que el cliente pueda
// mostrarlas sin reconsultar.
type StockInsuficienteError struct {
	Disponible int
	Solicitado int
}

func (e *StockInsuficienteError) Error() string {
	return fmt.Sprintf("stock insuficiente: disponible %d, solicitado %d", e.Disponible, e.Solicitado)
}

// Code devuelve el código de negocio estable.
func (e *StockInsuficienteError) Code() string { return CodeInsufficientStock }

// Errores sentinela para los casos que no necesitan mensaje dinámico.
var (
	ErrProductoNotFound   = NewError(CodeProductoNotFound, "producto no encontrado")
	ErrUsuarioNotFound    = NewError(CodeUsuarioNotFound, "usuario no encontrado")
	ErrProveedorNotFound  = NewError(CodeProveedorNotFound, "proveedor no encontrado")
	ErrCategoriaNotFound  = NewError(CodeCategoriaNotFound, "categoría no encontrada")
	ErrMovimientoNotFound = NewError(CodeMovimientoNotFound, "movimiento no encontrado")

	ErrProductoInactive  = NewError(CodeProductoInactive, "el producto está inactivo")
	ErrUsuarioInactive   = NewError(CodeUsuarioInactive, "el usuario está inactivo")
	ErrProveedorInactive = NewError(CodeProveedorInactive, "el proveedor está inactivo")
	ErrCategoriaInactive = NewError(CodeCategoriaInactive, "la categoría está inactiva")

	ErrUnauthorized = NewError(CodeUnauthorized, "no autorizado")
)
