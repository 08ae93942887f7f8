package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ergpos/inventario-api/internal/application/dto"
	"github.com/ergpos/inventario-api/internal/domain"
)

// handleError mapea errores de negocio a respuestas HTTP. El dominio expone
// códigos estables; aquí se decide el status. Errores desconocidos se
// devuelven como 500 sin filtrar el detalle interno.
func handleError(c *fiber.Ctx, err error) error {
	var stockErr *domain.StockInsuficienteError
	if errors.As(err, &stockErr) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:       stockErr.Code(),
			Message:    stockErr.Error(),
			Disponible: &stockErr.Disponible,
			Solicitado: &stockErr.Solicitado,
		})
	}

	var bizErr *domain.Error
	if errors.As(err, &bizErr) {
		return c.Status(statusForCode(bizErr.Code)).JSON(dto.ErrorResponse{
			Code:    bizErr.Code,
			Message: bizErr.Message,
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code:    "INTERNAL",
		Message: "error interno",
	})
}

func statusForCode(code string) int {
	switch code {
	case domain.CodeProductoNotFound,
		domain.CodeUsuarioNotFound,
		domain.CodeProveedorNotFound,
		domain.CodeCategoriaNotFound,
		domain.CodeMovimientoNotFound,
		domain.CodeAuditNotFound:
		return fiber.StatusNotFound
	case domain.CodeInsufficientStock,
		domain.CodeDuplicate:
		return fiber.StatusConflict
	case domain.CodeInvalidMovementState,
		domain.CodeNegativeStock:
		return fiber.StatusUnprocessableEntity
	case domain.CodeUnauthorized:
		return fiber.StatusUnauthorized
	default:
		// INVALID_TIPO, INVALID_ESTADO, INVALID_INPUT, INVALID_DATE_RANGE,
		// *_INACTIVE y cualquier código nuevo de validación.
		return fiber.StatusBadRequest
	}
}

// badRequest respuesta 400 con código y mensaje explícitos (errores de
// parseo del body o validación de estructura).
func badRequest(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: message})
}

// validationError respuesta 400 con los mensajes del validador.
func validationError(c *fiber.Ctx, msgs []string) error {
	msg := "datos inválidos"
	if len(msgs) > 0 {
		msg = msgs[0]
	}
	return badRequest(c, "VALIDATION", msg)
}
