package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/stock-articulos-api/internal/application/dto"
	"github.com/jhoicas/stock-articulos-api/internal/domain"
	"github.com/jhoicas/stock-articulos-api/pkg/logger"
)

// StatusClientClosedRequest el cliente cerró la conexión antes de la respuesta (convención de nginx).
const StatusClientClosedRequest = 499

// writeError traduce errores de dominio a respuesta HTTP. Los específicos van antes que su error base.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	status, code, msg := fiber.StatusInternalServerError, "INTERNAL", "error interno"
	switch {
	case errors.Is(err, context.Canceled):
		status, code, msg = StatusClientClosedRequest, "CANCELED", "solicitud cancelada por el cliente"
	case errors.Is(err, domain.ErrInvalidRate):
		status, code, msg = fiber.StatusBadRequest, "VALIDATION", "tasa de IVA no reconocida (SIX, TWELVE, TWENTY_ONE)"
	case errors.Is(err, domain.ErrInvalidQuantity):
		status, code, msg = fiber.StatusBadRequest, "VALIDATION", "la cantidad no puede ser negativa"
	case errors.Is(err, domain.ErrOutOfRange):
		status, code, msg = fiber.StatusBadRequest, "VALIDATION", "el valor excede el rango admitido"
	case errors.Is(err, domain.ErrInvalidInput):
		status, code, msg = fiber.StatusBadRequest, "VALIDATION", "datos inválidos"
	case errors.Is(err, domain.ErrCategoryNotFound):
		status, code, msg = fiber.StatusNotFound, "NOT_FOUND", "categoría no encontrada"
	case errors.Is(err, domain.ErrExternNotFound):
		status, code, msg = fiber.StatusNotFound, "NOT_FOUND", "externo no encontrado"
	case errors.Is(err, domain.ErrNotFound):
		status, code, msg = fiber.StatusNotFound, "NOT_FOUND", "artículo no encontrado"
	case errors.Is(err, domain.ErrAlreadyDeleted):
		status, code, msg = fiber.StatusGone, "DELETED", "el artículo ya estaba eliminado"
	case errors.Is(err, domain.ErrDeleted):
		status, code, msg = fiber.StatusGone, "DELETED", "el artículo fue eliminado"
	case errors.Is(err, domain.ErrDuplicateDesignation):
		status, code, msg = fiber.StatusConflict, "DUPLICATE", "ya existe un artículo activo con esa designación"
	case errors.Is(err, domain.ErrDuplicateEmail):
		status, code, msg = fiber.StatusConflict, "DUPLICATE", "ya existe un externo con ese email"
	case errors.Is(err, domain.ErrConflict):
		status, code, msg = fiber.StatusConflict, "CONFLICT", "conflicto con un registro existente"
	case errors.Is(err, domain.ErrLockTimeout), errors.Is(err, context.DeadlineExceeded):
		status, code, msg = fiber.StatusServiceUnavailable, "LOCK_TIMEOUT", "recurso ocupado, reintente"
	}
	switch status {
	case fiber.StatusInternalServerError:
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no controlado")
	case StatusClientClosedRequest:
		log.Debug().Str("method", c.Method()).Str("path", c.Path()).Msg("solicitud cancelada por el cliente")
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// articleID id del artículo en la ruta. Los ids son UUID: cualquier otro valor no existe.
func articleID(c *fiber.Ctx) (string, bool) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

func articleNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "artículo no encontrado"})
}
