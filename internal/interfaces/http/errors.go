package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/vetcare-api/internal/application/dto"
	"github.com/jhoicas/vetcare-api/internal/domain"
)

// writeError traduce un error de caso de uso a respuesta HTTP.
// Los errores internos nunca exponen el detalle al cliente.
func writeError(c *fiber.Ctx, log zerolog.Logger, err error) error {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		fields := domain.FieldsOf(err)
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    string(domain.KindValidation),
			Message: domain.JoinFields(fields),
			Errors:  fields,
		})
	case domain.KindDuplicate:
		fields := domain.FieldsOf(err)
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    string(domain.KindDuplicate),
			Message: domain.JoinFields(fields),
			Errors:  fields,
		})
	case domain.KindUnauthorized:
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("error interno")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}

// ErrorHandler manejador de errores de Fiber con el mismo cuerpo que el resto de la API.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if e, ok := err.(*fiber.Error); ok {
			return c.Status(e.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: e.Message})
		}
		return writeError(c, log, err)
	}
}
