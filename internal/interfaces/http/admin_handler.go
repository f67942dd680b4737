package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/vetcare-api/internal/application/auth"
	"github.com/jhoicas/vetcare-api/internal/application/dto"
	"github.com/jhoicas/vetcare-api/internal/domain/entity"
)

// AdminHandler vía administrativa de confianza: alta de cuentas con rol explícito.
type AdminHandler struct {
	uc  *auth.AuthUseCase
	log zerolog.Logger
}

// NewAdminHandler construye el handler de administración.
func NewAdminHandler(uc *auth.AuthUseCase, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{uc: uc, log: log}
}

// CreateUser godoc
// @Summary      Crear cuenta con rol (admin)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        X-Admin-Key  header  string  false  "clave administrativa"
// @Param        body  body  dto.RegisterRequest  true  "datos de la cuenta; role admin|user"
// @Success      201   {object}  dto.AccountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/users [post]
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RegisterTrusted(c.UserContext(), in, entity.AccessRole(in.Role))
	if err != nil {
		return writeError(c, h.log, err)
	}
	h.log.Info().
		Str("account_id", out.ID).
		Str("role", out.Role).
		Str("by", GetAccountID(c)).
		Msg("cuenta creada por vía administrativa")
	return c.Status(fiber.StatusCreated).JSON(out)
}
