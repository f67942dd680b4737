package http

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/vetcare-api/internal/application/auth"
	"github.com/jhoicas/vetcare-api/internal/application/dto"
	"github.com/jhoicas/vetcare-api/internal/domain"
	"github.com/jhoicas/vetcare-api/internal/domain/entity"
)

// Nombres de los archivos en el formulario multipart de registro.
const (
	FormProfessionalIDDoc = "professionalIdDoc"
	FormDiplomaDoc        = "diplomaDoc"
)

// DocumentStore guarda un documento subido y devuelve su referencia opaca.
type DocumentStore interface {
	Save(fh *multipart.FileHeader) (string, error)
}

// AuthHandler maneja registro, login y sesión actual.
type AuthHandler struct {
	uc   *auth.AuthUseCase
	docs DocumentStore
	log  zerolog.Logger
}

// NewAuthHandler construye el handler de auth. docs puede ser nil si no se aceptan archivos.
func NewAuthHandler(uc *auth.AuthUseCase, docs DocumentStore, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, docs: docs, log: log}
}

// Register godoc
// @Summary      Registrar cuenta (Tutor o Veterinário)
// @Tags         auth
// @Accept       json,mpfd
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "datos de la cuenta"
// @Success      201   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	in, status, failure := h.parseRegister(c)
	if failure != nil {
		return c.Status(status).JSON(failure)
	}
	out, err := h.uc.Register(c.UserContext(), *in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.AuthResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Cuenta de la sesión actual
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  dto.MeResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	token, code, msg := bearerToken(c)
	if code != "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: msg})
	}
	account, err := h.uc.ResolveSession(c.UserContext(), token)
	if err != nil {
		if domain.KindOf(err) == domain.KindUnauthorized {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "no autorizado"})
		}
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.MeResponse{User: *account})
}

// parseRegister lee JSON o multipart. Si falla devuelve el estado y el cuerpo de error a responder.
func (h *AuthHandler) parseRegister(c *fiber.Ctx) (*dto.RegisterRequest, int, *dto.ErrorResponse) {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return nil, fiber.StatusBadRequest, &dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"}
	}
	if err := h.attachDocuments(c, &in); err != nil {
		h.log.Error().Err(err).Msg("guardar documentos del registro")
		return nil, fiber.StatusInternalServerError, &dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"}
	}
	return &in, 0, nil
}

// attachDocuments guarda los archivos multipart de un Veterinário y completa sus referencias.
// Para Tutor se ignoran: el caso de uso los descartaría igual.
func (h *AuthHandler) attachDocuments(c *fiber.Ctx, in *dto.RegisterRequest) error {
	if h.docs == nil || entity.RoleType(in.Type) != entity.RoleTypeVeterinarian {
		return nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		// no es multipart: las referencias vienen en el JSON
		return nil
	}
	if fh := firstFile(form, FormProfessionalIDDoc); fh != nil {
		ref, err := h.docs.Save(fh)
		if err != nil {
			return err
		}
		in.ProfessionalIDDocPath = ref
	}
	if fh := firstFile(form, FormDiplomaDoc); fh != nil {
		ref, err := h.docs.Save(fh)
		if err != nil {
			return err
		}
		in.DiplomaDocPath = ref
	}
	return nil
}

func firstFile(form *multipart.Form, field string) *multipart.FileHeader {
	if files := form.File[field]; len(files) > 0 {
		return files[0]
	}
	return nil
}
