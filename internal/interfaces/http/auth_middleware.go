package http

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vetcare-api/internal/application/dto"
	"github.com/jhoicas/vetcare-api/internal/domain/entity"
	"github.com/jhoicas/vetcare-api/pkg/jwt"
)

// Locals keys para AccountID y Role en Fiber.
const (
	LocalAccountID = "account_id"
	LocalRole      = "role"
)

// HeaderAdminKey header de la vía administrativa de confianza.
const HeaderAdminKey = "X-Admin-Key"

// TokenVerifier contrato mínimo para validar tokens de sesión. Lo implementa *jwt.Issuer.
type TokenVerifier interface {
	Verify(token string) (*jwt.Claims, error)
}

// bearerToken extrae el token del header Authorization. Devuelve código y mensaje si falta o está mal formado.
func bearerToken(c *fiber.Ctx) (token, code, msg string) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return "", "MISSING_TOKEN", "Authorization header requerido"
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", "INVALID_TOKEN", "formato: Bearer <token>"
	}
	token = strings.TrimSpace(parts[1])
	if token == "" {
		return "", "MISSING_TOKEN", "token vacío"
	}
	return token, "", ""
}

// authenticate valida el bearer y carga AccountID y Role en c.Locals.
func authenticate(c *fiber.Ctx, verifier TokenVerifier) error {
	token, code, msg := bearerToken(c)
	if code != "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: msg})
	}
	claims, err := verifier.Verify(token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
	}
	c.Locals(LocalAccountID, claims.AccountID)
	c.Locals(LocalRole, claims.Role)
	return c.Next()
}

// AuthMiddleware valida el Bearer Token y extrae AccountID y Role a c.Locals.
func AuthMiddleware(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authenticate(c, verifier)
	}
}

// AdminKeyOrBearer acepta la clave administrativa (X-Admin-Key) como rol admin;
// sin ese header se comporta como AuthMiddleware. Debe seguirle RequireRole.
// Una clave configurada vacía deshabilita la vía por header.
func AdminKeyOrBearer(adminKey string, verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get(HeaderAdminKey)
		if key == "" {
			return authenticate(c, verifier)
		}
		if adminKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(adminKey)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_ADMIN_KEY", Message: "clave administrativa inválida"})
		}
		c.Locals(LocalRole, string(entity.AccessRoleAdmin))
		return c.Next()
	}
}

// RequireRole autoriza solo a los roles indicados. Debe usarse DESPUÉS de AuthMiddleware.
//   - 401 si el token no trae rol.
//   - 403 si el rol no está permitido.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye rol"})
		}
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	}
}

// GetAccountID devuelve el AccountID del contexto (después del middleware de auth).
func GetAccountID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalAccountID).(string)
	return s
}

// GetRole devuelve el rol de acceso del contexto (después del middleware de auth).
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}
