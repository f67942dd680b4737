package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/vetcare-api/internal/application/auth"
	"github.com/jhoicas/vetcare-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	Tokens    TokenVerifier
	Documents DocumentStore // nil: el registro solo acepta referencias en el cuerpo
	AdminKey  string
	Log       zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público; /me valida el token por su cuenta)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Documents, deps.Log)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", authHandler.Me)

	// Administración (X-Admin-Key o Bearer con rol admin)
	admin := api.Group("/admin",
		AdminKeyOrBearer(deps.AdminKey, deps.Tokens),
		RequireRole(string(entity.AccessRoleAdmin)),
	)
	adminHandler := NewAdminHandler(deps.AuthUC, deps.Log)
	admin.Post("/users", adminHandler.CreateUser)
}
