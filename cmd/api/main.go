package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/vetcare-api/internal/application/auth"
	"github.com/jhoicas/vetcare-api/internal/domain/repository"
	"github.com/jhoicas/vetcare-api/internal/infrastructure/memory"
	"github.com/jhoicas/vetcare-api/internal/infrastructure/metrics"
	"github.com/jhoicas/vetcare-api/internal/infrastructure/postgres"
	"github.com/jhoicas/vetcare-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/vetcare-api/internal/infrastructure/uploads"
	httpRouter "github.com/jhoicas/vetcare-api/internal/interfaces/http"
	"github.com/jhoicas/vetcare-api/pkg/config"
	"github.com/jhoicas/vetcare-api/pkg/jwt"
	"github.com/jhoicas/vetcare-api/pkg/logger"
	"github.com/jhoicas/vetcare-api/pkg/password"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.UsingDevSecret() {
		log.Warn().Msg("JWT_SECRET no configurado: se usa el secreto de desarrollo, no apto para producción")
	}
	if cfg.Admin.Key == "" {
		log.Warn().Msg("ADMIN_KEY no configurado: /api/admin solo acepta tokens con rol admin")
	}

	ctx := context.Background()
	accountRepo, closeDB, err := openRepository(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("conexión a la base de datos")
	}
	defer closeDB()

	m := metrics.New(prometheus.DefaultRegisterer)
	hasher := password.NewPool(cfg.Hash.Workers)
	tokens := jwt.NewIssuer(cfg.JWT.Secret, cfg.JWT.Issuer)
	authUC := auth.NewAuthUseCase(accountRepo, hasher, tokens, log.Zerolog(), m)

	docs, err := uploads.NewDiskStore(cfg.Uploads.Dir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Uploads.Dir).Msg("directorio de documentos")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: httpRouter.ErrorHandler(log.Zerolog()),
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Zerolog(), m))

	// Swagger UI en local: http://localhost:<port>/docs (requiere `swag init`)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "VetCare API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Static(uploads.PublicPrefix, docs.Dir())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		Tokens:    tokens,
		Documents: docs,
		AdminKey:  cfg.Admin.Key,
		Log:       log.Zerolog(),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openRepository elige el almacenamiento de cuentas según DB_DRIVER.
func openRepository(ctx context.Context, cfg config.DBConfig) (repository.AccountRepository, func(), error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewAccountRepository(pool), pool.Close, nil
	case config.DriverMemory:
		return memory.NewAccountRepository(), func() {}, nil
	default:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return sqlite.NewAccountRepository(db), func() { _ = db.Close() }, nil
	}
}
