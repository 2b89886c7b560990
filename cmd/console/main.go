package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	appanalytics "github.com/jhoicas/sinv-console/internal/application/analytics"
	"github.com/jhoicas/sinv-console/internal/application/auth"
	"github.com/jhoicas/sinv-console/internal/application/form"
	"github.com/jhoicas/sinv-console/internal/application/usecase"
	"github.com/jhoicas/sinv-console/internal/domain"
	"github.com/jhoicas/sinv-console/internal/domain/rules"
	"github.com/jhoicas/sinv-console/internal/infrastructure/credentials"
	"github.com/jhoicas/sinv-console/internal/infrastructure/gateway"
	httpRouter "github.com/jhoicas/sinv-console/internal/interfaces/http"
	"github.com/jhoicas/sinv-console/pkg/config"
	"github.com/jhoicas/sinv-console/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.API.BaseURL).
		Msg("iniciando consola")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	engine := rules.NewEngine()
	client := gateway.NewClient(gateway.Config{BaseURL: cfg.API.BaseURL, Timeout: cfg.API.Timeout()}, nil, engine, log.Named("gateway"))

	// Sesión única del proceso: el gateway toma el token de aquí
	store := credentials.NewFileStore(cfg.Credentials.Path)
	session := auth.NewSession(client.Auth(), store, log.Named("auth"))
	client.SetTokenSource(session)
	if err := session.Restore(); err != nil {
		if errors.Is(err, domain.ErrSessionExpired) {
			log.Info().Msg("la sesión guardada expiró; inicia sesión de nuevo")
		} else {
			log.Warn().Err(err).Str("path", store.Path()).Msg("no se pudo restaurar la sesión")
		}
	}

	registry := form.NewRegistry(cfg.Forms.IdleTimeout(), log.Named("forms"))
	session.OnSignOut(func() { registry.DiscardOwned() })
	go registry.Run(ctx, time.Minute)

	users, storages, categories, articles := client.Users(), client.Storages(), client.Categories(), client.Articles()
	snapshots := usecase.NewSnapshotLoader(users, storages, categories, articles)
	formUC := usecase.NewFormUseCase(usecase.Gateways{
		Users:      users,
		Storages:   storages,
		Categories: categories,
		Articles:   articles,
	}, snapshots, session, registry, log)
	userUC := usecase.NewUserUseCase(users)
	storageUC := usecase.NewStorageUseCase(storages, snapshots)
	catalogUC := usecase.NewCatalogUseCase(categories, articles, storages)
	dashboardUC := appanalytics.NewDashboardUseCase(snapshots)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.API.Timeout() + 5*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "SINV Console API",
		}))
	} else {
		log.Debug().Str("file", swaggerFile).Msg("sin documento swagger; /docs deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Session:     session,
		Engine:      engine,
		FormUC:      formUC,
		UserUC:      userUC,
		StorageUC:   storageUC,
		CatalogUC:   catalogUC,
		DashboardUC: dashboardUC,
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
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("consola detenida")
}
