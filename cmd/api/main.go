package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/invorya/mermas-api/internal/application/auth"
	"github.com/invorya/mermas-api/internal/application/export"
	"github.com/invorya/mermas-api/internal/application/importer"
	"github.com/invorya/mermas-api/internal/application/usecase"
	"github.com/invorya/mermas-api/internal/infrastructure/fs"
	infrapdf "github.com/invorya/mermas-api/internal/infrastructure/pdf"
	"github.com/invorya/mermas-api/internal/infrastructure/postgres"
	httpRouter "github.com/invorya/mermas-api/internal/interfaces/http"
	"github.com/invorya/mermas-api/pkg/config"
	"github.com/invorya/mermas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.RunMigrations(cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("migraciones de esquema")
	}
	if applied {
		log.Info().Msg("migraciones aplicadas")
	} else {
		log.Info().Msg("esquema al día, sin migraciones pendientes")
	}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	reasonRepo := postgres.NewReasonRepository(pool)
	entryRepo := postgres.NewEntryRepository(pool)
	importLogRepo := postgres.NewImportLogRepository(pool)

	store := fs.NewStore(cfg.Export.BaseDir)

	reasonUC := usecase.NewReasonUseCase(reasonRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	entryUC := usecase.NewEntryUseCase(entryRepo, productRepo, reasonRepo)
	reportUC := usecase.NewReportUseCase(entryRepo, infrapdf.NewMarotoReportGenerator())
	exportUC := export.NewUseCase(reasonRepo, entryRepo, store)
	importUC := importer.NewUseCase(store, entryRepo, productRepo, reasonRepo, importLogRepo, importer.Config{
		DefaultReasonCode: cfg.Import.DefaultReasonCode,
		MaxErrorDetails:   cfg.Import.MaxErrorDetails,
	})
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Mermas API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ReasonUC:  reasonUC,
		ProductUC: productUC,
		EntryUC:   entryUC,
		ReportUC:  reportUC,
		ExportUC:  exportUC,
		ImportUC:  importUC,
		AuthUC:    authUC,
		JWTSecret: cfg.JWT.Secret,
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
