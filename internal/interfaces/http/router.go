package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invorya/mermas-api/internal/application/auth"
	"github.com/invorya/mermas-api/internal/application/export"
	"github.com/invorya/mermas-api/internal/application/importer"
	"github.com/invorya/mermas-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ReasonUC  *usecase.ReasonUseCase
	ProductUC *usecase.ProductUseCase
	EntryUC   *usecase.EntryUseCase
	ReportUC  *usecase.ReportUseCase
	ExportUC  *export.UseCase
	ImportUC  *importer.UseCase
	AuthUC    *auth.AuthUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Reasons (protegido, solo lectura)
	reasonHandler := NewReasonHandler(deps.ReasonUC)
	protected.Get("/reasons", reasonHandler.List)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", RequireAdmin(), productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:code", productHandler.GetByCode)

	// Entries (protegido)
	entries := protected.Group("/entries")
	entryHandler := NewEntryHandler(deps.EntryUC)
	entries.Post("/", entryHandler.Create)
	entries.Get("/summary", entryHandler.Summary)
	entries.Get("/", entryHandler.List)

	// Exports (protegido)
	exports := protected.Group("/exports")
	exportHandler := NewExportHandler(deps.ExportUC)
	exports.Post("/", exportHandler.Run)
	exports.Get("/files", exportHandler.Files)

	// Imports (protegido)
	imports := protected.Group("/imports")
	importHandler := NewImportHandler(deps.ImportUC)
	imports.Post("/", importHandler.Run)
	imports.Get("/", importHandler.History)

	// Reports (protegido)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/loss", reportHandler.Loss)
	reports.Get("/loss/pdf", reportHandler.LossPDF)
}
