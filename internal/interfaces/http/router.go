package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Distriops-api/internal/application/auth"
	"github.com/jhoicas/Distriops-api/internal/application/catalog"
	"github.com/jhoicas/Distriops-api/internal/application/ledger"
	"github.com/jhoicas/Distriops-api/internal/application/marketing"
	"github.com/jhoicas/Distriops-api/internal/application/reporting"
	"github.com/jhoicas/Distriops-api/internal/application/rewards"
	"github.com/jhoicas/Distriops-api/internal/application/settlement"
	"github.com/jhoicas/Distriops-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	CatalogUC    *catalog.CatalogUseCase
	LedgerUC     *ledger.LedgerUseCase
	SettlementUC *settlement.SettlementUseCase
	ReportUC     *reporting.ReportUseCase
	RewardsUC    *rewards.RewardsUseCase
	MarketingUC  *marketing.MarketingUseCase
	JWTSecret    string
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
	adminOnly := RequireRole(entity.UserRoleAdmin)

	// Catálogo: productos y combos (mutaciones solo admin)
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	products := protected.Group("/products")
	products.Post("/", adminOnly, catalogHandler.CreateProduct)
	products.Get("/", catalogHandler.ListProducts)
	products.Get("/:id", catalogHandler.GetProduct)
	products.Put("/:id/cost", adminOnly, catalogHandler.UpdateProductCost)
	products.Put("/:id/active", adminOnly, catalogHandler.SetProductActive)

	bundles := protected.Group("/bundles")
	bundles.Post("/", adminOnly, catalogHandler.CreateBundle)
	bundles.Get("/", catalogHandler.ListBundles)
	bundles.Get("/:id", catalogHandler.GetBundle)

	// Red de distribución (protegido)
	actors := protected.Group("/actors")
	actors.Post("/", adminOnly, catalogHandler.CreateActor)
	actors.Get("/", catalogHandler.ListActors)
	actors.Get("/:id", catalogHandler.GetActor)

	// Inventario (protegido)
	ledgerHandler := NewLedgerHandler(deps.LedgerUC, deps.CatalogUC)
	invGroup := protected.Group("/inventory")
	invGroup.Post("/receive", ledgerHandler.Receive)
	invGroup.Post("/issue", ledgerHandler.Issue)
	invGroup.Post("/transfer", ledgerHandler.Transfer)
	invGroup.Get("/stock/:actor_id", ledgerHandler.ListStock)
	invGroup.Get("/movements/:actor_id", ledgerHandler.ListMovements)
	invGroup.Delete("/movements/:id", adminOnly, ledgerHandler.ReverseMovement)

	// Órdenes y liquidación (protegido; aprobar/rechazar solo admin)
	orderHandler := NewOrderHandler(deps.SettlementUC)
	orders := protected.Group("/orders")
	orders.Post("/", orderHandler.Create)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Post("/:id/approve", adminOnly, orderHandler.Approve)
	orders.Post("/:id/reject", adminOnly, orderHandler.Reject)
	orders.Post("/:id/recheck-payment", orderHandler.RecheckPayment)
	orders.Get("/:id/receipt.pdf", orderHandler.ReceiptPDF)

	// Reportes (protegido)
	reportHandler := NewReportHandler(deps.ReportUC)
	reports := protected.Group("/reports")
	reports.Get("/dashboard", reportHandler.Dashboard)
	reports.Get("/pnl", reportHandler.PnL)
	reports.Get("/products", reportHandler.ProductPerformance)

	// Premios y comisiones (protegido)
	rewardsHandler := NewRewardsHandler(deps.RewardsUC)
	rewardsGroup := protected.Group("/rewards")
	rewardsGroup.Get("/:actor_id", rewardsHandler.RewardProgress)
	rewardsGroup.Get("/:actor_id/commission", rewardsHandler.Commission)

	// Marketing: ventas al cliente final y gasto publicitario (protegido)
	marketingHandler := NewMarketingHandler(deps.MarketingUC)
	mkt := protected.Group("/marketing")
	mkt.Post("/purchases", marketingHandler.CreatePurchase)
	mkt.Post("/ad-spends", marketingHandler.CreateAdSpend)
}
