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

	"github.com/jhoicas/Distriops-api/internal/application/auth"
	"github.com/jhoicas/Distriops-api/internal/application/catalog"
	"github.com/jhoicas/Distriops-api/internal/application/ledger"
	"github.com/jhoicas/Distriops-api/internal/application/marketing"
	"github.com/jhoicas/Distriops-api/internal/application/reporting"
	"github.com/jhoicas/Distriops-api/internal/application/rewards"
	"github.com/jhoicas/Distriops-api/internal/application/settlement"
	infrapayment "github.com/jhoicas/Distriops-api/internal/infrastructure/payment"
	infrapdf "github.com/jhoicas/Distriops-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Distriops-api/internal/infrastructure/postgres"
	infrastorage "github.com/jhoicas/Distriops-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Distriops-api/internal/interfaces/http"
	"github.com/jhoicas/Distriops-api/pkg/config"
	"github.com/jhoicas/Distriops-api/pkg/logger"

	_ "github.com/jhoicas/Distriops-api/docs" // spec swagger generado
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Service: cfg.App.Name,
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	actorRepo := postgres.NewActorRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	bundleRepo := postgres.NewBundleRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movRepo := postgres.NewStockMovementRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	txnRepo := postgres.NewTransactionRepository(pool)
	tierRepo := postgres.NewTierRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	spendRepo := postgres.NewAdSpendRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Pasarela de pagos externa: opcional; sin BaseURL la reverificación
	// de pagos responde como no disponible.
	var gateway settlement.PaymentGateway
	if cfg.Payment.BaseURL != "" {
		gateway = infrapayment.NewHTTPGateway(
			cfg.Payment.BaseURL,
			cfg.Payment.APIKey,
			time.Duration(cfg.Payment.TimeoutMS)*time.Millisecond,
		)
	}

	// Bucket de comprobantes: opcional; sin bucket las órdenes se crean
	// sin adjuntar el comprobante.
	var blobStore settlement.BlobStore
	if cfg.Storage.Bucket != "" {
		gcs, err := infrastorage.NewGCSStore(ctx, cfg.Storage.Bucket, cfg.Storage.CredentialsFile)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Google Cloud Storage")
		}
		defer gcs.Close()
		blobStore = gcs
	}

	pdfGen := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)

	ledgerUC := ledger.NewLedgerUseCase(txRunner, productRepo, actorRepo, bundleRepo)
	settlementUC := settlement.NewSettlementUseCase(
		txRunner, ledgerUC,
		actorRepo, orderRepo, bundleRepo,
		gateway, blobStore, pdfGen,
		settlement.Config{HQActorID: cfg.Network.HQActorID},
	)
	catalogUC := catalog.NewCatalogUseCase(productRepo, bundleRepo, actorRepo, stockRepo, movRepo)
	reportUC := reporting.NewReportUseCase(purchaseRepo, spendRepo)
	rewardsUC := rewards.NewRewardsUseCase(actorRepo, txnRepo, tierRepo, purchaseRepo, spendRepo, log)
	marketingUC := marketing.NewMarketingUseCase(purchaseRepo, spendRepo, actorRepo)
	authUC := auth.NewAuthUseCase(userRepo, actorRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Distriops API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		CatalogUC:    catalogUC,
		LedgerUC:     ledgerUC,
		SettlementUC: settlementUC,
		ReportUC:     reportUC,
		RewardsUC:    rewardsUC,
		MarketingUC:  marketingUC,
		JWTSecret:    cfg.JWT.Secret,
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
