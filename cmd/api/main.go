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

	"github.com/jhoicas/backoffice-api/internal/application/auth"
	"github.com/jhoicas/backoffice-api/internal/application/documents"
	"github.com/jhoicas/backoffice-api/internal/application/inventory"
	"github.com/jhoicas/backoffice-api/internal/application/numbering"
	"github.com/jhoicas/backoffice-api/internal/application/purchasing"
	"github.com/jhoicas/backoffice-api/internal/application/sales"
	"github.com/jhoicas/backoffice-api/internal/application/settlement"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/backoffice-api/internal/infrastructure/pdf"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/backoffice-api/internal/interfaces/http"
	"github.com/jhoicas/backoffice-api/pkg/config"
	"github.com/jhoicas/backoffice-api/pkg/logger"
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

	// Repositorios sobre el pool (las escrituras transaccionales usan TxRunner)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	lotRepo := postgres.NewLotRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	sequenceRepo := postgres.NewSequenceRepository(pool)
	settleRepo := postgres.NewSettlementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Casos de uso
	recon := inventory.NewStockReconciliation(lotRepo, productRepo)
	lotLedgerUC := inventory.NewLotLedgerUseCase(txRunner, lotRepo, productRepo, supplierRepo)
	commitSaleUC := sales.NewCommitSaleUseCase(txRunner, recon, clientRepo, saleRepo)
	convertInvoiceUC := sales.NewConvertInvoiceUseCase(txRunner, saleRepo)
	proformaUC := sales.NewProformaUseCase(txRunner, clientRepo)
	commitPurchaseUC := purchasing.NewCommitPurchaseUseCase(txRunner, supplierRepo, productRepo, lotRepo, purchaseRepo)
	settleUC := settlement.NewSettlementUseCase(settleRepo, clientRepo, supplierRepo)
	numberingSvc := numbering.NewService(sequenceRepo)

	productUC := usecase.NewProductUseCase(productRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	clientUC := usecase.NewClientUseCase(clientRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	paymentUC := usecase.NewPaymentUseCase(paymentRepo, clientRepo, supplierRepo)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.Agency)
	pdfUC := documents.NewPDFUseCase(saleRepo, clientRepo, pdfGenerator)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
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
		Title:    "Back Office API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Auth:      httpRouter.NewAuthHandler(authUC),
		Product:   httpRouter.NewProductHandler(productUC, categoryUC),
		Lot:       httpRouter.NewLotHandler(lotLedgerUC),
		Sale:      httpRouter.NewSaleHandler(commitSaleUC, convertInvoiceUC, proformaUC, numberingSvc),
		Purchase:  httpRouter.NewPurchaseHandler(commitPurchaseUC),
		Party:     httpRouter.NewPartyHandler(clientUC, supplierUC, paymentUC, settleUC, commitSaleUC, commitPurchaseUC),
		PDF:       httpRouter.NewPDFHandler(pdfUC),
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
