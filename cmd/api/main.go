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

	"github.com/billforge/billforge-api/internal/application/billing"
	"github.com/billforge/billforge-api/internal/application/usecase"
	infrapdf "github.com/billforge/billforge-api/internal/infrastructure/pdf"
	"github.com/billforge/billforge-api/internal/infrastructure/postgres"
	httpRouter "github.com/billforge/billforge-api/internal/interfaces/http"
	"github.com/billforge/billforge-api/pkg/config"
	"github.com/billforge/billforge-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	productUC := usecase.NewProductUseCase(productRepo)
	customerUC := billing.NewCustomerUseCase(customerRepo)
	createInvoiceUC := billing.NewCreateInvoiceUseCase(
		txRunner, customerRepo, productRepo, invoiceRepo, paymentRepo, log,
	)
	recordPaymentUC := billing.NewRecordPaymentUseCase(txRunner, log)

	sellerName := cfg.UPI.PayeeName
	if sellerName == "" {
		sellerName = cfg.App.Name
	}
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(sellerName, cfg.UPI.PayeeVPA, log)
	invoicePDFUC := billing.NewPDFUseCase(invoiceRepo, customerRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // PDF generation can outlast the default
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:     productUC,
		CustomerUC:    customerUC,
		CreateInvoice: createInvoiceUC,
		RecordPayment: recordPaymentUC,
		InvoicePDF:    invoicePDFUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
