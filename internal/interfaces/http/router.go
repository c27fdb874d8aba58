package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/billforge/billforge-api/internal/application/billing"
	"github.com/billforge/billforge-api/internal/application/usecase"
)

// RouterDeps are the router's dependencies.
type RouterDeps struct {
	ProductUC     *usecase.ProductUseCase
	CustomerUC    *billing.CustomerUseCase
	CreateInvoice *billing.CreateInvoiceUseCase
	RecordPayment *billing.RecordPaymentUseCase
	InvoicePDF    *billing.PDFUseCase
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)

	// Customers
	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)

	// Invoices
	invoices := api.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.CreateInvoice, deps.RecordPayment, deps.InvoicePDF)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Post("/:id/payments", invoiceHandler.RecordPayment)
	invoices.Post("/:id/mark-paid", invoiceHandler.MarkPaid)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
}
