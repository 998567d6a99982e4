package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Auth     *AuthHandler
	Product  *ProductHandler
	Lot      *LotHandler
	Sale     *SaleHandler
	Purchase *PurchaseHandler
	Party    *PartyHandler
	PDF      *PDFHandler

	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", deps.Auth.Register)
	authGroup.Post("/login", deps.Auth.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo
	products := protected.Group("/products")
	products.Post("/", deps.Product.Create)
	products.Get("/", deps.Product.List)
	products.Get("/:id", deps.Product.GetByID)
	products.Put("/:id", deps.Product.Update)
	products.Get("/:id/lots", deps.Lot.ListByProduct)

	categories := protected.Group("/categories")
	categories.Post("/", deps.Product.CreateCategory)
	categories.Get("/", deps.Product.ListCategories)

	// Libro de lotes
	lots := protected.Group("/lots")
	lots.Post("/", deps.Lot.Create)
	lots.Put("/:id", deps.Lot.Update)
	lots.Delete("/:id", deps.Lot.Delete)

	// Ventas
	salesGroup := protected.Group("/sales")
	salesGroup.Post("/", deps.Sale.Commit)
	salesGroup.Delete("/:id", RequireRole(entity.RoleAdmin), deps.Sale.Delete)
	salesGroup.Post("/:id/invoice", deps.Sale.Convert)

	protected.Post("/proformas", deps.Sale.CreateProforma)

	// Compras
	purchases := protected.Group("/purchases")
	purchases.Post("/", deps.Purchase.Commit)
	purchases.Delete("/:id", RequireRole(entity.RoleAdmin), deps.Purchase.Delete)

	// Clientes
	clients := protected.Group("/clients")
	clients.Post("/", deps.Party.CreateClient)
	clients.Get("/", deps.Party.ListClients)
	clients.Get("/:id", deps.Party.GetClient)
	clients.Put("/:id", deps.Party.UpdateClient)
	clients.Delete("/:id", RequireRole(entity.RoleAdmin), deps.Party.DeleteClient)
	clients.Get("/:id/sales", deps.Party.ListClientSales)
	clients.Post("/:id/payments", deps.Party.RecordPayment(entity.PartyClient))
	clients.Get("/:id/payments", deps.Party.ListPayments(entity.PartyClient))
	clients.Get("/:id/balance", deps.Party.Balance(entity.PartyClient))
	clients.Get("/:id/spend", deps.Party.PeriodSpend(entity.PartyClient))

	// Proveedores
	suppliers := protected.Group("/suppliers")
	suppliers.Post("/", deps.Party.CreateSupplier)
	suppliers.Get("/", deps.Party.ListSuppliers)
	suppliers.Get("/:id", deps.Party.GetSupplier)
	suppliers.Put("/:id", deps.Party.UpdateSupplier)
	suppliers.Delete("/:id", RequireRole(entity.RoleAdmin), deps.Party.DeleteSupplier)
	suppliers.Get("/:id/purchases", deps.Party.ListSupplierPurchases)
	suppliers.Post("/:id/payments", deps.Party.RecordPayment(entity.PartySupplier))
	suppliers.Get("/:id/payments", deps.Party.ListPayments(entity.PartySupplier))
	suppliers.Get("/:id/balance", deps.Party.Balance(entity.PartySupplier))
	suppliers.Get("/:id/spend", deps.Party.PeriodSpend(entity.PartySupplier))

	// Consecutivos (previsualización sin consumo)
	protected.Get("/sequences/:kind/next", deps.Sale.PeekNumber)

	// PDF
	protected.Get("/documents/:kind/:id/pdf", deps.PDF.Render)
}
