// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/yadu32/brickworks-pro-suite/internal/handler"
	"github.com/yadu32/brickworks-pro-suite/internal/middleware"
	"github.com/yadu32/brickworks-pro-suite/internal/utils"
)

// RegisterHealth registers the unauthenticated service and dependency
// checks under /api.
func RegisterHealth(e *echo.Echo, h *handler.HealthHandler) {
	e.GET("/api/", h.Root)
	e.GET("/api/health", h.Live)
	e.GET("/api/health/db", h.DBCheck)
}

// RegisterAuth registers the register/login endpoints and the protected
// /api/auth/me route. touch is invoked with the user id on every
// authenticated request to stamp last activity.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, touch func(userID string)) {
	g := e.Group("/api/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	me := e.Group("/api/auth")
	me.Use(middleware.JWTAuth(jwtSecret, touch))
	me.GET("/me", a.Me)
}

// EntityHandlers bundles all record-keeping handlers for registration.
type EntityHandlers struct {
	Factories  *handler.FactoryHandler
	Products   *handler.ProductHandler
	Production *handler.ProductionHandler
	Materials  *handler.MaterialHandler
	Purchases  *handler.PurchaseHandler
	Usage      *handler.UsageHandler
	Sales      *handler.SaleHandler
	Customers  *handler.CustomerHandler
	Suppliers  *handler.SupplierHandler
	Employees  *handler.EmployeeHandler
	Payments   *handler.PaymentHandler
	Rates      *handler.RateHandler
	Expenses   *handler.ExpenseHandler
	Subs       *handler.SubscriptionHandler
}

// RegisterEntities registers every bearer-authed record-keeping route under
// /api. All routes share one JWT group; per-record ownership checks happen
// in the handlers.
func RegisterEntities(e *echo.Echo, h EntityHandlers, jwtSecret string, touch func(userID string)) {
	api := e.Group("/api")
	api.Use(middleware.JWTAuth(jwtSecret, touch))

	api.POST("/factories", h.Factories.Create)
	api.GET("/factories", h.Factories.List)
	api.GET("/factories/:id", h.Factories.Get)
	api.PUT("/factories/:id", h.Factories.Update)
	api.DELETE("/factories/:id", h.Factories.Delete)

	api.POST("/products", h.Products.Create)
	api.GET("/products/factory/:factoryID", h.Products.ListByFactory)
	api.GET("/products/:id", h.Products.Get)
	api.PUT("/products/:id", h.Products.Update)
	api.DELETE("/products/:id", h.Products.Delete)

	api.POST("/production", h.Production.Create)
	api.GET("/production/factory/:factoryID", h.Production.ListByFactory)
	api.GET("/production/:id", h.Production.Get)
	api.PUT("/production/:id", h.Production.Update)
	api.DELETE("/production/:id", h.Production.Delete)

	api.POST("/materials", h.Materials.Create)
	api.GET("/materials/factory/:factoryID", h.Materials.ListByFactory)
	api.PUT("/materials/:id", h.Materials.Update)
	api.DELETE("/materials/:id", h.Materials.Delete)
	api.GET("/materials/:id/stock", h.Materials.StockReport)

	api.POST("/material-purchases", h.Purchases.Create)
	api.GET("/material-purchases/factory/:factoryID", h.Purchases.ListByFactory)
	api.DELETE("/material-purchases/:id", h.Purchases.Delete)

	api.POST("/material-usage", h.Usage.Create)
	api.GET("/material-usage/factory/:factoryID", h.Usage.ListByFactory)
	api.DELETE("/material-usage/:id", h.Usage.Delete)

	api.POST("/sales", h.Sales.Create)
	api.GET("/sales/factory/:factoryID", h.Sales.ListByFactory)
	api.GET("/sales/:id", h.Sales.Get)
	api.PUT("/sales/:id", h.Sales.Update)
	api.DELETE("/sales/:id", h.Sales.Delete)

	api.POST("/customers", h.Customers.Create)
	api.GET("/customers/factory/:factoryID", h.Customers.ListByFactory)
	api.PUT("/customers/:id", h.Customers.Update)
	api.DELETE("/customers/:id", h.Customers.Delete)

	api.POST("/suppliers", h.Suppliers.Create)
	api.GET("/suppliers/factory/:factoryID", h.Suppliers.ListByFactory)
	api.PUT("/suppliers/:id", h.Suppliers.Update)
	api.DELETE("/suppliers/:id", h.Suppliers.Delete)

	api.POST("/employees", h.Employees.Create)
	api.GET("/employees/factory/:factoryID", h.Employees.ListByFactory)
	api.PUT("/employees/:id", h.Employees.Update)
	api.DELETE("/employees/:id", h.Employees.Delete)

	api.POST("/employee-payments", h.Payments.Create)
	api.GET("/employee-payments/factory/:factoryID", h.Payments.ListByFactory)
	api.DELETE("/employee-payments/:id", h.Payments.Delete)

	api.POST("/factory-rates", h.Rates.Create)
	api.GET("/factory-rates/factory/:factoryID", h.Rates.ListByFactory)
	api.PUT("/factory-rates/:id", h.Rates.Update)
	api.DELETE("/factory-rates/:id", h.Rates.Delete)

	api.POST("/other-expenses", h.Expenses.Create)
	api.GET("/other-expenses/factory/:factoryID", h.Expenses.ListByFactory)
	api.PUT("/other-expenses/:id", h.Expenses.Update)
	api.DELETE("/other-expenses/:id", h.Expenses.Delete)

	api.GET("/subscription/status", h.Subs.Status)
	api.POST("/subscription/create-order", h.Subs.CreateOrder)
	api.POST("/subscription/complete", h.Subs.Complete)
	api.POST("/subscription/restore", h.Subs.Restore)
}

// RegisterAdmin registers the operator endpoints. The PIN exchange is open;
// the report requires an admin-role token.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	e.POST("/api/admin/verify-pin", a.VerifyPin)

	g := e.Group("/api/admin")
	g.Use(middleware.JWTAuth(jwtSecret, nil))
	g.Use(middleware.RequireRole(utils.RoleAdmin))
	g.GET("/users", a.Users)
}
