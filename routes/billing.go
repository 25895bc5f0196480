package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinicore/clinic-backend/controllers"
	"github.com/clinicore/clinic-backend/middleware"
	"github.com/clinicore/clinic-backend/models"
)

// SetupBillingRoutes configures invoice and payment routes
func SetupBillingRoutes(app *fiber.App) {
	invoices := app.Group("/invoices", middleware.Protected())
	invoices.Post("/", middleware.RequireRole(models.RoleReceptionist), controllers.CreateInvoice)
	invoices.Get("/:id", controllers.GetInvoice)

	payments := app.Group("/payments", middleware.Protected())
	payments.Post("/", middleware.RequireRole(models.RoleReceptionist), controllers.RecordPayment)

	app.Get("/patients/:id/invoices", middleware.Protected(), controllers.ListPatientInvoices)
}
