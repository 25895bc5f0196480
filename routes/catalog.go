package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinicore/clinic-backend/controllers"
	"github.com/clinicore/clinic-backend/middleware"
	"github.com/clinicore/clinic-backend/models"
)

// SetupCatalogRoutes configures reference-data and patient directory routes
func SetupCatalogRoutes(app *fiber.App) {
	treatments := app.Group("/treatments")
	treatments.Get("/", controllers.GetAllTreatments)
	treatments.Get("/:id", controllers.GetTreatment)
	treatments.Post("/", middleware.Protected(), middleware.RequireRole(models.RoleReceptionist), controllers.CreateTreatment)
	treatments.Patch("/:id", middleware.Protected(), middleware.RequireRole(models.RoleReceptionist), controllers.UpdateTreatment)
	treatments.Delete("/:id", middleware.Protected(), middleware.RequireRole(models.RoleReceptionist), controllers.DeleteTreatment)

	branches := app.Group("/branches")
	branches.Get("/", controllers.GetAllBranches)
	branches.Post("/", middleware.Protected(), middleware.RequireRole(models.RoleReceptionist), controllers.CreateBranch)
	branches.Patch("/:id", middleware.Protected(), middleware.RequireRole(models.RoleReceptionist), controllers.UpdateBranch)
	branches.Delete("/:id", middleware.Protected(), middleware.RequireRole(models.RoleReceptionist), controllers.DeleteBranch)

	specialties := app.Group("/specialties")
	specialties.Get("/", controllers.GetAllSpecialties)
	specialties.Post("/", middleware.Protected(), middleware.RequireRole(models.RoleReceptionist), controllers.CreateSpecialty)
	specialties.Delete("/:id", middleware.Protected(), middleware.RequireRole(models.RoleReceptionist), controllers.DeleteSpecialty)

	patients := app.Group("/patients", middleware.Protected())
	patients.Get("/", middleware.RequireRole(models.RoleReceptionist, models.RoleDoctor), controllers.GetAllPatients)
	patients.Get("/:id", controllers.GetPatient)
	patients.Post("/", middleware.RequireRole(models.RoleReceptionist), controllers.CreatePatient)
	patients.Patch("/:id", middleware.RequireRole(models.RoleReceptionist), controllers.UpdatePatient)
	patients.Delete("/:id", middleware.RequireRole(models.RoleReceptionist), controllers.DeletePatient)
}
