package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinicore/clinic-backend/controllers"
	"github.com/clinicore/clinic-backend/middleware"
	"github.com/clinicore/clinic-backend/models"
)

// SetupAvailabilityRoutes configures doctor availability routes
func SetupAvailabilityRoutes(app *fiber.App) {
	doctors := app.Group("/doctors")

	// Free slots for a date; open to any authenticated user.
	doctors.Get("/:id/availability", middleware.Protected(), controllers.GetFreeSlots)
	doctors.Get("/:id/availability/rules", middleware.Protected(), controllers.GetAvailabilityRules)
	doctors.Post("/:id/availability", middleware.Protected(), middleware.RequireRole(models.RoleDoctor), controllers.SetAvailability)
}
