package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinicore/clinic-backend/controllers"
	"github.com/clinicore/clinic-backend/middleware"
	"github.com/clinicore/clinic-backend/models"
)

// SetupAppointmentRoutes configures all appointment related routes
func SetupAppointmentRoutes(app *fiber.App) {
	appointment := app.Group("/appointments", middleware.Protected())

	appointment.Get("/upcoming", middleware.RequireRole(models.RoleDoctor), controllers.GetDoctorUpcomingAppointments)
	appointment.Get("/history", middleware.RequireRole(models.RoleDoctor), controllers.GetDoctorAppointmentHistory)

	appointment.Get("/:id", controllers.GetAppointment)
	appointment.Post("/", middleware.RequireRole(models.RoleReceptionist, models.RolePatient), controllers.BookAppointment)
	appointment.Put("/:id", middleware.RequireRole(models.RoleReceptionist, models.RolePatient), controllers.RescheduleAppointment)
	appointment.Post("/:id/cancel", middleware.RequireRole(models.RoleReceptionist, models.RolePatient, models.RoleDoctor), controllers.CancelAppointment)
	appointment.Post("/:id/complete", middleware.RequireRole(models.RoleDoctor), controllers.CompleteAppointment)
	appointment.Post("/:id/attachments", middleware.RequireRole(models.RoleDoctor), controllers.UploadConsultationAttachment)
}
