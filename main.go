package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/clinicore/clinic-backend/cron"
	"github.com/clinicore/clinic-backend/db"
	"github.com/clinicore/clinic-backend/redis"
	"github.com/clinicore/clinic-backend/routes"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "migrate":
			db.Migrate()
			return
		case "seed":
			db.Seed()
			return
		}
	}

	app := fiber.New()
	db.Init()
	redis.InitRedis()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	routes.SetupAuthRoutes(app)
	routes.SetupAvailabilityRoutes(app)
	routes.SetupAppointmentRoutes(app)
	routes.SetupBillingRoutes(app)
	routes.SetupCatalogRoutes(app)

	cron.StartCronJobs()

	log.Fatal(app.Listen(":8000"))
}
