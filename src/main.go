package main

import (
	"context"
	"fmt"
	"log"
	"os"

	_ "github.com/hamzaRio/MarrakechTours/docs"
	"github.com/hamzaRio/MarrakechTours/src/controllers"
	"github.com/hamzaRio/MarrakechTours/src/database"
	"github.com/hamzaRio/MarrakechTours/src/jobs"
	"github.com/hamzaRio/MarrakechTours/src/repositories"
	"github.com/hamzaRio/MarrakechTours/src/routes"
	"github.com/hamzaRio/MarrakechTours/src/services/activities"
	"github.com/hamzaRio/MarrakechTours/src/services/audits"
	"github.com/hamzaRio/MarrakechTours/src/services/auth"
	"github.com/hamzaRio/MarrakechTours/src/services/bookings"
	"github.com/hamzaRio/MarrakechTours/src/services/capacity"
	"github.com/hamzaRio/MarrakechTours/src/services/crm"
	"github.com/hamzaRio/MarrakechTours/src/services/notifications"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// @title           MarrakechTours API
// @version         1.0
// @description     Booking API for MarrakechTours day trips and activities.
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// MongoDB is preferred but not required: without it the app serves
	// from seeded in-memory repositories so the site stays up.
	repos := repositories.NewMemorySet()
	if err := database.ConnectMongoDB(); err != nil {
		log.Println("⚠️ MongoDB unavailable, using in-memory storage:", err)
	} else {
		repos = &repositories.Set{
			Activities: repositories.NewMongoActivityRepository(database.ActivityCollection),
			Bookings:   repositories.NewMongoBookingRepository(database.BookingCollection),
			Admins:     repositories.NewMongoAdminRepository(database.AdminCollection),
			AuditLogs:  repositories.NewMongoAuditLogRepository(database.AuditLogCollection),
		}
	}

	database.InitRedis()
	database.InitAsynq()

	stats := notifications.NewStats()
	notifier := notifications.NewNotifierFromEnv(stats)
	tracker := crm.NewStatusTracker()

	handlers := jobs.NewHandlers(repos.Bookings, notifier, tracker)
	go jobs.StartWorker(handlers)
	dispatcher := jobs.NewDispatcher(handlers)

	capacitySvc := capacity.NewService(repos.Activities, repos.Bookings)
	activitySvc := activities.NewService(repos.Activities)
	bookingSvc := bookings.NewService(repos.Bookings, repos.Activities, capacitySvc, dispatcher)
	authSvc := auth.NewService(repos.Admins)
	auditSvc := audits.NewService(repos.AuditLogs)

	authSvc.SeedDefaultAdmin(context.Background())

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
	}))

	routes.InitRoutes(app, &routes.Controllers{
		Activities: controllers.NewActivityController(activitySvc, auditSvc),
		Bookings:   controllers.NewBookingController(bookingSvc, auditSvc),
		Capacity:   controllers.NewCapacityController(capacitySvc),
		Auth:       controllers.NewAuthController(authSvc, auditSvc),
		Status:     controllers.NewStatusController(tracker, stats),
		AuditLogs:  controllers.NewAuditLogController(auditSvc),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("Server is running on port " + port)
	if err := app.Listen(fmt.Sprintf(":%s", port)); err != nil {
		log.Fatal(err)
	}
}
