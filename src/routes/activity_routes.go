package routes

import (
	"github.com/gofiber/fiber/v2"
)

// activityRoutes mounts the public tour catalog.
func activityRoutes(api fiber.Router, c *Controllers) {
	activities := api.Group("/activities")
	activities.Get("/", c.Activities.GetAllActivities)
	activities.Get("/:id", c.Activities.GetActivityByID)
}
