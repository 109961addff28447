package routes

import (
	"github.com/hamzaRio/MarrakechTours/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func authRoutes(api fiber.Router, c *Controllers) {
	auth := api.Group("/auth")
	auth.Post("/login", c.Auth.Login)
	auth.Post("/logout", middleware.AuthJWT, c.Auth.Logout)
	auth.Get("/me", middleware.AuthJWT, c.Auth.Me)
}
