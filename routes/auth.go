package routes

import (
	auth_handlers "formhub.link/handlers/auth"
	"formhub.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

func registerAuthRoutes(api fiber.Router, auth *middlewares.AuthMiddleware) {
	authHandler := auth_handlers.NewAuthHandler()
	authGroup := api.Group("/auth")

	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/me", auth.RequireAuth(), authHandler.Me)
}
