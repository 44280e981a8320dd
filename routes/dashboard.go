package routes

import (
	handlers "formhub.link/handlers/dashboard"
	"formhub.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerDashboardRoutes /api/admin altındaki kullanıcı yönetimi rotaları. Sadece admin.
func registerDashboardRoutes(api fiber.Router, auth *middlewares.AuthMiddleware) {
	userHandler := handlers.NewUserHandler()

	adminGroup := api.Group("/admin", auth.RequireAuth(), middlewares.RequireAdmin())
	adminGroup.Get("/users", userHandler.ListUsers)
	adminGroup.Put("/users/:id", userHandler.UpdateRole)
	adminGroup.Delete("/users/:id", userHandler.DeleteUser)
}
