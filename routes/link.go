package routes

import (
	handlers "formhub.link/handlers/link"
	"formhub.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerPublicLinkRoutes paylaşım linki rotaları (/f/:key).
func registerPublicLinkRoutes(app *fiber.App, auth *middlewares.AuthMiddleware) {
	publicHandler := handlers.NewPublicLinkHandler()

	linkGroup := app.Group("/f")
	linkGroup.Get("/:key", publicHandler.HandleLink)
	linkGroup.Post("/:key/submissions", auth.OptionalAuth(), publicHandler.HandleSubmit)
}
