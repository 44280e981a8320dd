package routes

import (
	"formhub.link/configs"
	"formhub.link/middlewares"
	"formhub.link/pkg/apierrors"
	"formhub.link/services"
	"formhub.link/utils"

	"github.com/gofiber/fiber/v2"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// NewApp ortak hata işleyicisi ile fiber uygulamasını oluşturur.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      "formhub",
		ErrorHandler: apierrors.ErrorHandler,
	})
}

// SetupRoutes tüm uygulama rotalarını ve genel middleware'leri ayarlar.
func SetupRoutes(app *fiber.App) {
	cfg := configs.GetConfig()

	// --- Genel Middleware'ler ---
	app.Use(recoverMiddleware.New())
	app.Use(requestid.New())
	app.Use(middlewares.LogRequest())
	app.Use(middlewares.RequestTimeout(cfg.RequestTimeout))
	app.Use(initializeSession())

	auth := middlewares.NewAuthMiddleware(services.NewUserService())

	// --- Rota Grupları ---
	api := app.Group("/api")
	registerAuthRoutes(api, auth)
	registerPanelRoutes(api, auth)
	registerDashboardRoutes(api, auth)

	// --- Public Link Rotası ---
	registerPublicLinkRoutes(app, auth)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// --- 404 Handler ---
	app.Use(notFoundHandler)
}

func initializeSession() fiber.Handler {
	sessionStore := configs.SetupSession()
	return func(c *fiber.Ctx) error {
		c.Locals(utils.LocalsSessionStore, sessionStore)
		return c.Next()
	}
}

func notFoundHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Kaynak bulunamadı"})
}
