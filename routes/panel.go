package routes

import (
	panel_handlers "formhub.link/handlers/panel"
	"formhub.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerPanelRoutes form oluşturucu ve cevap rotaları.
// Gönderim ve yükleme rotaları opsiyonel kimlikle çalışır; anonim erişim ayara bağlıdır.
func registerPanelRoutes(api fiber.Router, auth *middlewares.AuthMiddleware) {
	formHandler := panel_handlers.NewPanelFormHandler()
	submissionHandler := panel_handlers.NewPanelSubmissionHandler()
	workspaceHandler := panel_handlers.NewPanelWorkspaceHandler()

	api.Post("/forms/:id/submissions", auth.OptionalAuth(), submissionHandler.Submit)
	api.Post("/uploads/sign", auth.OptionalAuth(), workspaceHandler.SignUpload)

	requireAuth := auth.RequireAuth()

	api.Get("/forms", requireAuth, formHandler.ListForms)
	api.Post("/forms", requireAuth, formHandler.CreateForm)
	api.Get("/forms/:id", requireAuth, formHandler.GetForm)
	api.Put("/forms/:id", requireAuth, formHandler.ReplaceForm)
	api.Delete("/forms/:id", requireAuth, formHandler.DeleteForm)

	api.Get("/forms/:id/submissions", requireAuth, submissionHandler.ListSubmissions)
	api.Get("/forms/:id/submissions/export", requireAuth, submissionHandler.ExportSubmissions)
	api.Get("/forms/:id/analysis", requireAuth, submissionHandler.Analysis)
	api.Get("/submissions/me", requireAuth, submissionHandler.MySubmissions)

	api.Get("/categories", requireAuth, workspaceHandler.ListCategories)
	api.Get("/drafts/form", requireAuth, workspaceHandler.GetDraft)
	api.Put("/drafts/form", requireAuth, workspaceHandler.SaveDraft)
	api.Delete("/drafts/form", requireAuth, workspaceHandler.ClearDraft)
}
