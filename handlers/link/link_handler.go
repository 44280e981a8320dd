package handlers // handlers/link paketi

import (
	"formhub.link/models"
	"formhub.link/pkg/apierrors"
	"formhub.link/services"
	"formhub.link/utils"

	panel "formhub.link/handlers/panel"

	"github.com/gofiber/fiber/v2"
)

// PublicForm paylaşım linkinden doldurulacak formun herkese açık görünümü.
type PublicForm struct {
	Key      string                   `json:"key"`
	Name     string                   `json:"name"`
	Category string                   `json:"categoria"`
	Fields   []models.FieldDefinition `json:"fields"`
}

// PublicLinkHandler /f/:key altındaki public uç noktalar.
type PublicLinkHandler struct {
	linkService       services.ILinkService
	submissionService services.ISubmissionService
}

func NewPublicLinkHandler() *PublicLinkHandler {
	return &PublicLinkHandler{
		linkService:       services.NewLinkService(),
		submissionService: services.NewSubmissionService(),
	}
}

// HandleLink formu doldurmak için şemayı döndürür.
func (h *PublicLinkHandler) HandleLink(c *fiber.Ctx) error {
	key := c.Params("key")
	form, err := h.linkService.GetFormByKey(c.UserContext(), key)
	if err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(PublicForm{Key: key, Name: form.Name, Category: form.Category, Fields: form.Fields})
}

// HandleSubmit paylaşım linki üzerinden gönderim yapar.
func (h *PublicLinkHandler) HandleSubmit(c *fiber.Ctx) error {
	payload, err := panel.ParseSubmitBody(c)
	if err != nil {
		return err
	}
	result, err := h.submissionService.SubmitByKey(c.UserContext(), utils.CurrentIdentity(c), c.Params("key"), payload)
	if err != nil {
		return apierrors.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}
