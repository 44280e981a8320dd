package handlers // handlers/panel paketi

import (
	"formhub.link/configs/configslog"
	"formhub.link/pkg/apierrors"
	"formhub.link/pkg/queryparams"
	"formhub.link/services"
	"formhub.link/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PanelFormHandler form şeması uç noktaları.
type PanelFormHandler struct {
	service      services.IFormService
	draftService services.IDraftService
}

func NewPanelFormHandler() *PanelFormHandler {
	return &PanelFormHandler{
		service:      services.NewFormService(),
		draftService: services.NewDraftService(),
	}
}

// ListForms formları gönderim sayılarıyla listeler.
func (h *PanelFormHandler) ListForms(c *fiber.Ctx) error {
	params := queryparams.DefaultListParams("created_at")
	if err := c.QueryParser(&params); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "geçersiz sorgu parametreleri")
	}
	forms, err := h.service.ListForms(c.UserContext(), utils.CurrentIdentity(c), params)
	if err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(fiber.Map{"data": forms})
}

// CreateForm yeni form oluşturur ve oturumdaki taslağı temizler.
func (h *PanelFormHandler) CreateForm(c *fiber.Ctx) error {
	var input services.FormInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "geçersiz form verisi")
	}
	identity := utils.CurrentIdentity(c)
	form, err := h.service.CreateForm(c.UserContext(), identity, input)
	if err != nil {
		return apierrors.Respond(c, err)
	}

	if sess, err := utils.SessionStart(c); err == nil {
		if err := h.draftService.Clear(sess); err != nil {
			configslog.Log.Warn("Panel - CreateForm taslak temizlenemedi", zap.Uint("userID", identity.ID), zap.Error(err))
		}
	}
	return c.Status(fiber.StatusCreated).JSON(form)
}

// GetForm tek bir formu döndürür.
func (h *PanelFormHandler) GetForm(c *fiber.Ctx) error {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	form, err := h.service.GetForm(c.UserContext(), utils.CurrentIdentity(c), id)
	if err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(form)
}

// ReplaceForm formun tüm şemasını değiştirir.
func (h *PanelFormHandler) ReplaceForm(c *fiber.Ctx) error {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	var input services.FormInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "geçersiz form verisi")
	}
	form, err := h.service.ReplaceForm(c.UserContext(), utils.CurrentIdentity(c), id, input)
	if err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(form)
}

// DeleteForm formu ve gönderimlerini siler.
func (h *PanelFormHandler) DeleteForm(c *fiber.Ctx) error {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteForm(c.UserContext(), utils.CurrentIdentity(c), id); err != nil {
		return apierrors.Respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
