package handlers

import (
	"formhub.link/configs/configslog"
	"formhub.link/pkg/apierrors"
	"formhub.link/services"
	"formhub.link/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type uploadSignRequest struct {
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
}

// PanelWorkspaceHandler taslak, kategori ve yükleme gibi form oluşturucu yardımcıları.
type PanelWorkspaceHandler struct {
	draftService    services.IDraftService
	categoryService services.ICategoryService
	uploadService   services.IUploadService
}

func NewPanelWorkspaceHandler() *PanelWorkspaceHandler {
	return &PanelWorkspaceHandler{
		draftService:    services.NewDraftService(),
		categoryService: services.NewCategoryService(),
		uploadService:   services.NewUploadService(),
	}
}

// GetDraft oturumdaki taslağı döndürür; yoksa draft null'dır.
func (h *PanelWorkspaceHandler) GetDraft(c *fiber.Ctx) error {
	sess, err := utils.SessionStart(c)
	if err != nil {
		return apierrors.Respond(c, err)
	}
	draft, err := h.draftService.Load(sess)
	if err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(fiber.Map{"draft": draft})
}

// SaveDraft taslağı oturuma yazar.
func (h *PanelWorkspaceHandler) SaveDraft(c *fiber.Ctx) error {
	var draft services.FormDraft
	if err := c.BodyParser(&draft); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "geçersiz taslak verisi")
	}
	sess, err := utils.SessionStart(c)
	if err != nil {
		return apierrors.Respond(c, err)
	}
	saved, err := h.draftService.Save(sess, draft)
	if err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(fiber.Map{"draft": saved})
}

// ClearDraft taslağı siler.
func (h *PanelWorkspaceHandler) ClearDraft(c *fiber.Ctx) error {
	sess, err := utils.SessionStart(c)
	if err != nil {
		return apierrors.Respond(c, err)
	}
	if err := h.draftService.Clear(sess); err != nil {
		return apierrors.Respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListCategories kategori önerilerini döndürür.
func (h *PanelWorkspaceHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.categoryService.ListCategories(c.UserContext())
	if err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(fiber.Map{"data": categories})
}

// SignUpload dosya için imzalı yükleme adresi üretir.
func (h *PanelWorkspaceHandler) SignUpload(c *fiber.Ctx) error {
	var req uploadSignRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "geçersiz yükleme isteği")
	}
	slot, err := h.uploadService.RequestUploadSlot(c.UserContext(), utils.CurrentIdentity(c), req.FileName, req.FileType)
	if err != nil {
		configslog.Log.Info("Yükleme adresi üretilemedi", zap.String("fileName", req.FileName), zap.Error(err))
		return apierrors.Respond(c, err)
	}
	return c.JSON(slot)
}
