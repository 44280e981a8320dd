package handlers

import (
	"bytes"
	"fmt"

	"formhub.link/pkg/apierrors"
	"formhub.link/pkg/queryparams"
	"formhub.link/services"
	"formhub.link/utils"

	"github.com/gofiber/fiber/v2"
)

type submitRequest struct {
	Data map[string]any `json:"data"`
}

// PanelSubmissionHandler gönderim, cevap tablosu ve analiz uç noktaları.
type PanelSubmissionHandler struct {
	service         services.ISubmissionService
	analysisService services.IAnalysisService
}

func NewPanelSubmissionHandler() *PanelSubmissionHandler {
	return &PanelSubmissionHandler{
		service:         services.NewSubmissionService(),
		analysisService: services.NewAnalysisService(),
	}
}

// ParseSubmitBody gönderim gövdesini okur; data alanı yoksa boş gönderim kabul edilir.
func ParseSubmitBody(c *fiber.Ctx) (map[string]any, error) {
	var req submitRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "geçersiz gönderim verisi")
	}
	if req.Data == nil {
		req.Data = map[string]any{}
	}
	return req.Data, nil
}

// Submit forma gönderim yapar; anonim gönderim ayara bağlıdır.
func (h *PanelSubmissionHandler) Submit(c *fiber.Ctx) error {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	payload, err := ParseSubmitBody(c)
	if err != nil {
		return err
	}
	result, err := h.service.Submit(c.UserContext(), utils.CurrentIdentity(c), id, payload)
	if err != nil {
		return apierrors.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

func listParams(c *fiber.Ctx) (queryparams.ListParams, error) {
	params := queryparams.DefaultListParams("created_at")
	if err := c.QueryParser(&params); err != nil {
		return params, fiber.NewError(fiber.StatusBadRequest, "geçersiz sorgu parametreleri")
	}
	return params, nil
}

// ListSubmissions formun cevap tablosunu döndürür.
func (h *PanelSubmissionHandler) ListSubmissions(c *fiber.Ctx) error {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	params, err := listParams(c)
	if err != nil {
		return err
	}
	result, err := h.service.ListForForm(c.UserContext(), utils.CurrentIdentity(c), id, params)
	if err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(result)
}

// ExportSubmissions cevap tablosunu CSV olarak indirir.
func (h *PanelSubmissionHandler) ExportSubmissions(c *fiber.Ctx) error {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	params, err := listParams(c)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := h.service.ExportCSV(c.UserContext(), utils.CurrentIdentity(c), id, params, &buf); err != nil {
		return apierrors.Respond(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Attachment(fmt.Sprintf("form-%d-submissions.csv", id))
	return c.Send(buf.Bytes())
}

// MySubmissions çağıranın kendi gönderimlerini listeler.
func (h *PanelSubmissionHandler) MySubmissions(c *fiber.Ctx) error {
	subs, err := h.service.ListMine(c.UserContext(), utils.CurrentIdentity(c))
	if err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(fiber.Map{"data": subs})
}

// Analysis formun seçmeli alanları için dağılım raporu.
func (h *PanelSubmissionHandler) Analysis(c *fiber.Ctx) error {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	report, err := h.analysisService.Analyze(c.UserContext(), utils.CurrentIdentity(c), id)
	if err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(report)
}
