package handlers // handlers/dashboard paketi

import (
	"formhub.link/models"
	"formhub.link/pkg/apierrors"
	"formhub.link/services"
	"formhub.link/utils"

	"github.com/gofiber/fiber/v2"
)

type roleRequest struct {
	Role models.UserRole `json:"role"`
}

// UserHandler admin kullanıcı yönetimi.
type UserHandler struct {
	service services.IUserService
}

func NewUserHandler() *UserHandler {
	return &UserHandler{service: services.NewUserService()}
}

func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.service.ListUsers(c.UserContext(), utils.CurrentIdentity(c))
	if err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(fiber.Map{"data": users})
}

// UpdateRole kullanıcının rolünü admin veya editor yapar.
func (h *UserHandler) UpdateRole(c *fiber.Ctx) error {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req roleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "geçersiz istek gövdesi")
	}
	user, err := h.service.UpdateRole(c.UserContext(), utils.CurrentIdentity(c), id, req.Role)
	if err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(fiber.Map{"user": user})
}

// DeleteUser kullanıcıyı siler; admin kendi hesabını silemez.
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteUser(c.UserContext(), utils.CurrentIdentity(c), id); err != nil {
		return apierrors.Respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
