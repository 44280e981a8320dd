package handlers

import (
	"formhub.link/configs/configslog"
	"formhub.link/pkg/apierrors"
	"formhub.link/services"
	"formhub.link/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthHandler kayıt, giriş ve oturum işlemleri.
type AuthHandler struct {
	userService services.IUserService
}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{userService: services.NewUserService()}
}

// Register yeni editor hesabı oluşturur.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "geçersiz istek gövdesi")
	}
	user, err := h.userService.Register(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return apierrors.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": user})
}

// Login kimlik bilgilerini doğrular ve oturum açar.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "geçersiz istek gövdesi")
	}
	user, err := h.userService.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return apierrors.Respond(c, err)
	}
	sess, err := utils.SessionStart(c)
	if err != nil {
		configslog.Log.Error("Login - Session başlatılamadı", zap.Error(err))
		return apierrors.Respond(c, err)
	}
	if err := utils.Login(sess, user); err != nil {
		configslog.Log.Error("Login - Session kaydedilemedi", zap.Uint("userID", user.ID), zap.Error(err))
		return apierrors.Respond(c, err)
	}
	configslog.SLog.Infof("Kullanıcı giriş yaptı: ID %d", user.ID)
	return c.JSON(fiber.Map{"user": user})
}

// Logout oturumu kapatır.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess, err := utils.SessionStart(c)
	if err == nil {
		if err := utils.Logout(sess); err != nil {
			configslog.Log.Warn("Logout - Session silinemedi", zap.Error(err))
		}
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Me oturumdaki kimliği döndürür.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	identity := utils.CurrentIdentity(c)
	if identity == nil {
		return apierrors.Respond(c, services.ErrUnauthenticated)
	}
	return c.JSON(fiber.Map{"user": identity})
}
