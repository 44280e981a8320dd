package middlewares

import (
	"errors"

	"formhub.link/configs/configslog"
	"formhub.link/models"
	"formhub.link/pkg/apierrors"
	"formhub.link/services"
	"formhub.link/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthMiddleware oturumdaki kullanıcıyı veritabanından çözer ve kimliği Locals'a yazar.
// Rol değişiklikleri ve silinen hesaplar bir sonraki istekte etkili olur.
type AuthMiddleware struct {
	userService services.IUserService
}

func NewAuthMiddleware(userService services.IUserService) *AuthMiddleware {
	return &AuthMiddleware{userService: userService}
}

// resolve oturumdaki kimliği döndürür. Oturum yoksa veya kullanıcı silinmişse kimlik nil'dir;
// veritabanı hataları oturuma dokunmadan geri döner.
func (m *AuthMiddleware) resolve(c *fiber.Ctx) (*models.Identity, error) {
	sess, err := utils.SessionStart(c)
	if err != nil {
		return nil, nil
	}
	userID, err := utils.GetUserIDFromSession(sess)
	if err != nil {
		return nil, nil
	}
	user, err := m.userService.GetUserByID(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			configslog.Log.Info("Oturumdaki kullanıcı bulunamadı, oturum kapatılıyor", zap.Uint("userID", userID))
			_ = utils.Logout(sess)
			return nil, nil
		}
		configslog.Log.Error("Oturumdaki kullanıcı yüklenemedi", zap.Uint("userID", userID), zap.Error(err))
		return nil, err
	}
	return user.Identity(), nil
}

// RequireAuth giriş yapılmamışsa 401 döner.
func (m *AuthMiddleware) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := m.resolve(c)
		if err != nil {
			return apierrors.Respond(c, err)
		}
		if identity == nil {
			return apierrors.Respond(c, services.ErrUnauthenticated)
		}
		c.Locals(utils.LocalsIdentity, identity)
		return c.Next()
	}
}

// OptionalAuth kimlik varsa Locals'a yazar; yoksa isteği anonim olarak geçirir.
func (m *AuthMiddleware) OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := m.resolve(c)
		if err != nil {
			return apierrors.Respond(c, err)
		}
		if identity != nil {
			c.Locals(utils.LocalsIdentity, identity)
		}
		return c.Next()
	}
}

// RequireAdmin RequireAuth'tan sonra kullanılmalıdır.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := utils.CurrentIdentity(c)
		if identity == nil {
			return apierrors.Respond(c, services.ErrUnauthenticated)
		}
		if !identity.IsAdmin() {
			configslog.Log.Warn("Admin olmayan kullanıcı admin rotasına erişmeye çalıştı",
				zap.Uint("userID", identity.ID), zap.String("path", c.Path()))
			return apierrors.Respond(c, services.ErrUserForbidden)
		}
		return c.Next()
	}
}
