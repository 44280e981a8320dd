package utils

import (
	"errors"
	"fmt"
	"strconv"

	"formhub.link/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	LocalsSessionStore = "session_store"
	LocalsIdentity     = "identity"

	sessionUserIDKey = "user_id"
)

var (
	ErrNoSessionStore = errors.New("session store bulunamadı")
	ErrNoUserInSess   = errors.New("oturumda kullanıcı yok")
)

// SessionStart istek için oturumu açar.
func SessionStart(c *fiber.Ctx) (*session.Session, error) {
	store, ok := c.Locals(LocalsSessionStore).(*session.Store)
	if !ok || store == nil {
		return nil, ErrNoSessionStore
	}
	return store.Get(c)
}

// GetUserIDFromSession oturumdaki kullanıcı ID'sini okur.
func GetUserIDFromSession(sess *session.Session) (uint, error) {
	switch v := sess.Get(sessionUserIDKey).(type) {
	case uint:
		if v != 0 {
			return v, nil
		}
	case string:
		id, err := strconv.ParseUint(v, 10, 64)
		if err == nil && id != 0 {
			return uint(id), nil
		}
	}
	return 0, ErrNoUserInSess
}

// Login oturumu yeniler ve kullanıcıyı oturuma yazar.
func Login(sess *session.Session, user *models.User) error {
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Set(sessionUserIDKey, strconv.FormatUint(uint64(user.ID), 10))
	return sess.Save()
}

// Logout oturumu tamamen siler.
func Logout(sess *session.Session) error {
	return sess.Destroy()
}

// CurrentIdentity middleware'in çözdüğü kimliği döndürür; yoksa nil.
func CurrentIdentity(c *fiber.Ctx) *models.Identity {
	identity, _ := c.Locals(LocalsIdentity).(*models.Identity)
	return identity
}

// ParseIDParam yol parametresini pozitif bir ID'ye çevirir.
func ParseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("geçersiz %s parametresi", name))
	}
	return uint(id), nil
}
