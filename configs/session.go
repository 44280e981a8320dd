package configs

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// SessionCookieName oturum çerezinin adı.
const SessionCookieName = "formhub_session"

// SetupSession fiber session store'unu oluşturur.
func SetupSession() *session.Store {
	cfg := GetConfig()
	return session.New(session.Config{
		Expiration:     cfg.SessionExpiration,
		KeyLookup:      "cookie:" + SessionCookieName,
		CookieHTTPOnly: true,
		CookieSecure:   cfg.Env == "production",
		CookieSameSite: fiber.CookieSameSiteLaxMode,
	})
}
