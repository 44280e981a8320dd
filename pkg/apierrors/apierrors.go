// Package apierrors servis hatalarını HTTP yanıtlarına çevirir. İş mantığı içermez.
package apierrors

import (
	"errors"

	"formhub.link/configs/configslog"
	"formhub.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Body hata yanıtının gövdesi.
type Body struct {
	Error      string                    `json:"error"`
	Kind       string                    `json:"kind"`
	Violations []services.FieldViolation `json:"violations,omitempty"`
}

// StatusFor hata türünün HTTP durum kodunu döndürür.
func StatusFor(kind services.ErrorKind) int {
	switch kind {
	case services.KindValidation:
		return fiber.StatusBadRequest
	case services.KindNotFound:
		return fiber.StatusNotFound
	case services.KindUnauthenticated:
		return fiber.StatusUnauthorized
	case services.KindAuthorization:
		return fiber.StatusForbidden
	case services.KindConflict:
		return fiber.StatusConflict
	case services.KindUpstream:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// Respond hatayı sınıflandırıp JSON olarak yazar.
func Respond(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(Body{Error: fe.Message, Kind: "http"})
	}

	kind := services.KindOf(err)
	body := Body{Error: err.Error(), Kind: kind.String()}

	var ve *services.ValidationError
	if errors.As(err, &ve) {
		body.Error = ve.Message
		body.Violations = ve.Violations
	}
	if kind == services.KindInternal {
		configslog.Log.Error("İstek işlenirken beklenmeyen hata",
			zap.String("method", c.Method()), zap.String("path", c.Path()), zap.Error(err))
		body.Error = "beklenmeyen bir hata oluştu"
	}
	return c.Status(StatusFor(kind)).JSON(body)
}

// ErrorHandler fiber uygulamasının varsayılan hata işleyicisi.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return Respond(c, err)
}
