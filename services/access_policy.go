package services

import (
	"formhub.link/models"
)

// Roster kullanıcı listesini temsil eden kaynak işaretçisi.
type Roster struct{}

// AccessPolicy form, gönderim ve kullanıcı listesi işlemlerini yetkilendirir.
// Rol tek yetki eksenidir; formlar paylaşımlı çalışma alanındadır.
type AccessPolicy struct {
	AllowAnonymousSubmission bool
}

// NewAccessPolicy uygulama ayarlarından politika üretir.
func NewAccessPolicy(allowAnonymous bool) AccessPolicy {
	return AccessPolicy{AllowAnonymousSubmission: allowAnonymous}
}

// CanRead kimliğin kaynağı okuyup okuyamayacağını söyler.
func (p AccessPolicy) CanRead(identity *models.Identity, resource any) bool {
	if identity == nil {
		return false
	}
	switch r := resource.(type) {
	case *models.Form, models.Form:
		return true
	case *models.Submission:
		// Tam cevap görünümü form okuyabilen herkese açıktır.
		return r != nil
	case models.Submission:
		return true
	case Roster, *Roster:
		return identity.IsAdmin()
	case *models.User:
		return identity.IsAdmin() || (r != nil && r.ID == identity.ID)
	}
	return false
}

// CanWrite kimliğin kaynağı değiştirip değiştiremeyeceğini söyler.
// Gönderimler oluşturulduktan sonra değiştirilemez.
func (p AccessPolicy) CanWrite(identity *models.Identity, resource any) bool {
	if identity == nil {
		return false
	}
	switch resource.(type) {
	case *models.Form, models.Form:
		return true
	case *models.Submission, models.Submission:
		return false
	case Roster, *Roster, *models.User, models.User:
		return identity.IsAdmin()
	}
	return false
}

// CanSubmit kimliğin (nil ise anonim) forma gönderim yapıp yapamayacağını söyler.
func (p AccessPolicy) CanSubmit(identity *models.Identity, form *models.Form) bool {
	if form == nil {
		return false
	}
	if identity != nil {
		return true
	}
	return p.AllowAnonymousSubmission
}

// CanListOwnSubmission gönderimin "gönderimlerim" listesinde görünüp görünemeyeceği.
func (p AccessPolicy) CanListOwnSubmission(identity *models.Identity, sub *models.Submission) bool {
	if identity == nil || sub == nil || sub.SubmitterID == nil {
		return false
	}
	return *sub.SubmitterID == identity.ID
}

// AuthorizeRoleChange rol değişikliğini denetler.
func (p AccessPolicy) AuthorizeRoleChange(actor *models.Identity, role models.UserRole) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	if !actor.IsAdmin() {
		return ErrUserForbidden
	}
	if !role.Valid() {
		return newValidationError("geçersiz rol",
			FieldViolation{Label: "role", Reason: ReasonInvalidRole, Message: "rol admin veya editor olmalıdır"})
	}
	return nil
}

// AuthorizeUserDeletion kullanıcı silmeyi denetler; admin kendi hesabını silemez.
func (p AccessPolicy) AuthorizeUserDeletion(actor *models.Identity, targetID uint) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	if !actor.IsAdmin() {
		return ErrUserForbidden
	}
	if actor.ID == targetID {
		return newValidationError("kendi hesabınızı silemezsiniz",
			FieldViolation{Label: "id", Reason: ReasonSelfDeletion, Message: "kendi hesabınızı silemezsiniz"})
	}
	return nil
}
