package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"formhub.link/configs"
	"formhub.link/configs/configslog"
	"formhub.link/models"
	"formhub.link/repositories"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserServiceError özel servis hataları
type UserServiceError string

func (e UserServiceError) Error() string { return string(e) }

func (e UserServiceError) Kind() ErrorKind {
	switch e {
	case ErrUserNotFound:
		return KindNotFound
	case ErrUserEmailTaken:
		return KindConflict
	case ErrInvalidCredentials:
		return KindUnauthenticated
	case ErrUserForbidden:
		return KindAuthorization
	}
	return KindInternal
}

const (
	ErrUserNotFound          UserServiceError = "kullanıcı bulunamadı"
	ErrUserEmailTaken        UserServiceError = "bu e-posta adresi zaten kayıtlı"
	ErrInvalidCredentials    UserServiceError = "e-posta veya şifre hatalı"
	ErrUserForbidden         UserServiceError = "bu işlem sadece adminler tarafından yapılabilir"
	ErrUserCreationFailed    UserServiceError = "kullanıcı oluşturulamadı"
	ErrUserUpdateFailed      UserServiceError = "kullanıcı güncellenemedi"
	ErrUserDeletionFailed    UserServiceError = "kullanıcı silinemedi"
	ErrPasswordHashingFailed UserServiceError = "şifre oluşturulamadı"
)

// MinPasswordLength kayıt sırasında kabul edilen en kısa şifre.
const MinPasswordLength = 6

// IUserService kimlik ve kullanıcı listesi işlemleri için arayüz.
type IUserService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	ListUsers(ctx context.Context, actor *models.Identity) ([]models.User, error)
	UpdateRole(ctx context.Context, actor *models.Identity, id uint, role models.UserRole) (*models.User, error)
	DeleteUser(ctx context.Context, actor *models.Identity, id uint) error
}

// UserService IUserService arayüzünü uygular.
type UserService struct {
	repo   repositories.IUserRepository
	policy AccessPolicy
}

func NewUserService() IUserService {
	return NewUserServiceWithDB(configs.GetDB(), NewAccessPolicy(configs.GetConfig().AllowAnonymousSubmission))
}

func NewUserServiceWithDB(db *gorm.DB, policy AccessPolicy) IUserService {
	return &UserService{repo: repositories.NewUserRepositoryTx(db), policy: policy}
}

// ValidateCredentials kayıt girdisini doğrular.
func ValidateCredentials(email, password string) error {
	var vc violationCollector
	email = strings.TrimSpace(email)
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		vc.add("email", ReasonInvalidFormat, "geçerli bir e-posta adresi giriniz")
	}
	if len(password) < MinPasswordLength {
		vc.add("password", ReasonRequired, "şifre en az 6 karakter olmalıdır")
	}
	return vc.err("kayıt bilgileri geçersiz")
}

// HashPassword şifreyi bcrypt ile hashler.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", ErrPasswordHashingFailed
	}
	return string(hashed), nil
}

// Register editor rolünde yeni kullanıcı oluşturur.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	if err := ValidateCredentials(email, password); err != nil {
		return nil, err
	}
	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserEmailTaken
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{Email: email, PasswordHash: hash, Role: models.RoleEditor}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserEmailTaken
		}
		configslog.Log.Error("Kullanıcı oluşturulurken repository hatası", zap.Error(err))
		return nil, ErrUserCreationFailed
	}
	configslog.SLog.Infof("Yeni kullanıcı kaydoldu: ID %d", user.ID)
	return user, nil
}

// Authenticate e-posta ve şifreyi doğrular.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		configslog.Log.Warn("Hatalı şifre ile giriş denemesi", zap.Uint("userID", user.ID))
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ListUsers kullanıcı listesini döndürür (sadece admin).
func (s *UserService) ListUsers(ctx context.Context, actor *models.Identity) ([]models.User, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}
	if !s.policy.CanRead(actor, Roster{}) {
		return nil, ErrUserForbidden
	}
	return s.repo.FindAll(ctx)
}

// UpdateRole kullanıcının rolünü değiştirir (sadece admin).
func (s *UserService) UpdateRole(ctx context.Context, actor *models.Identity, id uint, role models.UserRole) (*models.User, error) {
	if err := s.policy.AuthorizeRoleChange(actor, role); err != nil {
		return nil, err
	}
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateRole(models.ContextWithUserID(ctx, actor.ID), id, role); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, ErrUserUpdateFailed
	}
	user.Role = role
	configslog.SLog.Infof("Kullanıcı rolü değişti: ID %d -> %s (Değiştiren: %d)", id, role, actor.ID)
	return user, nil
}

// DeleteUser kullanıcıyı siler (sadece admin, kendi hesabı hariç).
func (s *UserService) DeleteUser(ctx context.Context, actor *models.Identity, id uint) error {
	if err := s.policy.AuthorizeUserDeletion(actor, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return ErrUserDeletionFailed
	}
	configslog.SLog.Infof("Kullanıcı silindi: ID %d (Silen: %d)", id, actor.ID)
	return nil
}

var _ IUserService = (*UserService)(nil)
