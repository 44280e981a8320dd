package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"formhub.link/configs"
	"formhub.link/configs/configslog"
	"formhub.link/models"
	"formhub.link/pkg/textsearch"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// UploadServiceError özel servis hataları
type UploadServiceError string

func (e UploadServiceError) Error() string { return string(e) }

func (e UploadServiceError) Kind() ErrorKind {
	switch e {
	case ErrUploadLoginRequired:
		return KindUnauthenticated
	case ErrUploadSignFailed, ErrStorageNotConfigured:
		return KindUpstream
	}
	return KindInternal
}

const (
	ErrUploadLoginRequired  UploadServiceError = "dosya yüklemek için giriş yapmalısınız"
	ErrUploadSignFailed     UploadServiceError = "yükleme adresi alınamadı"
	ErrStorageNotConfigured UploadServiceError = "dosya depolama servisi yapılandırılmamış"
)

// UploadSlot istemcinin dosyayı doğrudan yükleyeceği adres ve yükleme sonrası erişim adresi.
type UploadSlot struct {
	UploadURL string `json:"uploadUrl"`
	PublicURL string `json:"publicUrl"`
	Path      string `json:"path"`
}

// BlobSigner harici dosya deposu için imzalı yükleme adresi üretir.
type BlobSigner interface {
	SignUpload(ctx context.Context, objectPath, contentType string) (string, error)
	PublicURL(objectPath string) string
}

// IUploadService iki aşamalı yükleme akışının ilk adımı. Dosya içeriği sunucudan geçmez.
type IUploadService interface {
	RequestUploadSlot(ctx context.Context, actor *models.Identity, fileName, fileType string) (*UploadSlot, error)
}

type UploadService struct {
	signer BlobSigner
	policy AccessPolicy
}

func NewUploadService() IUploadService {
	cfg := configs.GetConfig()
	return NewUploadServiceWithSigner(NewStorageSigner(cfg.Storage), NewAccessPolicy(cfg.AllowAnonymousSubmission))
}

func NewUploadServiceWithSigner(signer BlobSigner, policy AccessPolicy) IUploadService {
	return &UploadService{signer: signer, policy: policy}
}

// RequestUploadSlot dosya için benzersiz bir nesne yolu ayırır ve imzalı yükleme adresi alır.
func (s *UploadService) RequestUploadSlot(ctx context.Context, actor *models.Identity, fileName, fileType string) (*UploadSlot, error) {
	if actor == nil && !s.policy.AllowAnonymousSubmission {
		return nil, ErrUploadLoginRequired
	}
	var vc violationCollector
	fileName = strings.TrimSpace(fileName)
	fileType = strings.TrimSpace(fileType)
	if fileName == "" {
		vc.add("fileName", ReasonRequired, "dosya adı zorunludur")
	}
	if fileType == "" {
		vc.add("fileType", ReasonRequired, "dosya türü zorunludur")
	}
	if err := vc.err("yükleme isteği geçersiz"); err != nil {
		return nil, err
	}

	objectPath := uuid.NewString() + "/" + SanitizeFileName(fileName)
	uploadURL, err := s.signer.SignUpload(ctx, objectPath, fileType)
	if err != nil {
		return nil, err
	}
	return &UploadSlot{
		UploadURL: uploadURL,
		PublicURL: s.signer.PublicURL(objectPath),
		Path:      objectPath,
	}, nil
}

// SanitizeFileName dosya adını nesne yolunda güvenli hale getirir; uzantı korunur.
func SanitizeFileName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	ext := strings.ToLower(path.Ext(name))
	base := textsearch.Fold(strings.TrimSuffix(name, path.Ext(name)))
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '-'
	}, base)
	clean = strings.Trim(clean, "-")
	if clean == "" {
		clean = "dosya"
	}
	return clean + strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, ext)
}

// StorageSigner Supabase Storage uyumlu imzalı yükleme uç noktasını kullanır.
type StorageSigner struct {
	cfg configs.StorageConfig
}

func NewStorageSigner(cfg configs.StorageConfig) *StorageSigner {
	return &StorageSigner{cfg: cfg}
}

func (s *StorageSigner) configured() bool {
	return s.cfg.URL != "" && s.cfg.ServiceKey != "" && s.cfg.Bucket != ""
}

func escapeObjectPath(objectPath string) string {
	segments := strings.Split(objectPath, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/")
}

// PublicURL nesnenin herkese açık erişim adresi.
func (s *StorageSigner) PublicURL(objectPath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.cfg.URL, url.PathEscape(s.cfg.Bucket), escapeObjectPath(objectPath))
}

type signResponse struct {
	URL string `json:"url"`
}

// SignUpload depodan nesne için imzalı yükleme adresi ister.
func (s *StorageSigner) SignUpload(ctx context.Context, objectPath, contentType string) (string, error) {
	if !s.configured() {
		return "", ErrStorageNotConfigured
	}
	// Timeout <= 0 ve context süresizse istek süre sınırı olmadan yapılır.
	timeout := s.cfg.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return "", fmt.Errorf("%w: %v", ErrUploadSignFailed, context.DeadlineExceeded)
		}
		if timeout <= 0 || remaining < timeout {
			timeout = remaining
		}
	}

	endpoint := fmt.Sprintf("%s/storage/v1/object/upload/sign/%s/%s", s.cfg.URL, url.PathEscape(s.cfg.Bucket), escapeObjectPath(objectPath))
	agent := fiber.Post(endpoint)
	agent.Set(fiber.HeaderAuthorization, "Bearer "+s.cfg.ServiceKey)
	agent.Set("apikey", s.cfg.ServiceKey)
	agent.Set("x-upsert", "false")
	if timeout > 0 {
		agent.Timeout(timeout)
	}
	agent.JSON(fiber.Map{"contentType": contentType})

	code, body, errs := agent.Bytes()
	if err := multierr.Combine(errs...); err != nil {
		configslog.Log.Error("Depo imza isteği başarısız", zap.String("path", objectPath), zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrUploadSignFailed, err)
	}
	if code < 200 || code >= 300 {
		configslog.Log.Error("Depo imza isteği hata döndü", zap.Int("status", code), zap.ByteString("body", body))
		return "", fmt.Errorf("%w: depo %d döndü", ErrUploadSignFailed, code)
	}
	var resp signResponse
	if err := json.Unmarshal(body, &resp); err != nil || resp.URL == "" {
		return "", fmt.Errorf("%w: beklenmeyen yanıt", ErrUploadSignFailed)
	}
	if strings.HasPrefix(resp.URL, "http://") || strings.HasPrefix(resp.URL, "https://") {
		return resp.URL, nil
	}
	return s.cfg.URL + "/storage/v1" + resp.URL, nil
}

var _ BlobSigner = (*StorageSigner)(nil)
