package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"formhub.link/configs/configslog"
	"formhub.link/models"

	"go.uber.org/zap"
)

// DraftSessionKey taslağın oturumda saklandığı anahtar.
const DraftSessionKey = "form_draft"

// MaxDraftBytes oturumda saklanabilecek en büyük taslak.
const MaxDraftBytes = 256 * 1024

// DraftStore taslağın saklandığı oturum kapsamlı depo. fiber session.Session bu arayüzü karşılar.
type DraftStore interface {
	Get(key string) interface{}
	Set(key string, val interface{})
	Delete(key string)
	Save() error
}

// FormDraft form oluşturucudaki yarım kalmış çalışma. Doğrulanmaz; kaydedilirken şema kuralları uygulanır.
type FormDraft struct {
	Title    string                   `json:"title"`
	Category string                   `json:"category"`
	Fields   []models.FieldDefinition `json:"fields"`
	SavedAt  time.Time                `json:"saved_at"`
}

// IDraftService oturum başına taslak önbelleği.
type IDraftService interface {
	Load(store DraftStore) (*FormDraft, error)
	Save(store DraftStore, draft FormDraft) (*FormDraft, error)
	Clear(store DraftStore) error
}

type DraftService struct {
	now func() time.Time
}

func NewDraftService() IDraftService {
	return &DraftService{now: func() time.Time { return time.Now().UTC() }}
}

// Load oturumdaki taslağı döndürür; taslak yoksa nil döner.
func (s *DraftService) Load(store DraftStore) (*FormDraft, error) {
	raw, ok := store.Get(DraftSessionKey).(string)
	if !ok || raw == "" {
		return nil, nil
	}
	var draft FormDraft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		// Bozuk taslak kullanıcıyı engellememeli; temizlenip yok sayılır.
		configslog.Log.Warn("Oturumdaki taslak okunamadı, siliniyor", zap.Error(err))
		store.Delete(DraftSessionKey)
		return nil, store.Save()
	}
	return &draft, nil
}

// Save taslağı oturuma yazar.
func (s *DraftService) Save(store DraftStore, draft FormDraft) (*FormDraft, error) {
	draft.Title = strings.TrimSpace(draft.Title)
	draft.Category = strings.TrimSpace(draft.Category)
	draft.SavedAt = s.now()
	encoded, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("taslak kodlanamadı: %w", err)
	}
	if len(encoded) > MaxDraftBytes {
		return nil, newValidationError("taslak çok büyük",
			FieldViolation{Label: "fields", Reason: ReasonInvalidFormat, Message: "taslak 256KB sınırını aşıyor"})
	}
	store.Set(DraftSessionKey, string(encoded))
	if err := store.Save(); err != nil {
		return nil, err
	}
	return &draft, nil
}

// Clear oturumdaki taslağı siler.
func (s *DraftService) Clear(store DraftStore) error {
	store.Delete(DraftSessionKey)
	return store.Save()
}

var _ IDraftService = (*DraftService)(nil)
