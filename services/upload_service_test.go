package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"formhub.link/configs"
	"formhub.link/models"
)

type stubSigner struct {
	path string
	err  error
}

func (s *stubSigner) SignUpload(ctx context.Context, objectPath, contentType string) (string, error) {
	s.path = objectPath
	if s.err != nil {
		return "", s.err
	}
	return "https://store.example.com/upload/" + objectPath + "?token=t", nil
}

func (s *stubSigner) PublicURL(objectPath string) string {
	return "https://store.example.com/public/" + objectPath
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Currículo Final.PDF", "curriculo-final.pdf"},
		{"../../etc/passwd", "passwd"},
		{`C:\Users\ana\foto 1.png`, "foto-1.png"},
		{"???.jpg", "dosya.jpg"},
		{"assinatura", "assinatura"},
	}
	for _, tt := range tests {
		if got := SanitizeFileName(tt.in); got != tt.want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUploadService_RequestUploadSlot(t *testing.T) {
	signer := &stubSigner{}
	svc := NewUploadServiceWithSigner(signer, NewAccessPolicy(true))

	slot, err := svc.RequestUploadSlot(context.Background(), nil, "CV Ana.pdf", "application/pdf")
	if err != nil {
		t.Fatalf("RequestUploadSlot: %v", err)
	}
	if !strings.HasSuffix(slot.Path, "/cv-ana.pdf") || slot.Path != signer.path {
		t.Errorf("Path = %q (signed %q)", slot.Path, signer.path)
	}
	if slot.PublicURL != "https://store.example.com/public/"+slot.Path {
		t.Errorf("PublicURL = %q", slot.PublicURL)
	}
	if !strings.Contains(slot.UploadURL, slot.Path) {
		t.Errorf("UploadURL = %q", slot.UploadURL)
	}

	other, _ := svc.RequestUploadSlot(context.Background(), nil, "CV Ana.pdf", "application/pdf")
	if other.Path == slot.Path {
		t.Error("same file name produced the same object path")
	}
}

func TestUploadService_RequestUploadSlotRejects(t *testing.T) {
	closed := NewUploadServiceWithSigner(&stubSigner{}, NewAccessPolicy(false))
	if _, err := closed.RequestUploadSlot(context.Background(), nil, "a.pdf", "application/pdf"); !errors.Is(err, ErrUploadLoginRequired) {
		t.Errorf("anonymous err = %v", err)
	}
	if _, err := closed.RequestUploadSlot(context.Background(), &models.Identity{ID: 1}, "a.pdf", "application/pdf"); err != nil {
		t.Errorf("authenticated err = %v", err)
	}

	svc := NewUploadServiceWithSigner(&stubSigner{}, NewAccessPolicy(true))
	_, err := svc.RequestUploadSlot(context.Background(), nil, " ", "")
	var ve *ValidationError
	if !errors.As(err, &ve) || len(ve.Violations) != 2 {
		t.Errorf("err = %v, want two violations", err)
	}

	failing := NewUploadServiceWithSigner(&stubSigner{err: ErrUploadSignFailed}, NewAccessPolicy(true))
	if _, err := failing.RequestUploadSlot(context.Background(), nil, "a.pdf", "application/pdf"); KindOf(err) != KindUpstream {
		t.Errorf("signer failure kind = %s", KindOf(err))
	}
}

func TestStorageSigner_SignUpload(t *testing.T) {
	var gotAuth, gotKey, gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotKey = r.Header.Get("apikey")
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"url":"/object/upload/sign/uploads/abc/cv.pdf?token=xyz"}`))
	}))
	defer srv.Close()

	signer := NewStorageSigner(configs.StorageConfig{URL: srv.URL, Bucket: "uploads", ServiceKey: "k", Timeout: 2 * time.Second})
	uploadURL, err := signer.SignUpload(context.Background(), "abc/cv.pdf", "application/pdf")
	if err != nil {
		t.Fatalf("SignUpload: %v", err)
	}
	if uploadURL != srv.URL+"/storage/v1/object/upload/sign/uploads/abc/cv.pdf?token=xyz" {
		t.Errorf("uploadURL = %q", uploadURL)
	}
	if gotAuth != "Bearer k" || gotKey != "k" {
		t.Errorf("headers = %q, %q", gotAuth, gotKey)
	}
	if gotPath != "/storage/v1/object/upload/sign/uploads/abc/cv.pdf" {
		t.Errorf("path = %q", gotPath)
	}
	if gotBody["contentType"] != "application/pdf" {
		t.Errorf("body = %v", gotBody)
	}
	if pub := signer.PublicURL("abc/cv.pdf"); pub != srv.URL+"/storage/v1/object/public/uploads/abc/cv.pdf" {
		t.Errorf("PublicURL = %q", pub)
	}
}

func TestStorageSigner_Failures(t *testing.T) {
	if _, err := NewStorageSigner(configs.StorageConfig{}).SignUpload(context.Background(), "a", "b"); !errors.Is(err, ErrStorageNotConfigured) {
		t.Errorf("unconfigured err = %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"denied"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	signer := NewStorageSigner(configs.StorageConfig{URL: srv.URL, Bucket: "uploads", ServiceKey: "k", Timeout: 2 * time.Second})
	_, err := signer.SignUpload(context.Background(), "abc/cv.pdf", "application/pdf")
	if !errors.Is(err, ErrUploadSignFailed) || KindOf(err) != KindUpstream {
		t.Errorf("err = %v, want upstream sign failure", err)
	}
}

func TestStorageSigner_SignUploadWithoutTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"url":"https://cdn.example.com/signed?token=t"}`))
	}))
	defer srv.Close()

	signer := NewStorageSigner(configs.StorageConfig{URL: srv.URL, Bucket: "uploads", ServiceKey: "k"})
	uploadURL, err := signer.SignUpload(context.Background(), "abc/cv.pdf", "application/pdf")
	if err != nil {
		t.Fatalf("SignUpload without timeout: %v", err)
	}
	if uploadURL != "https://cdn.example.com/signed?token=t" {
		t.Errorf("uploadURL = %q", uploadURL)
	}

	expired, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	if _, err := signer.SignUpload(expired, "abc/cv.pdf", "application/pdf"); !errors.Is(err, ErrUploadSignFailed) {
		t.Errorf("expired context err = %v, want sign failure", err)
	}
}
