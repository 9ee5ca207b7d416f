package uploads

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"souqah-backend/internal/pkg/apperrors"

	"github.com/google/uuid"
)

const maxImageBytes = 5 << 20

var (
	ErrEmptyFile       = fmt.Errorf("%w: file is empty", apperrors.ErrValidation)
	ErrFileTooLarge    = fmt.Errorf("%w: image exceeds 5MB", apperrors.ErrValidation)
	ErrUnsupportedType = fmt.Errorf("%w: only JPEG, PNG and WebP images are accepted", apperrors.ErrValidation)
)

// StorageClient is the opaque blob store boundary: bytes in, stable URL out.
type StorageClient interface {
	Upload(ctx context.Context, objectPath, contentType string, data []byte) (string, error)
}

// HTTPClient is a StorageClient backed by an S3-compatible storage HTTP API.
type HTTPClient struct {
	BaseURL   string
	SecretKey string
	Bucket    string
	Client    *http.Client
}

func (c *HTTPClient) Upload(ctx context.Context, objectPath, contentType string, data []byte) (string, error) {
	if c.Client == nil {
		c.Client = &http.Client{Timeout: 15 * time.Second}
	}
	if c.BaseURL == "" {
		return "", fmt.Errorf("storage: STORAGE_URL is not set")
	}
	if c.SecretKey == "" {
		return "", fmt.Errorf("storage: STORAGE_SECRET_KEY is not set")
	}
	bucket := c.Bucket
	if bucket == "" {
		bucket = "ad-images"
	}
	base := strings.TrimRight(c.BaseURL, "/")
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", base, bucket, objectPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("storage request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("storage error: status %d body: %s", resp.StatusCode, string(body))
	}
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", base, bucket, objectPath), nil
}

// Service stores ad images and returns their public URLs. File contents are
// sniffed, never trusted from the filename.
type Service struct {
	Client StorageClient
}

// UploadAdImage validates and stores one image, returning its URL.
func (s *Service) UploadAdImage(ctx context.Context, filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyFile
	}
	if len(data) > maxImageBytes {
		return "", ErrFileTooLarge
	}
	contentType, ext, ok := sniffImage(data)
	if !ok {
		return "", ErrUnsupportedType
	}
	// Object name comes from a fresh UUID; the client filename is untrusted.
	objectPath := fmt.Sprintf("ads/%s%s", uuid.New().String(), ext)
	url, err := s.Client.Upload(ctx, objectPath, contentType, data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	return url, nil
}

// sniffImage identifies JPEG/PNG/WebP by magic bytes.
func sniffImage(data []byte) (contentType, ext string, ok bool) {
	switch {
	case len(data) > 2 && data[0] == 0xFF && data[1] == 0xD8:
		return "image/jpeg", ".jpg", true
	case len(data) > 8 && bytes.Equal(data[:8], []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}):
		return "image/png", ".png", true
	case len(data) > 12 && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")):
		return "image/webp", ".webp", true
	}
	return "", "", false
}
