package client

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MockStorageClient implements StorageClient for testing without credentials
type MockStorageClient struct {
	Bucket string

	// Optional function overrides for custom test behavior
	UploadObjectFunc func(ctx context.Context, key string, body io.Reader, contentType string) error
	DeleteObjectFunc func(ctx context.Context, key string) error
	ObjectExistsFunc func(ctx context.Context, key string) (bool, error)
	SignedURLFunc    func(ctx context.Context, key string, expiry time.Duration) (string, error)
	EnsureBucketFunc func(ctx context.Context) error
}

// NewMockStorageClient creates a mock storage client for testing
func NewMockStorageClient() *MockStorageClient {
	return &MockStorageClient{Bucket: "test-bucket"}
}

func (m *MockStorageClient) PhotoKey(ownerID, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" {
		ext = ".png"
	}
	return fmt.Sprintf("%s/%s%s", ownerID, uuid.New(), ext)
}

func (m *MockStorageClient) UploadObject(ctx context.Context, key string, body io.Reader, contentType string) error {
	if m.UploadObjectFunc != nil {
		return m.UploadObjectFunc(ctx, key, body, contentType)
	}
	return nil
}

func (m *MockStorageClient) DeleteObject(ctx context.Context, key string) error {
	if m.DeleteObjectFunc != nil {
		return m.DeleteObjectFunc(ctx, key)
	}
	return nil
}

func (m *MockStorageClient) ObjectExists(ctx context.Context, key string) (bool, error) {
	if m.ObjectExistsFunc != nil {
		return m.ObjectExistsFunc(ctx, key)
	}
	return true, nil
}

func (m *MockStorageClient) SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if m.SignedURLFunc != nil {
		return m.SignedURLFunc(ctx, key, expiry)
	}
	return fmt.Sprintf("https://%s.example.com/%s?signed=1", m.Bucket, key), nil
}

func (m *MockStorageClient) EnsureBucket(ctx context.Context) error {
	if m.EnsureBucketFunc != nil {
		return m.EnsureBucketFunc(ctx)
	}
	return nil
}
