package storage

import (
	"bytes"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	storage "github.com/supabase-community/storage-go"
)

// SupabaseStore keeps blobs in a Supabase storage bucket. Selected with
// STORAGE_BACKEND=supabase for deployments without a persistent disk.
type SupabaseStore struct {
	client *storage.Client
	bucket string
}

func NewSupabaseStore(supabaseURL, serviceKey, bucket string) *SupabaseStore {
	baseURL := strings.TrimSuffix(supabaseURL, "/")
	return &SupabaseStore{
		client: storage.NewClient(baseURL+"/storage/v1", serviceKey, nil),
		bucket: bucket,
	}
}

func (s *SupabaseStore) EnsureReady() error {
	if _, err := s.client.GetBucket(s.bucket); err == nil {
		return nil
	}
	if _, err := s.client.CreateBucket(s.bucket, storage.BucketOptions{Public: false}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	return nil
}

func (s *SupabaseStore) Save(name string, data []byte) (string, error) {
	if err := ValidateStorageName(name); err != nil {
		return "", err
	}

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.client.UploadFile(s.bucket, name, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload blob %s: %w", name, err)
	}

	return s.bucket + "/" + name, nil
}

func (s *SupabaseStore) Read(name string) ([]byte, error) {
	if err := ValidateStorageName(name); err != nil {
		return nil, err
	}

	data, err := s.client.DownloadFile(s.bucket, name)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to download blob %s: %w", name, err)
	}
	return data, nil
}

// isNotFound recognizes the storage API's object-missing responses, which
// storage-go surfaces only as message text.
func isNotFound(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not_found") ||
		strings.Contains(msg, "not found") ||
		strings.Contains(msg, "404")
}
