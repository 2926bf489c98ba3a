package supabase

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"
	storage "github.com/supabase-community/storage-go"
)

// StorageClient stores exported mod archives in a Supabase Storage bucket
// keyed by user and project.
type StorageClient struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

func NewStorageClient(supabaseURL, serviceRoleKey, bucket string) (*StorageClient, error) {
	baseURL := supabaseURL
	if len(baseURL) > 0 && baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL[:len(baseURL)-1]
	}
	client := storage.NewClient(baseURL+"/storage/v1", serviceRoleKey, nil)

	return &StorageClient{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}, nil
}

// UploadArchive uploads an exported archive and returns its storage path and
// public URL. Re-exporting a project overwrites the previous archive.
func (s *StorageClient) UploadArchive(userID, projectID uuid.UUID, filename string, data []byte) (string, string, error) {
	storagePath := fmt.Sprintf("users/%s/projects/%s/%s", userID.String(), projectID.String(), filename)

	contentType := "application/java-archive"
	upsert := true
	_, err := s.client.UploadFile(s.bucket, storagePath, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload archive: %w", err)
	}

	return storagePath, s.PublicURL(storagePath), nil
}

func (s *StorageClient) PublicURL(storagePath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, storagePath)
}

// DeleteProjectArchives removes every stored archive for a project.
func (s *StorageClient) DeleteProjectArchives(userID, projectID uuid.UUID) error {
	prefix := fmt.Sprintf("users/%s/projects/%s/", userID.String(), projectID.String())

	files, err := s.client.ListFiles(s.bucket, prefix, storage.FileSearchOptions{
		Limit: 1000,
	})
	if err != nil {
		return fmt.Errorf("failed to list archives: %w", err)
	}

	if len(files) > 0 {
		paths := make([]string, len(files))
		for i, file := range files {
			paths[i] = file.Name
		}
		if _, err := s.client.RemoveFile(s.bucket, paths); err != nil {
			return fmt.Errorf("failed to delete archives: %w", err)
		}
	}

	return nil
}
