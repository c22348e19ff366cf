package gcs

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
)

// Uploader persists uploaded documents to a GCS bucket so the model gateway
// can dereference them remotely.
type Uploader struct {
	client *storage.Client
	bucket string
}

func NewUploader(ctx context.Context, bucket string) (*Uploader, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &Uploader{client: client, bucket: bucket}, nil
}

// Upload writes the object and returns its gs:// URI.
func (u *Uploader) Upload(ctx context.Context, key string, r io.Reader) (string, error) {
	w := u.client.Bucket(u.bucket).Object(key).NewWriter(ctx)
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to write object %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize object %s: %w", key, err)
	}
	return fmt.Sprintf("gs://%s/%s", u.bucket, key), nil
}

func (u *Uploader) Close() error {
	return u.client.Close()
}
