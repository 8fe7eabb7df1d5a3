package cachebackend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSBackend caches pulled component binaries in Google Cloud Storage.
type GCSBackend struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewGCSBackend builds a GCSBackend from the given config map (bucket,
// prefix, credentials, credentials_json).
func NewGCSBackend(ctx context.Context, cfg map[string]string) (*GCSBackend, error) {
	bucket := cfg["bucket"]
	if bucket == "" {
		return nil, fmt.Errorf("gcs cache backend requires 'bucket'")
	}

	var opts []option.ClientOption
	if credFile := cfg["credentials"]; credFile != "" {
		opts = append(opts, option.WithCredentialsFile(credFile))
	}
	if credJSON := cfg["credentials_json"]; credJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credJSON)))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	return &GCSBackend{client: client, bucket: bucket, prefix: cfg["prefix"]}, nil
}

func (b *GCSBackend) key(digest string) string {
	return path.Join(b.prefix, digest)
}

func (b *GCSBackend) Get(ctx context.Context, digest string) ([]byte, error) {
	objectPath := b.key(digest)
	reader, err := b.client.Bucket(b.bucket).Object(objectPath).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read gs://%s/%s: %w", b.bucket, objectPath, err)
	}
	defer reader.Close()
	return io.ReadAll(reader)
}

func (b *GCSBackend) Put(ctx context.Context, digest string, data []byte) error {
	objectPath := b.key(digest)
	writer := b.client.Bucket(b.bucket).Object(objectPath).NewWriter(ctx)
	writer.ContentType = "application/wasm"
	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write gs://%s/%s: %w", b.bucket, objectPath, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %w", err)
	}
	return nil
}
