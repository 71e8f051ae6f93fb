package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
)

const gcsPublicHost = "https://storage.googleapis.com"

// gcsObjectStore stores objects in a Google Cloud Storage bucket.
type gcsObjectStore struct {
	client *storage.Client
	bucket string
	logger *logger.Logger
}

// NewGCSObjectStore constructs an [ObjectStore] writing to cfg.Bucket.
// Credentials come from cfg.CredentialsFile when set and from the
// application default credentials otherwise.
func NewGCSObjectStore(ctx context.Context, cfg config.GCS, logger *logger.Logger) (ObjectStore, error) {
	opts := make([]option.ClientOption, 0, 1)
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		logger.Err(err).Str("func", "NewGCSObjectStore").Msg("failed to create GCS storage client")
		return nil, fmt.Errorf("failed to create GCS storage client: %w", err)
	}

	logger.Debug().Str("bucket", cfg.Bucket).Msg("creating gcs object store")
	return &gcsObjectStore{
		client: client,
		bucket: cfg.Bucket,
		logger: logger,
	}, nil
}

func (g *gcsObjectStore) Put(ctx context.Context, objectPath string, data []byte) (string, error) {
	clean, err := cleanObjectPath(objectPath)
	if err != nil {
		return "", err
	}

	writer := g.client.Bucket(g.bucket).Object(clean).NewWriter(ctx)
	writer.ContentType = http.DetectContentType(data)

	if _, err = writer.Write(data); err != nil {
		_ = writer.Close()
		logger.FromContext(ctx).Err(err).Str("func", "*gcsObjectStore.Put").Msg("failed to write GCS object")
		return "", fmt.Errorf("failed to write GCS object %s: %w", clean, err)
	}

	if err = writer.Close(); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*gcsObjectStore.Put").Msg("failed to close GCS writer")
		return "", fmt.Errorf("failed to close GCS writer for %s: %w", clean, err)
	}

	return fmt.Sprintf("%s/%s/%s", gcsPublicHost, g.bucket, clean), nil
}

func (g *gcsObjectStore) Open(ctx context.Context, objectPath string) (io.ReadCloser, error) {
	clean, err := cleanObjectPath(objectPath)
	if err != nil {
		return nil, err
	}

	reader, err := g.client.Bucket(g.bucket).Object(clean).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*gcsObjectStore.Open").Msg("failed to open GCS object")
		return nil, fmt.Errorf("failed to open GCS object %s: %w", clean, err)
	}

	return reader, nil
}
