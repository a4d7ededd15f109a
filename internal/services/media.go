package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/luminakids/storyreel-backend/internal/platform/envutil"
	"github.com/luminakids/storyreel-backend/internal/platform/logger"
)

// MediaStore re-hosts generated media in our own bucket so asset and video
// URLs stay valid after the provider's temporary URLs expire.
type MediaStore interface {
	Upload(ctx context.Context, key string, r io.Reader) error
	Delete(ctx context.Context, key string) error
	// IngestFromURL downloads the source and uploads it under key,
	// returning the public URL.
	IngestFromURL(ctx context.Context, key string, srcURL string) (string, error)
	PublicURL(key string) string
}

type mediaStore struct {
	log        *logger.Logger
	client     *storage.Client
	bucketName string
	cdnDomain  string
	httpClient *http.Client
}

func NewMediaStore(log *logger.Logger) (MediaStore, error) {
	serviceLog := log.With("service", "MediaStore")
	bucket := envutil.Str("GCS_BUCKET_NAME", "")
	if bucket == "" {
		return nil, fmt.Errorf("missing GCS_BUCKET_NAME")
	}
	cdnDomain := envutil.Str("CDN_DOMAIN", "")
	saPath := envutil.Str("GOOGLE_APPLICATION_CREDENTIALS_JSON", "")

	ctx := context.Background()
	var client *storage.Client
	var err error
	if saPath != "" {
		client, err = storage.NewClient(ctx, option.WithCredentialsFile(saPath), option.WithScopes(storage.ScopeReadWrite))
	} else {
		client, err = storage.NewClient(ctx, option.WithScopes(storage.ScopeReadWrite))
	}
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &mediaStore{
		log:        serviceLog,
		client:     client,
		bucketName: bucket,
		cdnDomain:  cdnDomain,
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}, nil
}

func (m *mediaStore) Upload(ctx context.Context, key string, r io.Reader) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()
	w := m.client.Bucket(m.bucketName).Object(key).NewWriter(ctx)
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return fmt.Errorf("write object %q: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close object writer %q: %w", key, err)
	}
	return nil
}

func (m *mediaStore) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := m.client.Bucket(m.bucketName).Object(key).Delete(ctx); err != nil {
		return fmt.Errorf("delete object %q: %w", key, err)
	}
	return nil
}

func (m *mediaStore) IngestFromURL(ctx context.Context, key string, srcURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srcURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %q: %w", srcURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetch %q: status %d", srcURL, resp.StatusCode)
	}
	if err := m.Upload(ctx, key, resp.Body); err != nil {
		return "", err
	}
	return m.PublicURL(key), nil
}

func (m *mediaStore) PublicURL(key string) string {
	if m.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", m.cdnDomain, key)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", m.bucketName, key)
}
