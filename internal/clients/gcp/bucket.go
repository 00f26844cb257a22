package gcp

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/iamvtyagi/flashLearn/internal/logger"
)

type bucketConfig struct {
	name      string
	cdnDomain string
}

// BucketService stores extracted audio in GCS and exposes both the public
// HTTP URL (returned to clients) and the gs:// URI (fed to transcription).
type BucketService interface {
	Upload(ctx context.Context, key string, file io.Reader, contentType string) (publicURL string, uri string, err error)
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
	ObjectURI(key string) string
	Close() error
}

type bucketService struct {
	log           *logger.Logger
	storageClient *storage.Client
	audioBucket   bucketConfig
}

func NewBucketService(log *logger.Logger) (BucketService, error) {
	serviceLog := log.With("service", "BucketService")

	audioBucketName := os.Getenv("AUDIO_GCS_BUCKET_NAME")
	if audioBucketName == "" {
		return nil, fmt.Errorf("missing env var AUDIO_GCS_BUCKET_NAME")
	}
	audioCDN := os.Getenv("AUDIO_CDN_DOMAIN")

	ctx := context.Background()
	opts := ClientOptionsFromEnv()
	opts = append(opts, option.WithScopes(storage.ScopeReadWrite))
	stClient, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &bucketService{
		log:           serviceLog,
		storageClient: stClient,
		audioBucket: bucketConfig{
			name:      audioBucketName,
			cdnDomain: audioCDN,
		},
	}, nil
}

func (bs *bucketService) Upload(ctx context.Context, key string, file io.Reader, contentType string) (string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	w := bs.storageClient.Bucket(bs.audioBucket.name).Object(key).NewWriter(ctx)
	if contentType == "" {
		contentType = contentTypeForKey(key)
	}
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := io.Copy(w, file); err != nil {
		_ = w.Close()
		return "", "", fmt.Errorf("failed to write data to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", "", fmt.Errorf("failed to close GCS writer: %w", err)
	}
	return bs.PublicURL(key), bs.ObjectURI(key), nil
}

func (bs *bucketService) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	o := bs.storageClient.Bucket(bs.audioBucket.name).Object(key)
	if err := o.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete GCS object %q in bucket %q: %w", key, bs.audioBucket.name, err)
	}
	return nil
}

func (bs *bucketService) PublicURL(key string) string {
	if bs.audioBucket.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", bs.audioBucket.cdnDomain, key)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bs.audioBucket.name, key)
}

func (bs *bucketService) ObjectURI(key string) string {
	return fmt.Sprintf("gs://%s/%s", bs.audioBucket.name, key)
}

func (bs *bucketService) Close() error {
	if bs.storageClient != nil {
		return bs.storageClient.Close()
	}
	return nil
}

func contentTypeForKey(key string) string {
	s := strings.ToLower(strings.TrimSpace(key))
	switch {
	case strings.HasSuffix(s, ".mp3"):
		return "audio/mpeg"
	case strings.HasSuffix(s, ".wav"):
		return "audio/wav"
	case strings.HasSuffix(s, ".flac"):
		return "audio/flac"
	case strings.HasSuffix(s, ".ogg"), strings.HasSuffix(s, ".opus"):
		return "audio/ogg"
	case strings.HasSuffix(s, ".pdf"):
		return "application/pdf"
	case strings.HasSuffix(s, ".json"):
		return "application/json"
	default:
		return ""
	}
}
