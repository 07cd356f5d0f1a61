package objectstore

import (
	"context"
	"fmt"
	"mime"
	"net"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/renato0307/covrun/internal/config"
	"github.com/renato0307/covrun/internal/logging"
	"github.com/renato0307/covrun/internal/ports"
)

// MinIOStore publishes artifacts to an S3 compatible bucket
type MinIOStore struct {
	bucket     string
	client     *minio.Client
	ensureErr  error
	ensureOnce sync.Once
	region     string
}

// Compile-time interface verification
var _ ports.ArtifactStore = (*MinIOStore)(nil)

// NewMinIOStore creates a store for cfg. The bucket is created on first Put.
func NewMinIOStore(cfg config.ObjectStoreConfig) (*MinIOStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid object store config: %w", err)
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Region:    cfg.Region,
		Secure:    cfg.UseSSL,
		Transport: newTransport(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object store client: %w", err)
	}

	return &MinIOStore{
		bucket: cfg.Bucket,
		client: client,
		region: cfg.Region,
	}, nil
}

// Put uploads the file at path as key and returns its s3:// location
func (s *MinIOStore) Put(ctx context.Context, key, path string) (string, error) {
	s.ensureOnce.Do(func() {
		s.ensureErr = ensureBucket(ctx, s.client, s.bucket, s.region)
	})
	if s.ensureErr != nil {
		return "", fmt.Errorf("ensure artifacts bucket: %w", s.ensureErr)
	}

	info, err := s.client.FPutObject(ctx, s.bucket, key, path, minio.PutObjectOptions{
		ContentType: contentType(path),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	logging.Logger.Info("Uploaded artifact", "bucket", s.bucket, "key", key, "size", info.Size)
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}

func ensureBucket(ctx context.Context, client *minio.Client, bucket string, region string) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region})
}

func contentType(path string) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func newTransport() *http.Transport {
	dialer := &net.Dialer{
		KeepAlive: 30 * time.Second,
		Timeout:   5 * time.Second,
	}
	return &http.Transport{
		DialContext:           dialer.DialContext,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
		IdleConnTimeout:       90 * time.Second,
		MaxIdleConns:          100,
		Proxy:                 http.ProxyFromEnvironment,
		TLSHandshakeTimeout:   5 * time.Second,
	}
}
