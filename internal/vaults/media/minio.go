package media

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Bhagesh4604/TimeVault1/config"
	"github.com/Bhagesh4604/TimeVault1/internal/vaults/domain"
)

// MinioMaterializer uploads media to a MinIO bucket and returns the object's
// public URL as the durable locator.
type MinioMaterializer struct {
	client   *minio.Client
	endpoint string
	bucket   string
	useSSL   bool
}

// NewMinio connects to the configured MinIO endpoint and creates the media
// bucket if it does not exist yet.
func NewMinio(ctx context.Context, cfg config.MediaConfig) (*MinioMaterializer, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio connect: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio make bucket: %w", err)
		}
		log.Printf("[info] created media bucket %s", cfg.Bucket)
	}

	return &MinioMaterializer{
		client:   client,
		endpoint: cfg.Endpoint,
		bucket:   cfg.Bucket,
		useSSL:   cfg.UseSSL,
	}, nil
}

func (m *MinioMaterializer) Materialize(ctx context.Context, up domain.MediaUpload) (string, error) {
	objectName := up.ID + filepath.Ext(up.FileName)

	_, err := m.client.PutObject(ctx, m.bucket, objectName, up.Body, up.Size, minio.PutObjectOptions{
		ContentType: up.ContentType,
	})
	if err != nil {
		return "", err
	}

	return m.objectURL(objectName), nil
}

func (m *MinioMaterializer) objectURL(objectName string) string {
	scheme := "http"
	if m.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, m.endpoint, m.bucket, objectName)
}
