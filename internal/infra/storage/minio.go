package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"vidshare/internal/config"
	"vidshare/pkg/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

const presignExpire = 12 * time.Hour

// MinIO 对象存储后端：视频和封面各占一个 Bucket
type MinIO struct {
	client          *minio.Client
	videoBucket     string
	thumbnailBucket string
}

// NewMinIO 创建 MinIO 存储并确保 Bucket 存在
func NewMinIO(cfg *config.MinIOConfig) (*MinIO, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, bucket := range []string{cfg.VideoBucket, cfg.ThumbnailBucket} {
		exists, err := client.BucketExists(ctx, bucket)
		if err != nil {
			return nil, fmt.Errorf("failed to check bucket %s: %w", bucket, err)
		}
		if !exists {
			if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
				return nil, fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
			logger.Info("MinIO bucket created", zap.String("bucket", bucket))
		}
	}

	logger.Info("MinIO connected", zap.String("endpoint", cfg.Endpoint))

	return &MinIO{
		client:          client,
		videoBucket:     cfg.VideoBucket,
		thumbnailBucket: cfg.ThumbnailBucket,
	}, nil
}

func (m *MinIO) bucket(kind Kind) string {
	if kind == KindThumbnail {
		return m.thumbnailBucket
	}
	return m.videoBucket
}

// Save 上传文件到对应 Bucket
func (m *MinIO) Save(ctx context.Context, kind Kind, name string, r io.Reader, size int64, contentType string) error {
	_, err := m.client.PutObject(ctx, m.bucket(kind), name, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload to minio: %w", err)
	}
	return nil
}

// Remove 删除对象
func (m *MinIO) Remove(ctx context.Context, kind Kind, name string) error {
	err := m.client.RemoveObject(ctx, m.bucket(kind), name, minio.RemoveObjectOptions{})
	if err != nil {
		var resp minio.ErrorResponse
		if errors.As(err, &resp) && resp.Code == "NoSuchKey" {
			return ErrNotFound
		}
		return fmt.Errorf("failed to remove object %s: %w", name, err)
	}
	return nil
}

// Locate 生成预签名下载地址，由资源接口 302 跳转
func (m *MinIO) Locate(ctx context.Context, kind Kind, name string) (*Location, error) {
	reqParams := make(url.Values)
	presignedURL, err := m.client.PresignedGetObject(ctx, m.bucket(kind), name, presignExpire, reqParams)
	if err != nil {
		return nil, fmt.Errorf("failed to generate presigned url: %w", err)
	}
	return &Location{RedirectURL: presignedURL.String()}, nil
}
