package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"vidshare/internal/config"
	"vidshare/pkg/logger"

	"go.uber.org/zap"
)

// Local 本地磁盘存储：视频和封面各占一个受管目录
type Local struct {
	videoDir     string
	thumbnailDir string
}

// NewLocal 创建本地存储，目录不存在时自动创建
func NewLocal(cfg *config.StorageConfig) (*Local, error) {
	for _, dir := range []string{cfg.VideoDir, cfg.ThumbnailDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create storage dir %s: %w", dir, err)
		}
	}

	logger.Info("Local storage ready",
		zap.String("video_dir", cfg.VideoDir),
		zap.String("thumbnail_dir", cfg.ThumbnailDir),
	)

	return &Local{videoDir: cfg.VideoDir, thumbnailDir: cfg.ThumbnailDir}, nil
}

func (l *Local) dir(kind Kind) string {
	if kind == KindThumbnail {
		return l.thumbnailDir
	}
	return l.videoDir
}

// Save 将文件写入受管目录
func (l *Local) Save(ctx context.Context, kind Kind, name string, r io.Reader, size int64, contentType string) error {
	path := filepath.Join(l.dir(kind), name)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}

// Remove 删除受管目录中的文件
func (l *Local) Remove(ctx context.Context, kind Kind, name string) error {
	path := filepath.Join(l.dir(kind), name)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to remove file %s: %w", path, err)
	}
	return nil
}

// Locate 返回磁盘路径，由资源接口直接回源
func (l *Local) Locate(ctx context.Context, kind Kind, name string) (*Location, error) {
	path := filepath.Join(l.dir(kind), name)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &Location{LocalPath: path}, nil
}
