package storage

import (
	"context"
	"errors"
	"io"
)

// Kind 资源类型，决定文件落在哪个受管目录/桶
type Kind string

const (
	KindVideo     Kind = "video"
	KindThumbnail Kind = "thumbnail"
)

// ErrNotFound 文件不存在
var ErrNotFound = errors.New("file not found in storage")

// Location 资源访问位置：本地路径或跳转地址，二者只会有一个非空
type Location struct {
	LocalPath   string
	RedirectURL string
}

// Storage 上传资源存储后端抽象。
// 本地磁盘是默认实现，MinIO 对象存储可通过配置启用。
type Storage interface {
	// Save 保存文件内容，name 必须是系统生成的存储文件名
	Save(ctx context.Context, kind Kind, name string, r io.Reader, size int64, contentType string) error
	// Remove 删除文件，文件不存在返回 ErrNotFound
	Remove(ctx context.Context, kind Kind, name string) error
	// Locate 返回资源的访问位置
	Locate(ctx context.Context, kind Kind, name string) (*Location, error)
}
