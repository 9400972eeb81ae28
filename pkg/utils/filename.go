package utils

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// SanitizeFilename 清洗客户端上传的文件名：去掉路径部分，
// 只保留字母、数字、点、下划线和中划线。
func SanitizeFilename(name string) string {
	// Windows 客户端可能带反斜杠路径
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	cleaned := strings.Trim(b.String(), "._")
	if cleaned == "" {
		return "file"
	}
	return cleaned
}

// UniqueFilename 生成防碰撞存储文件名：随机前缀 + 清洗后的原名。
// 原始文件名单独保存在记录里用于展示，永远不参与存储路径。
func UniqueFilename(originalName string) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	return token + "_" + SanitizeFilename(originalName)
}
