package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"普通文件名", "movie.mp4", "movie.mp4"},
		{"空格替换", "my movie.mp4", "my_movie.mp4"},
		{"路径穿越", "../../etc/passwd", "passwd"},
		{"Windows路径", `C:\Users\evil\video.mp4`, "video.mp4"},
		{"特殊字符替换", "a<b>c|d?.mp4", "a_b_c_d_.mp4"},
		{"空输入", "", "file"},
		{"只剩点号", "....", "file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.input))
		})
	}
}

func TestUniqueFilename(t *testing.T) {
	a := UniqueFilename("movie.mp4")
	b := UniqueFilename("movie.mp4")

	// 随机前缀保证同名文件不会互相覆盖
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasSuffix(a, "_movie.mp4"))
	assert.NotContains(t, a, "/")
}
