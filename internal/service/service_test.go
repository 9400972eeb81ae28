package service

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"os"
	"testing"

	"vidshare/internal/config"
	"vidshare/internal/infra/storage"
	"vidshare/internal/model"
	"vidshare/pkg/logger"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	if err := logger.Init("error", "console", "stdout", ""); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// newTestDB 每个测试一个独立的内存数据库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	// 内存库只允许单连接，连接池开新连接会拿到空库
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Video{},
		&model.Like{},
	))

	return db
}

// newTestStorage 指向临时目录的本地存储，返回两个受管目录路径便于断言
func newTestStorage(t *testing.T) (*storage.Local, string, string) {
	t.Helper()

	dir := t.TempDir()
	videoDir := dir + "/videos"
	thumbDir := dir + "/thumbnails"
	store, err := storage.NewLocal(&config.StorageConfig{
		VideoDir:     videoDir,
		ThumbnailDir: thumbDir,
	})
	require.NoError(t, err)
	return store, videoDir, thumbDir
}

func seedUser(t *testing.T, db *gorm.DB, username string, role model.Role) *model.User {
	t.Helper()

	user := &model.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed-password",
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedCategory(t *testing.T, db *gorm.DB, name string) *model.Category {
	t.Helper()

	category := &model.Category{Name: name}
	require.NoError(t, db.Create(category).Error)
	return category
}

func seedVideo(t *testing.T, db *gorm.DB, title string, categoryID, userID int64) *model.Video {
	t.Helper()

	video := &model.Video{
		Title:      title,
		Filename:   fmt.Sprintf("%s.mp4", title),
		CategoryID: categoryID,
		UserID:     userID,
	}
	require.NoError(t, db.Create(video).Error)
	return video
}

// makeFileHeader 构造一个内存里的上传文件
func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	reader := multipart.NewReader(&buf, w.Boundary())
	form, err := reader.ReadForm(int64(len(content)) + 1024)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	headers := form.File["file"]
	require.Len(t, headers, 1)
	return headers[0]
}
