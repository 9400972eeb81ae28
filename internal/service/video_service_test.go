package service

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"vidshare/internal/api/dto"
	"vidshare/internal/model"
	"vidshare/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type videoFixture struct {
	svc      *VideoService
	db       *gorm.DB
	videoDir string
	thumbDir string
	user     *model.User
	category *model.Category
}

func newVideoFixture(t *testing.T) *videoFixture {
	t.Helper()

	db := newTestDB(t)
	store, videoDir, thumbDir := newTestStorage(t)

	svc := NewVideoService(
		repository.NewVideoRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewLikeRepository(db),
		store,
		nil, // 搜索走数据库
	)

	return &videoFixture{
		svc:      svc,
		db:       db,
		videoDir: videoDir,
		thumbDir: thumbDir,
		user:     seedUser(t, db, "uploader", model.RoleModerator),
		category: seedCategory(t, db, "科技"),
	}
}

// seedVideoAt 控制创建时间，保证倒序断言稳定
func (f *videoFixture) seedVideoAt(t *testing.T, title string, createdAt time.Time) *model.Video {
	t.Helper()

	video := &model.Video{
		Title:      title,
		Filename:   title + ".mp4",
		CategoryID: f.category.ID,
		UserID:     f.user.ID,
		CreatedAt:  createdAt,
	}
	require.NoError(t, f.db.Create(video).Error)
	return video
}

func TestVideoListPagination(t *testing.T) {
	f := newVideoFixture(t)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 7; i++ {
		f.seedVideoAt(t, fmt.Sprintf("video-%d", i), base.Add(time.Duration(i)*time.Minute))
	}

	// 每页 6 条，最新的在前
	data, err := f.svc.List(1, nil, "")
	require.NoError(t, err)
	assert.Len(t, data.Videos, 6)
	assert.Equal(t, int64(7), data.Total)
	assert.Equal(t, "video-6", data.Videos[0].Title)
	assert.True(t, data.HasNext)
	assert.False(t, data.HasPrev)

	data, err = f.svc.List(2, nil, "")
	require.NoError(t, err)
	assert.Len(t, data.Videos, 1)
	assert.Equal(t, "video-0", data.Videos[0].Title)
	assert.False(t, data.HasNext)
	assert.True(t, data.HasPrev)

	// 越界页码返回空页而不是报错
	data, err = f.svc.List(5, nil, "")
	require.NoError(t, err)
	assert.Empty(t, data.Videos)
	assert.False(t, data.HasNext)
}

func TestVideoListCategoryFilter(t *testing.T) {
	f := newVideoFixture(t)
	other := seedCategory(t, f.db, "动画")

	f.seedVideoAt(t, "tech-video", time.Now())
	seedVideo(t, f.db, "anime-video", other.ID, f.user.ID)

	data, err := f.svc.List(1, &other.ID, "")
	require.NoError(t, err)
	require.Len(t, data.Videos, 1)
	assert.Equal(t, "anime-video", data.Videos[0].Title)

	// 不存在的分类直接报错
	missing := int64(9999)
	_, err = f.svc.List(1, &missing, "")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestVideoListSearchCaseInsensitive(t *testing.T) {
	f := newVideoFixture(t)

	f.seedVideoAt(t, "Golang Tutorial", time.Now().Add(-2*time.Minute))
	f.seedVideoAt(t, "cooking basics", time.Now().Add(-time.Minute))

	data, err := f.svc.List(1, nil, "GOLANG")
	require.NoError(t, err)
	require.Len(t, data.Videos, 1)
	assert.Equal(t, "Golang Tutorial", data.Videos[0].Title)

	data, err = f.svc.List(1, nil, "不存在的关键词")
	require.NoError(t, err)
	assert.Empty(t, data.Videos)
}

func TestVideoAdminListPageSize(t *testing.T) {
	f := newVideoFixture(t)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 10; i++ {
		f.seedVideoAt(t, fmt.Sprintf("video-%d", i), base.Add(time.Duration(i)*time.Minute))
	}

	// 后台每页 9 条
	data, err := f.svc.AdminList(1)
	require.NoError(t, err)
	assert.Len(t, data.Videos, 9)
	assert.True(t, data.HasNext)

	data, err = f.svc.AdminList(2)
	require.NoError(t, err)
	assert.Len(t, data.Videos, 1)
}

func TestVideoDetail(t *testing.T) {
	f := newVideoFixture(t)

	base := time.Now().Add(-time.Hour)
	video := f.seedVideoAt(t, "main", base)
	for i := 0; i < 10; i++ {
		f.seedVideoAt(t, fmt.Sprintf("related-%d", i), base.Add(time.Duration(i+1)*time.Minute))
	}

	viewer := seedUser(t, f.db, "viewer", model.RoleUser)
	identity := model.UserIdentity(viewer.ID)

	// 访问一次播放量 +1
	data, err := f.svc.Detail(video.ID, identity)
	require.NoError(t, err)
	assert.Equal(t, int64(1), data.Video.Views)
	assert.False(t, data.Liked)

	// 相关视频同分类最多 8 条，不含自己
	assert.Len(t, data.Related, 8)
	for _, r := range data.Related {
		assert.NotEqual(t, video.ID, r.ID)
	}

	// 点赞后再访问
	likeSvc := NewLikeService(repository.NewLikeRepository(f.db), repository.NewVideoRepository(f.db))
	_, err = likeSvc.Toggle(identity, video.ID)
	require.NoError(t, err)

	data, err = f.svc.Detail(video.ID, identity)
	require.NoError(t, err)
	assert.Equal(t, int64(2), data.Video.Views)
	assert.True(t, data.Liked)
	assert.Equal(t, int64(1), data.LikeCount)

	_, err = f.svc.Detail(9999, model.Identity{})
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestVideoUpload(t *testing.T) {
	f := newVideoFixture(t)

	req := &dto.VideoUploadRequest{
		Title:       "上传测试",
		Description: "描述",
		CategoryID:  f.category.ID,
	}
	videoFile := makeFileHeader(t, "my movie.mp4", []byte("fake video bytes"))
	thumbFile := makeFileHeader(t, "cover.jpg", []byte("fake image bytes"))

	info, err := f.svc.Upload(f.user.ID, req, videoFile, thumbFile)
	require.NoError(t, err)
	assert.Equal(t, "上传测试", info.Title)
	assert.Equal(t, "my movie.mp4", info.OriginalName)
	require.NotNil(t, info.Thumbnail)

	// 存储文件名经过清洗和随机前缀，落在受管目录
	assert.NotEqual(t, "my movie.mp4", info.Filename)
	assert.FileExists(t, filepath.Join(f.videoDir, info.Filename))
	assert.FileExists(t, filepath.Join(f.thumbDir, *info.Thumbnail))

	_, err = f.svc.Upload(f.user.ID, req, nil, nil)
	assert.ErrorIs(t, err, ErrVideoFileMissing)

	badReq := &dto.VideoUploadRequest{Title: "t", CategoryID: 9999}
	_, err = f.svc.Upload(f.user.ID, badReq, videoFile, nil)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestVideoUpdateReplacesFile(t *testing.T) {
	f := newVideoFixture(t)

	req := &dto.VideoUploadRequest{Title: "原始", CategoryID: f.category.ID}
	info, err := f.svc.Upload(f.user.ID, req, makeFileHeader(t, "old.mp4", []byte("old")), nil)
	require.NoError(t, err)
	oldPath := filepath.Join(f.videoDir, info.Filename)
	require.FileExists(t, oldPath)

	newTitle := "更新后"
	updated, err := f.svc.Update(info.ID, &dto.VideoUpdateRequest{Title: &newTitle},
		makeFileHeader(t, "new.mp4", []byte("new")), nil)
	require.NoError(t, err)
	assert.Equal(t, "更新后", updated.Title)
	assert.NotEqual(t, info.Filename, updated.Filename)

	// 新文件落盘，旧文件被清理
	assert.FileExists(t, filepath.Join(f.videoDir, updated.Filename))
	_, statErr := os.Stat(oldPath)
	assert.True(t, os.IsNotExist(statErr))

	_, err = f.svc.Update(9999, &dto.VideoUpdateRequest{}, nil, nil)
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestVideoDeleteRemovesFiles(t *testing.T) {
	f := newVideoFixture(t)

	req := &dto.VideoUploadRequest{Title: "待删除", CategoryID: f.category.ID}
	info, err := f.svc.Upload(f.user.ID, req,
		makeFileHeader(t, "v.mp4", []byte("v")),
		makeFileHeader(t, "t.jpg", []byte("t")))
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(info.ID))

	_, statErr := os.Stat(filepath.Join(f.videoDir, info.Filename))
	assert.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(filepath.Join(f.thumbDir, *info.Thumbnail))
	assert.True(t, os.IsNotExist(statErr))

	_, err = f.svc.Detail(info.ID, model.Identity{})
	assert.ErrorIs(t, err, ErrVideoNotFound)

	assert.ErrorIs(t, f.svc.Delete(info.ID), ErrVideoNotFound)
}

func TestVideoCleanupUserFiles(t *testing.T) {
	f := newVideoFixture(t)

	req := &dto.VideoUploadRequest{Title: "用户视频", CategoryID: f.category.ID}
	info, err := f.svc.Upload(f.user.ID, req, makeFileHeader(t, "v.mp4", []byte("v")), nil)
	require.NoError(t, err)

	require.NoError(t, f.svc.CleanupUserFiles(f.user.ID))

	_, statErr := os.Stat(filepath.Join(f.videoDir, info.Filename))
	assert.True(t, os.IsNotExist(statErr))
}
