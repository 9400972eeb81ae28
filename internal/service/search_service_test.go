package service

import (
	"testing"
	"time"

	"vidshare/internal/model"
	"vidshare/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchFallbackToDB(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "uploader", model.RoleModerator)
	category := seedCategory(t, db, "科技")
	other := seedCategory(t, db, "动画")

	videos := []model.Video{
		{Title: "Go 并发实战", CategoryID: category.ID, UserID: user.ID, Filename: "a.mp4", CreatedAt: time.Now().Add(-3 * time.Minute)},
		{Title: "Go 入门", CategoryID: other.ID, UserID: user.ID, Filename: "b.mp4", CreatedAt: time.Now().Add(-2 * time.Minute)},
		{Title: "做饭教程", CategoryID: category.ID, UserID: user.ID, Filename: "c.mp4", CreatedAt: time.Now().Add(-time.Minute)},
	}
	for i := range videos {
		require.NoError(t, db.Create(&videos[i]).Error)
	}

	// es 为 nil 时直接走数据库
	svc := NewSearchService(nil, repository.NewVideoRepository(db))

	data, err := svc.Search("Go", nil, 1, PublicPageSize)
	require.NoError(t, err)
	require.Len(t, data.Videos, 2)
	// 数据库搜索按创建时间倒序
	assert.Equal(t, "Go 入门", data.Videos[0].Title)
	assert.Equal(t, "Go 并发实战", data.Videos[1].Title)

	// 搜索加分类筛选
	data, err = svc.Search("Go", &category.ID, 1, PublicPageSize)
	require.NoError(t, err)
	require.Len(t, data.Videos, 1)
	assert.Equal(t, "Go 并发实战", data.Videos[0].Title)

	// 无结果
	data, err = svc.Search("Rust", nil, 1, PublicPageSize)
	require.NoError(t, err)
	assert.Empty(t, data.Videos)
	assert.Equal(t, int64(0), data.Total)
}
