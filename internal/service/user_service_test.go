package service

import (
	"path/filepath"
	"testing"

	"vidshare/internal/api/dto"
	"vidshare/internal/model"
	"vidshare/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserFixture(t *testing.T) (*UserService, *videoFixture) {
	t.Helper()

	f := newVideoFixture(t)
	svc := NewUserService(repository.NewUserRepository(f.db), f.svc)
	return svc, f
}

func TestUserCreate(t *testing.T) {
	svc, _ := newUserFixture(t)

	info, err := svc.Create("alice", "alice@example.com", "secret123", model.RoleModerator)
	require.NoError(t, err)
	assert.Equal(t, "alice", info.Username)
	assert.Equal(t, model.RoleModerator, info.Role)

	// 用户名重复
	_, err = svc.Create("alice", "other@example.com", "secret123", model.RoleUser)
	assert.ErrorIs(t, err, ErrUsernameExists)

	// 邮箱重复
	_, err = svc.Create("bob", "alice@example.com", "secret123", model.RoleUser)
	assert.ErrorIs(t, err, ErrEmailExists)

	// 非法角色
	_, err = svc.Create("carol", "carol@example.com", "secret123", model.Role("superuser"))
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestUserPasswordStoredHashed(t *testing.T) {
	svc, f := newUserFixture(t)

	_, err := svc.Create("alice", "alice@example.com", "secret123", model.RoleUser)
	require.NoError(t, err)

	var user model.User
	require.NoError(t, f.db.Where("username = ?", "alice").First(&user).Error)
	assert.NotEqual(t, "secret123", user.Password)
	assert.NotEmpty(t, user.Password)
}

func TestUserList(t *testing.T) {
	svc, _ := newUserFixture(t)

	for _, name := range []string{"alice", "bob", "carol"} {
		_, err := svc.Create(name, name+"@example.com", "secret123", model.RoleUser)
		require.NoError(t, err)
	}

	// fixture 自带一个 uploader，共 4 个
	data, err := svc.List(1, 2)
	require.NoError(t, err)
	assert.Len(t, data.Users, 2)
	assert.Equal(t, int64(4), data.Total)
	assert.Equal(t, int64(2), data.TotalPages)
}

func TestUserDeleteCleansVideos(t *testing.T) {
	svc, f := newUserFixture(t)

	req := &dto.VideoUploadRequest{Title: "用户视频", CategoryID: f.category.ID}
	info, err := f.svc.Upload(f.user.ID, req, makeFileHeader(t, "v.mp4", []byte("v")), nil)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(f.user.ID))

	// 账号删除后文件与视频记录一并消失
	assert.NoFileExists(t, filepath.Join(f.videoDir, info.Filename))

	var count int64
	require.NoError(t, f.db.Model(&model.Video{}).Where("user_id = ?", f.user.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	err = svc.Delete(f.user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserDeleteNotFound(t *testing.T) {
	svc, _ := newUserFixture(t)
	assert.ErrorIs(t, svc.Delete(9999), ErrUserNotFound)
}
