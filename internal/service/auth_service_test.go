package service

import (
	"testing"

	"vidshare/internal/api/dto"
	"vidshare/internal/auth"
	"vidshare/internal/config"
	"vidshare/internal/model"
	"vidshare/internal/repository"
	"vidshare/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthFixture(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	mgr := auth.NewManager("vidshare-test",
		&config.JWTConfig{Secret: "jwt-secret", ExpireHours: 1},
		&config.GuestConfig{Secret: "guest-secret", ExpireDays: 30},
	)
	return NewAuthService(repository.NewUserRepository(db), mgr, nil), db
}

func seedCredential(t *testing.T, db *gorm.DB, username, password string, role model.Role) *model.User {
	t.Helper()

	hash, err := utils.HashPassword(password)
	require.NoError(t, err)

	user := &model.User{
		Username: username,
		Email:    username + "@example.com",
		Password: hash,
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestLogin(t *testing.T) {
	svc, db := newAuthFixture(t)
	seedCredential(t, db, "admin", "secret123", model.RoleAdmin)

	data, err := svc.Login(&dto.LoginRequest{Username: "admin", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, data.Token)
	assert.Equal(t, "bearer", data.TokenType)
	// 角色随登录结果返回，客户端据此决定落地页
	assert.Equal(t, model.RoleAdmin, data.User.Role)
}

func TestLoginInvalidCredential(t *testing.T) {
	svc, db := newAuthFixture(t)
	seedCredential(t, db, "admin", "secret123", model.RoleAdmin)

	// 密码错误与用户不存在返回同一个错误，不泄露账号是否存在
	_, err := svc.Login(&dto.LoginRequest{Username: "admin", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredential)

	_, err = svc.Login(&dto.LoginRequest{Username: "nobody", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestGetRole(t *testing.T) {
	svc, db := newAuthFixture(t)
	user := seedCredential(t, db, "mod", "secret123", model.RoleModerator)

	role, err := svc.GetRole(user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleModerator, role)
	assert.True(t, role.In(model.RoleModerator, model.RoleAdmin))
	assert.False(t, role.In(model.RoleAdmin))

	_, err = svc.GetRole(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
