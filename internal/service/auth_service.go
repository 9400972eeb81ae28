package service

import (
	"context"
	"errors"

	"vidshare/internal/api/dto"
	"vidshare/internal/auth"
	"vidshare/internal/model"
	"vidshare/internal/repository"
	"vidshare/pkg/utils"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("用户不存在")
	ErrInvalidCredential = errors.New("用户名或密码错误")
)

type AuthService struct {
	userRepo  *repository.UserRepository
	tokens    *auth.Manager
	blacklist *auth.Blacklist
}

func NewAuthService(userRepo *repository.UserRepository, tokens *auth.Manager, blacklist *auth.Blacklist) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens, blacklist: blacklist}
}

// Login 用户登录，返回 token 数据（含角色，客户端据此决定落地页）
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.TokenData, error) {
	user, err := s.userRepo.GetByUsername(req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredential
		}
		return nil, err
	}

	if !utils.VerifyPassword(req.Password, user.Password) {
		return nil, ErrInvalidCredential
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.TokenData{
		Token:     token,
		TokenType: "bearer",
		ExpiresIn: int(s.tokens.TokenExpire().Seconds()),
		User:      *toUserInfo(user),
	}, nil
}

// Logout 登出：将令牌 jti 加入黑名单，直到令牌自然过期
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if s.blacklist == nil || claims.ID == "" {
		return nil
	}
	return s.blacklist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

// GetCurrentUser 根据用户 ID 获取用户信息
func (s *AuthService) GetCurrentUser(userID int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toUserInfo(user), nil
}

// GetRole 查询用户角色（权限中间件用）
func (s *AuthService) GetRole(userID int64) (model.Role, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	return user.Role, nil
}

func toUserInfo(user *model.User) *dto.UserInfo {
	return &dto.UserInfo{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}
}
