package auth

import (
	"errors"
	"fmt"
	"time"

	"vidshare/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Claims 登录用户 JWT Claims
type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// GuestClaims 访客身份令牌 Claims，GuestID 是一次性生成的随机标识
type GuestClaims struct {
	GuestID string `json:"guest_id"`
	jwt.RegisteredClaims
}

// Manager 签发与校验令牌的认证上下文，显式构造后注入使用
type Manager struct {
	issuer      string
	jwtSecret   []byte
	jwtExpire   time.Duration
	guestSecret []byte
	guestExpire time.Duration
}

// NewManager 创建认证上下文
func NewManager(issuer string, jwtCfg *config.JWTConfig, guestCfg *config.GuestConfig) *Manager {
	return &Manager{
		issuer:      issuer,
		jwtSecret:   []byte(jwtCfg.Secret),
		jwtExpire:   jwtCfg.ExpireDuration(),
		guestSecret: []byte(guestCfg.Secret),
		guestExpire: guestCfg.ExpireDuration(),
	}
}

// TokenExpire 登录令牌有效期
func (m *Manager) TokenExpire() time.Duration {
	return m.jwtExpire
}

// GuestExpire 访客令牌有效期
func (m *Manager) GuestExpire() time.Duration {
	return m.guestExpire
}

// GenerateToken 签发登录 Token，jti 用于登出时加入黑名单
func (m *Manager) GenerateToken(userID int64) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.jwtExpire)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    m.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ParseToken 解析并验证登录 Token
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.jwtSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// GenerateGuestToken 为匿名访客签发身份令牌，内含新生成的随机访客标识。
// 令牌存在浏览器 Cookie 中，同一会话内重复点赞使用同一个访客标识。
func (m *Manager) GenerateGuestToken() (token string, guestID string, err error) {
	guestID = uuid.NewString()
	now := time.Now()
	claims := GuestClaims{
		GuestID: guestID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.guestExpire)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    m.issuer,
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err = t.SignedString(m.guestSecret)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign guest token: %w", err)
	}
	return token, guestID, nil
}

// ParseGuestToken 解析访客令牌，返回访客标识
func (m *Manager) ParseGuestToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &GuestClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.guestSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*GuestClaims)
	if !ok || !token.Valid || claims.GuestID == "" {
		return "", ErrInvalidToken
	}
	return claims.GuestID, nil
}
