package middleware

import (
	"strings"

	"vidshare/internal/api/response"
	"vidshare/internal/auth"
	"vidshare/internal/model"
	"vidshare/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ContextKeyUserID = "currentUserID"
	ContextKeyClaims = "currentClaims"
)

// AuthRequired JWT 认证中间件：要求有效 Token 且 jti 不在登出黑名单中
func AuthRequired(mgr *auth.Manager, bl *auth.Blacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Unauthorized(c, "缺少认证令牌")
			c.Abort()
			return
		}

		claims, err := mgr.ParseToken(token)
		if err != nil {
			response.Unauthorized(c, "无效或过期的认证令牌")
			c.Abort()
			return
		}

		if bl != nil && claims.ID != "" {
			revoked, err := bl.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				// 黑名单不可用时放行已签名令牌，只记日志
				logger.Warn("Token blacklist check failed", zap.Error(err))
			} else if revoked {
				response.Unauthorized(c, "令牌已登出")
				c.Abort()
				return
			}
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// OptionalAuth 可选认证：令牌有效则写入上下文，无令牌或无效则放行
func OptionalAuth(mgr *auth.Manager, bl *auth.Blacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := mgr.ParseToken(token)
		if err != nil {
			c.Next()
			return
		}

		if bl != nil && claims.ID != "" {
			if revoked, err := bl.IsRevoked(c.Request.Context(), claims.ID); err == nil && revoked {
				c.Next()
				return
			}
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// GetCurrentUserID 从 Gin Context 中获取当前登录用户 ID
func GetCurrentUserID(c *gin.Context) (int64, bool) {
	val, exists := c.Get(ContextKeyUserID)
	if !exists {
		return 0, false
	}
	userID, ok := val.(int64)
	return userID, ok
}

// GetCurrentClaims 从 Gin Context 中获取当前令牌 Claims（登出用）
func GetCurrentClaims(c *gin.Context) (*auth.Claims, bool) {
	val, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil, false
	}
	claims, ok := val.(*auth.Claims)
	return claims, ok
}

// RoleFetcher 根据用户 ID 查询角色
type RoleFetcher func(userID int64) (model.Role, error)

// RolesRequired 角色门禁（必须在 AuthRequired 之后使用）：
// 调用者必须已登录且角色属于给定集合。
func RolesRequired(fetcher RoleFetcher, roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetCurrentUserID(c)
		if !ok {
			response.Unauthorized(c, "缺少认证信息")
			c.Abort()
			return
		}

		role, err := fetcher(userID)
		if err != nil {
			response.Unauthorized(c, "用户不存在")
			c.Abort()
			return
		}

		if !role.Valid() || !role.In(roles...) {
			response.Forbidden(c, "没有访问该资源的权限")
			c.Abort()
			return
		}

		c.Next()
	}
}

// extractToken 从 Authorization 头中提取 Bearer Token
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
