package middleware

import (
	"vidshare/internal/auth"
	"vidshare/internal/model"

	"github.com/gin-gonic/gin"
)

// ResolveIdentity 解析当前请求的点赞身份（只读）：
// 已登录用登录身份，否则尝试解析访客 Cookie，都没有返回空身份。
func ResolveIdentity(c *gin.Context, mgr *auth.Manager, cookieName string) model.Identity {
	if userID, ok := GetCurrentUserID(c); ok {
		return model.UserIdentity(userID)
	}

	cookie, err := c.Cookie(cookieName)
	if err != nil || cookie == "" {
		return model.Identity{}
	}

	guestID, err := mgr.ParseGuestToken(cookie)
	if err != nil {
		return model.Identity{}
	}
	return model.GuestIdentity(guestID)
}

// EnsureIdentity 解析身份，匿名且无访客令牌时铸造一个新令牌并写回 Cookie，
// 保证同一浏览器会话的重复点赞使用稳定的访客标识。
func EnsureIdentity(c *gin.Context, mgr *auth.Manager, cookieName string) (model.Identity, error) {
	identity := ResolveIdentity(c, mgr, cookieName)
	if !identity.IsZero() {
		return identity, nil
	}

	token, guestID, err := mgr.GenerateGuestToken()
	if err != nil {
		return model.Identity{}, err
	}

	maxAge := int(mgr.GuestExpire().Seconds())
	c.SetCookie(cookieName, token, maxAge, "/", "", false, true)

	return model.GuestIdentity(guestID), nil
}
