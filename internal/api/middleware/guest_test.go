package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"vidshare/internal/auth"
	"vidshare/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCookieName = "vidshare_guest"

func newGuestTestManager() *auth.Manager {
	return auth.NewManager("vidshare-test",
		&config.JWTConfig{Secret: "jwt-secret", ExpireHours: 1},
		&config.GuestConfig{Secret: "guest-secret", ExpireDays: 30},
	)
}

func newTestContext(req *http.Request) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

func TestEnsureIdentityMintsGuestToken(t *testing.T) {
	mgr := newGuestTestManager()
	c, w := newTestContext(httptest.NewRequest(http.MethodPost, "/videos/1/like", nil))

	identity, err := EnsureIdentity(c, mgr, testCookieName)
	require.NoError(t, err)
	assert.True(t, identity.IsGuest())
	assert.NotEmpty(t, identity.GuestID())

	// 访客令牌写回 Cookie
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, testCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	guestID, err := mgr.ParseGuestToken(cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, identity.GuestID(), guestID)
}

func TestEnsureIdentityReusesCookie(t *testing.T) {
	mgr := newGuestTestManager()

	token, guestID, err := mgr.GenerateGuestToken()
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/videos/1/like", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: token})
	c, w := newTestContext(req)

	// 已有访客令牌时复用同一个标识，不再下发新 Cookie
	identity, err := EnsureIdentity(c, mgr, testCookieName)
	require.NoError(t, err)
	assert.Equal(t, guestID, identity.GuestID())
	assert.Empty(t, w.Result().Cookies())
}

func TestEnsureIdentityPrefersLoggedInUser(t *testing.T) {
	mgr := newGuestTestManager()
	c, _ := newTestContext(httptest.NewRequest(http.MethodPost, "/videos/1/like", nil))
	c.Set(ContextKeyUserID, int64(42))

	identity, err := EnsureIdentity(c, mgr, testCookieName)
	require.NoError(t, err)
	assert.False(t, identity.IsGuest())
	assert.Equal(t, int64(42), identity.UserID())
}

func TestResolveIdentityInvalidCookie(t *testing.T) {
	mgr := newGuestTestManager()

	req := httptest.NewRequest(http.MethodGet, "/videos/1", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "garbage"})
	c, _ := newTestContext(req)

	// 伪造或过期的访客令牌按匿名处理
	identity := ResolveIdentity(c, mgr, testCookieName)
	assert.True(t, identity.IsZero())
}
