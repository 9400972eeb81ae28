package auth

import (
	"testing"

	"vidshare/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return NewManager("vidshare-test",
		&config.JWTConfig{Secret: "jwt-secret", ExpireHours: 1},
		&config.GuestConfig{Secret: "guest-secret", ExpireDays: 30},
	)
}

func TestTokenRoundTrip(t *testing.T) {
	mgr := newTestManager()

	token, err := mgr.GenerateToken(42)
	require.NoError(t, err)

	claims, err := mgr.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "vidshare-test", claims.Issuer)
	// jti 用于登出黑名单，必须存在
	assert.NotEmpty(t, claims.ID)
}

func TestTokenInvalid(t *testing.T) {
	mgr := newTestManager()

	_, err := mgr.ParseToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// 不同密钥签发的令牌不被接受
	other := NewManager("vidshare-test",
		&config.JWTConfig{Secret: "other-secret", ExpireHours: 1},
		&config.GuestConfig{Secret: "guest-secret", ExpireDays: 30},
	)
	token, err := other.GenerateToken(42)
	require.NoError(t, err)

	_, err = mgr.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGuestTokenRoundTrip(t *testing.T) {
	mgr := newTestManager()

	token, guestID, err := mgr.GenerateGuestToken()
	require.NoError(t, err)
	assert.NotEmpty(t, guestID)

	parsed, err := mgr.ParseGuestToken(token)
	require.NoError(t, err)
	assert.Equal(t, guestID, parsed)

	// 每次铸造的访客标识都不同
	_, guestID2, err := mgr.GenerateGuestToken()
	require.NoError(t, err)
	assert.NotEqual(t, guestID, guestID2)
}

func TestGuestTokenNotInterchangeable(t *testing.T) {
	mgr := newTestManager()

	// 登录令牌和访客令牌使用不同密钥，不能互换
	token, err := mgr.GenerateToken(42)
	require.NoError(t, err)
	_, err = mgr.ParseGuestToken(token)
	assert.Error(t, err)

	guestToken, _, err := mgr.GenerateGuestToken()
	require.NoError(t, err)
	_, err = mgr.ParseToken(guestToken)
	assert.Error(t, err)
}
