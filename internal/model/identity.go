package model

// Identity 点赞身份：登录用户或匿名访客的标记联合，
// 只能通过构造函数创建，避免两者同时存在或同时缺失。
type Identity struct {
	userID  int64
	guestID string
}

// UserIdentity 登录用户身份
func UserIdentity(userID int64) Identity {
	return Identity{userID: userID}
}

// GuestIdentity 匿名访客身份
func GuestIdentity(guestID string) Identity {
	return Identity{guestID: guestID}
}

// IsGuest 是否为匿名访客
func (i Identity) IsGuest() bool {
	return i.guestID != ""
}

// IsZero 是否为空身份（既未登录也没有访客令牌）
func (i Identity) IsZero() bool {
	return i.userID == 0 && i.guestID == ""
}

// UserID 登录用户ID（匿名身份返回 0）
func (i Identity) UserID() int64 {
	return i.userID
}

// GuestID 访客标识（登录身份返回空串）
func (i Identity) GuestID() string {
	return i.guestID
}
