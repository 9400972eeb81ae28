package model

// Role 用户角色（封闭枚举，权限判断依赖角色本身而非字符串比较）
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Valid 检查角色是否为合法取值
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// In 判断角色是否属于给定集合
func (r Role) In(roles ...Role) bool {
	for _, candidate := range roles {
		if r == candidate {
			return true
		}
	}
	return false
}

// User 用户模型
type User struct {
	ID       int64  `gorm:"primaryKey;autoIncrement;comment:用户标识" json:"id"`
	Username string `gorm:"size:100;not null;uniqueIndex;comment:用户名" json:"username"`
	Email    string `gorm:"size:120;not null;uniqueIndex;comment:邮箱" json:"email"`
	Password string `gorm:"size:200;not null;comment:密码哈希" json:"-"` // json:"-" 序列化时忽略密码
	Role     Role   `gorm:"size:20;not null;default:'user';comment:用户角色" json:"role"`

	// 关联关系：删除用户时级联删除其视频和点赞记录
	Videos []Video `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"videos,omitempty"`
	Likes  []Like  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"likes,omitempty"`
}

func (User) TableName() string {
	return "users"
}
