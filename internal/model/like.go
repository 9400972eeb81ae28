package model

import "time"

// Like 点赞记录：归属于登录用户或匿名访客，二者有且只有一个。
// 联合唯一索引在数据库层面保证同一身份对同一视频至多一条记录，
// 并发重复插入由唯一约束兜底，不再依赖先查后写。
type Like struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:点赞记录ID" json:"id"`
	UserID    *int64    `gorm:"uniqueIndex:uq_likes_user_video,priority:1;index:idx_likes_user_id;comment:点赞用户ID" json:"user_id"`
	GuestID   *string   `gorm:"size:64;uniqueIndex:uq_likes_guest_video,priority:1;index:idx_likes_guest_id;comment:访客标识" json:"guest_id"`
	VideoID   int64     `gorm:"not null;uniqueIndex:uq_likes_user_video,priority:2;uniqueIndex:uq_likes_guest_video,priority:2;index:idx_likes_video_id;comment:被点赞视频ID" json:"video_id"`
	CreatedAt time.Time `gorm:"autoCreateTime;comment:点赞时间" json:"created_at"`

	// 关联关系
	User  *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Video Video `gorm:"foreignKey:VideoID" json:"video,omitempty"`
}

func (Like) TableName() string {
	return "likes"
}
