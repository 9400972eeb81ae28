package model

import "time"

// Video 视频模型
type Video struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;comment:视频标识" json:"id"`
	Title        string    `gorm:"size:200;not null;comment:视频标题" json:"title"`
	Description  string    `gorm:"size:500;comment:视频描述" json:"description"`
	Filename     string    `gorm:"size:255;not null;comment:存储文件名（系统生成）" json:"filename"`
	OriginalName string    `gorm:"size:255;not null;comment:上传时的原始文件名" json:"original_name"`
	Thumbnail    *string   `gorm:"size:255;comment:封面文件名" json:"thumbnail"`
	Views        int64     `gorm:"not null;default:0;comment:播放量" json:"views"`
	CategoryID   int64     `gorm:"not null;index:idx_videos_category_id;comment:所属分类ID" json:"category_id"`
	UserID       int64     `gorm:"not null;index:idx_videos_user_id;comment:上传用户ID" json:"user_id"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index:idx_videos_created_at;comment:创建时间" json:"created_at"`

	// 关联关系
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	User     User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Likes    []Like   `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE" json:"likes,omitempty"`
}

func (Video) TableName() string {
	return "videos"
}
