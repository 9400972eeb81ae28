package model

// Category 视频分类模型
type Category struct {
	ID   int64  `gorm:"primaryKey;autoIncrement;comment:分类标识" json:"id"`
	Name string `gorm:"size:100;not null;uniqueIndex;comment:分类名称" json:"name"`

	// 分类删除前必须没有视频引用，不做级联
	Videos []Video `gorm:"foreignKey:CategoryID" json:"videos,omitempty"`
}

func (Category) TableName() string {
	return "categories"
}
