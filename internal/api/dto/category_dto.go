package dto

// CategoryRequest 创建/重命名分类请求
type CategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// CategoryInfo 分类信息
type CategoryInfo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
