package dto

import "time"

// VideoUploadRequest 视频上传请求（multipart/form-data，文件字段单独读取）
type VideoUploadRequest struct {
	Title       string `form:"title" binding:"required,min=1,max=200"`
	Description string `form:"description" binding:"omitempty,max=500"`
	CategoryID  int64  `form:"category_id" binding:"required"`
}

// VideoUpdateRequest 视频编辑请求（multipart/form-data，文件可选替换）
type VideoUpdateRequest struct {
	Title       *string `form:"title" binding:"omitempty,min=1,max=200"`
	Description *string `form:"description" binding:"omitempty,max=500"`
	CategoryID  *int64  `form:"category_id"`
}

// VideoInfo 视频信息
type VideoInfo struct {
	ID           int64         `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Filename     string        `json:"filename"`
	OriginalName string        `json:"original_name"`
	Thumbnail    *string       `json:"thumbnail"`
	Views        int64         `json:"views"`
	CategoryID   int64         `json:"category_id"`
	UserID       int64         `json:"user_id"`
	CreatedAt    time.Time     `json:"created_at"`
	Category     *CategoryInfo `json:"category,omitempty"`
}

// VideoListData 视频列表响应数据
type VideoListData struct {
	Videos     []VideoInfo `json:"videos"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int64       `json:"total_pages"`
	HasNext    bool        `json:"has_next"`
	HasPrev    bool        `json:"has_prev"`
}

// VideoDetailData 视频详情响应数据
type VideoDetailData struct {
	Video     VideoInfo   `json:"video"`
	Liked     bool        `json:"liked"`
	LikeCount int64       `json:"like_count"`
	Related   []VideoInfo `json:"related"`
}

// LikeToggleData 点赞切换响应数据
type LikeToggleData struct {
	Liked bool  `json:"liked"`
	Count int64 `json:"count"`
}
