package dto

import "vidshare/internal/model"

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=3,max=80"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// TokenData 登录成功返回的 Token 信息，
// 客户端根据 user.role 决定跳转到管理后台还是视频列表
type TokenData struct {
	Token     string   `json:"token"`
	TokenType string   `json:"token_type"`
	ExpiresIn int      `json:"expires_in"`
	User      UserInfo `json:"user"`
}

// UserInfo 用户公开信息（不含密码）
type UserInfo struct {
	ID       int64      `json:"id"`
	Username string     `json:"username"`
	Email    string     `json:"email"`
	Role     model.Role `json:"role"`
}

// UserCreateRequest 管理端开通账号请求
type UserCreateRequest struct {
	Username string     `json:"username" binding:"required,min=3,max=80"`
	Email    string     `json:"email" binding:"required,email,max=120"`
	Password string     `json:"password" binding:"required,min=6,max=128"`
	Role     model.Role `json:"role" binding:"required"`
}

// UserListData 用户列表响应数据
type UserListData struct {
	Users      []UserInfo `json:"users"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int64      `json:"total_pages"`
}
