package handler

import (
	"errors"

	"vidshare/internal/api/dto"
	"vidshare/internal/api/middleware"
	"vidshare/internal/api/response"
	"vidshare/internal/service"
	"vidshare/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List 用户列表
// @Summary 用户列表
// @Description 分页查询用户账号（admin）
// @Tags 用户管理
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} response.Response{data=dto.UserListData} "获取成功"
// @Router /admin/users [get]
func (h *UserHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)

	data, err := h.userService.List(page, pageSize)
	if err != nil {
		logger.Error("List users failed", zap.Error(err))
		response.InternalError(c, "获取用户列表失败")
		return
	}

	response.OK(c, "获取用户列表成功", data)
}

// Create 开通账号
// @Summary 开通账号
// @Description 创建新用户并指定角色（admin）
// @Tags 用户管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UserCreateRequest true "用户信息"
// @Success 201 {object} response.Response{data=dto.UserInfo} "创建成功"
// @Failure 409 {object} response.ErrorResponse "用户名或邮箱已存在"
// @Router /admin/users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	info, err := h.userService.Create(req.Username, req.Email, req.Password, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameExists), errors.Is(err, service.ErrEmailExists):
			response.Conflict(c, err.Error())
		case errors.Is(err, service.ErrInvalidRole):
			response.BadRequest(c, err.Error())
		default:
			logger.Error("Create user failed", zap.Error(err))
			response.InternalError(c, "创建用户失败")
		}
		return
	}

	response.Created(c, "用户创建成功", info)
}

// Delete 删除用户
// @Summary 删除用户
// @Description 删除用户账号，其上传的视频与点赞一并删除（admin），不允许删除自己
// @Tags 用户管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Success 200 {object} response.Response "删除成功"
// @Failure 404 {object} response.ErrorResponse "用户不存在"
// @Router /admin/users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	if currentID, ok := middleware.GetCurrentUserID(c); ok && currentID == userID {
		response.BadRequest(c, "不能删除当前登录的账号")
		return
	}

	if err := h.userService.Delete(userID); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		logger.Error("Delete user failed", zap.Int64("user_id", userID), zap.Error(err))
		response.InternalError(c, "删除用户失败")
		return
	}

	response.OK(c, "用户删除成功", nil)
}
