package handler

import (
	"errors"
	"strconv"

	"vidshare/internal/api/dto"
	"vidshare/internal/api/middleware"
	"vidshare/internal/api/response"
	"vidshare/internal/auth"
	"vidshare/internal/service"
	"vidshare/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type VideoHandler struct {
	videoService  *service.VideoService
	searchService *service.SearchService
	tokens        *auth.Manager
	guestCookie   string
}

func NewVideoHandler(videoService *service.VideoService, searchService *service.SearchService, tokens *auth.Manager, guestCookie string) *VideoHandler {
	return &VideoHandler{
		videoService:  videoService,
		searchService: searchService,
		tokens:        tokens,
		guestCookie:   guestCookie,
	}
}

// List 公开视频列表
// @Summary 视频列表
// @Description 分页浏览视频，支持分类筛选与标题搜索，按创建时间倒序
// @Tags 视频
// @Produce json
// @Param page query int false "页码" default(1)
// @Param q query string false "标题搜索关键词"
// @Param category_id query int false "分类ID"
// @Success 200 {object} response.Response{data=dto.VideoListData} "获取成功"
// @Failure 404 {object} response.ErrorResponse "分类不存在"
// @Router /videos [get]
func (h *VideoHandler) List(c *gin.Context) {
	page := parsePage(c)
	query := c.Query("q")

	var categoryID *int64
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			response.BadRequest(c, "无效的分类ID")
			return
		}
		categoryID = &id
	}

	var (
		data *dto.VideoListData
		err  error
	)
	if query != "" && h.searchService != nil {
		data, err = h.searchService.Search(query, categoryID, page, service.PublicPageSize)
	} else {
		data, err = h.videoService.List(page, categoryID, query)
	}
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		logger.Error("List videos failed", zap.Error(err))
		response.InternalError(c, "获取视频列表失败")
		return
	}

	response.OK(c, "获取视频列表成功", data)
}

// Detail 视频详情
// @Summary 视频详情
// @Description 获取视频详情，访问一次播放量 +1，附带点赞状态与相关视频
// @Tags 视频
// @Produce json
// @Param id path int true "视频ID"
// @Success 200 {object} response.Response{data=dto.VideoDetailData} "获取成功"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /videos/{id} [get]
func (h *VideoHandler) Detail(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	identity := middleware.ResolveIdentity(c, h.tokens, h.guestCookie)

	data, err := h.videoService.Detail(videoID, identity)
	if err != nil {
		if errors.Is(err, service.ErrVideoNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		logger.Error("Get video detail failed", zap.Int64("video_id", videoID), zap.Error(err))
		response.InternalError(c, "获取视频详情失败")
		return
	}

	response.OK(c, "获取视频详情成功", data)
}

// Upload 上传视频
// @Summary 上传视频
// @Description 上传视频文件与可选封面（moderator/admin）
// @Tags 视频
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "标题"
// @Param description formData string false "描述"
// @Param category_id formData int true "分类ID"
// @Param video formData file true "视频文件"
// @Param thumbnail formData file false "封面图片"
// @Success 201 {object} response.Response{data=dto.VideoInfo} "上传成功"
// @Failure 400 {object} response.ErrorResponse "请求参数无效"
// @Failure 404 {object} response.ErrorResponse "分类不存在"
// @Router /videos [post]
func (h *VideoHandler) Upload(c *gin.Context) {
	var req dto.VideoUploadRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	videoFile, err := c.FormFile("video")
	if err != nil {
		response.BadRequest(c, "缺少视频文件")
		return
	}
	thumbFile, _ := c.FormFile("thumbnail")

	userID, _ := middleware.GetCurrentUserID(c)

	info, err := h.videoService.Upload(userID, &req, videoFile, thumbFile)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.Created(c, "视频上传成功", info)
}

// Update 编辑视频
// @Summary 编辑视频
// @Description 更新标题/描述/分类，可替换视频文件或封面（admin）
// @Tags 视频
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "视频ID"
// @Param title formData string false "标题"
// @Param description formData string false "描述"
// @Param category_id formData int false "分类ID"
// @Param video formData file false "新视频文件"
// @Param thumbnail formData file false "新封面图片"
// @Success 200 {object} response.Response{data=dto.VideoInfo} "更新成功"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /admin/videos/{id} [put]
func (h *VideoHandler) Update(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	var req dto.VideoUpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	videoFile, _ := c.FormFile("video")
	thumbFile, _ := c.FormFile("thumbnail")

	info, err := h.videoService.Update(videoID, &req, videoFile, thumbFile)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "视频更新成功", info)
}

// Delete 删除视频
// @Summary 删除视频
// @Description 删除视频记录与存储文件（admin），点赞一并清除
// @Tags 视频
// @Produce json
// @Security BearerAuth
// @Param id path int true "视频ID"
// @Success 200 {object} response.Response "删除成功"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /admin/videos/{id} [delete]
func (h *VideoHandler) Delete(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	if err := h.videoService.Delete(videoID); err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "视频删除成功", nil)
}

// AdminList 管理后台视频列表
// @Summary 管理后台视频列表
// @Description 后台分页视频面板，每页 9 条（admin）
// @Tags 视频
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response{data=dto.VideoListData} "获取成功"
// @Router /admin/videos [get]
func (h *VideoHandler) AdminList(c *gin.Context) {
	page := parsePage(c)

	data, err := h.videoService.AdminList(page)
	if err != nil {
		logger.Error("Admin list videos failed", zap.Error(err))
		response.InternalError(c, "获取视频列表失败")
		return
	}

	response.OK(c, "获取视频列表成功", data)
}

func handleVideoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrVideoNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrCategoryNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrVideoFileMissing):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("Video operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
