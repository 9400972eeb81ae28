package handler

import (
	"errors"

	"vidshare/internal/api/middleware"
	"vidshare/internal/api/response"
	"vidshare/internal/auth"
	"vidshare/internal/service"
	"vidshare/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LikeHandler struct {
	likeService *service.LikeService
	tokens      *auth.Manager
	guestCookie string
}

func NewLikeHandler(likeService *service.LikeService, tokens *auth.Manager, guestCookie string) *LikeHandler {
	return &LikeHandler{likeService: likeService, tokens: tokens, guestCookie: guestCookie}
}

// Toggle 切换点赞状态
// @Summary 点赞/取消点赞
// @Description 切换当前身份对视频的点赞状态；匿名访客首次点赞时下发访客令牌 Cookie
// @Tags 点赞
// @Produce json
// @Param id path int true "视频ID"
// @Success 200 {object} response.Response{data=dto.LikeToggleData} "切换成功"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /videos/{id}/like [post]
func (h *LikeHandler) Toggle(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	identity, err := middleware.EnsureIdentity(c, h.tokens, h.guestCookie)
	if err != nil {
		logger.Error("Mint guest token failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
		return
	}

	data, err := h.likeService.Toggle(identity, videoID)
	if err != nil {
		if errors.Is(err, service.ErrVideoNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		logger.Error("Toggle like failed", zap.Int64("video_id", videoID), zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
		return
	}

	response.OK(c, "操作成功", data)
}

// Status 查询点赞状态
// @Summary 查询点赞状态
// @Description 查询当前身份对视频的点赞状态与视频总点赞数
// @Tags 点赞
// @Produce json
// @Param id path int true "视频ID"
// @Success 200 {object} response.Response{data=dto.LikeToggleData} "查询成功"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /videos/{id}/like [get]
func (h *LikeHandler) Status(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	identity := middleware.ResolveIdentity(c, h.tokens, h.guestCookie)

	data, err := h.likeService.Status(identity, videoID)
	if err != nil {
		if errors.Is(err, service.ErrVideoNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		logger.Error("Get like status failed", zap.Int64("video_id", videoID), zap.Error(err))
		response.InternalError(c, "查询点赞状态失败")
		return
	}

	response.OK(c, "查询点赞状态成功", data)
}
