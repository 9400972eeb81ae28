package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"vidshare/internal/api/response"
	"vidshare/internal/infra/storage"
	"vidshare/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 媒体资源的浏览器缓存时长（秒）：视频 7 天，封面 30 天
const (
	videoCacheMaxAge     = 604800
	thumbnailCacheMaxAge = 2592000
)

type AssetHandler struct {
	store storage.Storage
}

func NewAssetHandler(store storage.Storage) *AssetHandler {
	return &AssetHandler{store: store}
}

// Video 视频文件
// @Summary 获取视频文件
// @Description 按存储文件名返回视频内容，本地存储直接下发，对象存储 302 跳转
// @Tags 媒体
// @Produce octet-stream
// @Param name path string true "存储文件名"
// @Success 200 {file} binary "视频内容"
// @Failure 404 {object} response.ErrorResponse "文件不存在"
// @Router /assets/videos/{name} [get]
func (h *AssetHandler) Video(c *gin.Context) {
	h.serve(c, storage.KindVideo, videoCacheMaxAge)
}

// Thumbnail 封面图片
// @Summary 获取封面图片
// @Description 按存储文件名返回封面内容
// @Tags 媒体
// @Produce octet-stream
// @Param name path string true "存储文件名"
// @Success 200 {file} binary "封面内容"
// @Failure 404 {object} response.ErrorResponse "文件不存在"
// @Router /assets/thumbnails/{name} [get]
func (h *AssetHandler) Thumbnail(c *gin.Context) {
	h.serve(c, storage.KindThumbnail, thumbnailCacheMaxAge)
}

func (h *AssetHandler) serve(c *gin.Context, kind storage.Kind, maxAge int) {
	name := c.Param("name")
	// 存储文件名由系统生成，不允许路径穿越
	if name == "" || strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		response.BadRequest(c, "无效的文件名")
		return
	}

	loc, err := h.store.Locate(c.Request.Context(), kind, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			response.NotFound(c, "文件不存在")
			return
		}
		logger.Error("Locate asset failed", zap.String("name", name), zap.Error(err))
		response.InternalError(c, "获取文件失败")
		return
	}

	c.Header("Cache-Control", fmt.Sprintf("public, max-age=%d", maxAge))
	if loc.RedirectURL != "" {
		c.Redirect(http.StatusFound, loc.RedirectURL)
		return
	}
	c.File(loc.LocalPath)
}
