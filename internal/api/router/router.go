package router

import (
	"vidshare/internal/api/handler"

	"github.com/gin-gonic/gin"
)

// Setup 注册所有业务路由。
// 角色门禁由调用方构造后传入：moderatorRequired 放行 moderator 和 admin，
// adminRequired 只放行 admin。
func Setup(
	r *gin.Engine,
	authHandler *handler.AuthHandler,
	videoHandler *handler.VideoHandler,
	likeHandler *handler.LikeHandler,
	categoryHandler *handler.CategoryHandler,
	userHandler *handler.UserHandler,
	assetHandler *handler.AssetHandler,
	authRequired gin.HandlerFunc,
	optionalAuth gin.HandlerFunc,
	moderatorRequired gin.HandlerFunc,
	adminRequired gin.HandlerFunc,
) {
	v1 := r.Group("/api/v1")

	// --- 认证模块 ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)

		authed := auth.Group("", authRequired)
		{
			authed.POST("/logout", authHandler.Logout)
			authed.GET("/me", authHandler.Me)
		}
	}

	// --- 视频模块（公开，登录状态可选） ---
	videos := v1.Group("/videos", optionalAuth)
	{
		videos.GET("", videoHandler.List)
		videos.GET("/:id", videoHandler.Detail)

		// 点赞对匿名访客开放
		videos.GET("/:id/like", likeHandler.Status)
		videos.POST("/:id/like", likeHandler.Toggle)

		// 上传需要 moderator 或 admin
		videos.POST("", authRequired, moderatorRequired, videoHandler.Upload)
	}

	// --- 分类模块（公开读取） ---
	v1.GET("/categories", categoryHandler.List)

	// --- 媒体资源 ---
	assets := v1.Group("/assets")
	{
		assets.GET("/videos/:name", assetHandler.Video)
		assets.GET("/thumbnails/:name", assetHandler.Thumbnail)
	}

	// --- 管理后台（仅 admin） ---
	admin := v1.Group("/admin", authRequired, adminRequired)
	{
		admin.GET("/videos", videoHandler.AdminList)
		admin.PUT("/videos/:id", videoHandler.Update)
		admin.DELETE("/videos/:id", videoHandler.Delete)

		admin.POST("/categories", categoryHandler.Create)
		admin.PUT("/categories/:id", categoryHandler.Rename)
		admin.DELETE("/categories/:id", categoryHandler.Delete)

		admin.GET("/users", userHandler.List)
		admin.POST("/users", userHandler.Create)
		admin.DELETE("/users/:id", userHandler.Delete)
	}
}
