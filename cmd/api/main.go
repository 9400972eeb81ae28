package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"vidshare/internal/api/handler"
	"vidshare/internal/api/middleware"
	"vidshare/internal/api/router"
	"vidshare/internal/auth"
	"vidshare/internal/config"
	"vidshare/internal/infra/database"
	infraES "vidshare/internal/infra/elasticsearch"
	infraRedis "vidshare/internal/infra/redis"
	"vidshare/internal/infra/storage"
	"vidshare/internal/model"
	"vidshare/internal/repository"
	"vidshare/internal/service"
	"vidshare/pkg/logger"

	_ "vidshare/api/openapi"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title VidShare API
// @version 1.0
// @description 视频分享平台 API 服务

// @contact.name API Support
// @contact.email support@vidshare.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host 127.0.0.1:8000
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 输入格式: Bearer {token}

func main() {
	// 加载配置文件
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 初始化日志系统
	if err := logger.Init(
		cfg.Log.Level,
		cfg.Log.Format,
		cfg.Log.Output,
		cfg.Log.FilePath,
	); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Open(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer database.Close(db)

	// 自动迁移数据库表
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to auto migrate", zap.Error(err))
	}

	// 初始化 Redis（登出黑名单）
	redisClient, err := infraRedis.New(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to init redis", zap.Error(err))
	}
	defer redisClient.Close()

	// 初始化文件存储后端
	store, err := newStorage(cfg)
	if err != nil {
		logger.Fatal("Failed to init storage", zap.Error(err))
	}

	// 初始化 Elasticsearch（可选，失败则搜索降级到 DB）
	var esClient *infraES.Client
	if cfg.Elasticsearch.Enabled {
		esClient, err = infraES.New(&cfg.Elasticsearch)
		if err != nil {
			logger.Warn("Elasticsearch init failed, search will fallback to DB", zap.Error(err))
			esClient = nil
		} else {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := esClient.EnsureIndex(ctx); err != nil {
				logger.Warn("Elasticsearch index init failed", zap.Error(err))
			}
			cancel()
		}
	}

	// 设置Gin模式
	gin.SetMode(cfg.App.Mode)

	// 创建Gin路由器（不使用默认中间件）
	r := gin.New()

	// 使用自定义中间件
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())

	// 初始化依赖（Repository -> Service -> Handler）
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	likeRepo := repository.NewLikeRepository(db)

	tokens := auth.NewManager(cfg.App.Name, &cfg.JWT, &cfg.Guest)
	blacklist := auth.NewBlacklist(redisClient)

	searchService := service.NewSearchService(esClient, videoRepo)
	authService := service.NewAuthService(userRepo, tokens, blacklist)
	categoryService := service.NewCategoryService(categoryRepo)
	videoService := service.NewVideoService(videoRepo, categoryRepo, likeRepo, store, searchService)
	likeService := service.NewLikeService(likeRepo, videoRepo)
	userService := service.NewUserService(userRepo, videoService)

	authHandler := handler.NewAuthHandler(authService)
	videoHandler := handler.NewVideoHandler(videoService, searchService, tokens, cfg.Guest.CookieName)
	likeHandler := handler.NewLikeHandler(likeService, tokens, cfg.Guest.CookieName)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	userHandler := handler.NewUserHandler(userService)
	assetHandler := handler.NewAssetHandler(store)

	// 角色门禁（需要查数据库获取角色）
	authRequired := middleware.AuthRequired(tokens, blacklist)
	optionalAuth := middleware.OptionalAuth(tokens, blacklist)
	moderatorRequired := middleware.RolesRequired(authService.GetRole, model.RoleModerator, model.RoleAdmin)
	adminRequired := middleware.RolesRequired(authService.GetRole, model.RoleAdmin)

	// 注册基础路由
	r.GET("/healthz", healthCheckHandler(cfg))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册业务路由
	router.Setup(r,
		authHandler, videoHandler, likeHandler, categoryHandler, userHandler, assetHandler,
		authRequired, optionalAuth, moderatorRequired, adminRequired,
	)

	// 启动HTTP服务器
	addr := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("Starting application",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("mode", cfg.App.Mode),
		zap.String("addr", addr),
	)
	logger.Info("Configuration loaded",
		zap.String("database", cfg.Database.Driver),
		zap.String("redis", cfg.Redis.Addr()),
		zap.String("storage", cfg.Storage.Backend),
		zap.Bool("elasticsearch", esClient != nil),
	)

	if err := r.Run(addr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

// newStorage 按配置选择文件存储后端，默认本地磁盘
func newStorage(cfg *config.Config) (storage.Storage, error) {
	switch cfg.Storage.Backend {
	case "minio":
		return storage.NewMinIO(&cfg.MinIO)
	case "", "local":
		return storage.NewLocal(&cfg.Storage)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}
}

// healthCheckHandler 健康检查接口
func healthCheckHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"message":   "Service is healthy",
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   cfg.App.Name,
			"version":   cfg.App.Version,
			"mode":      cfg.App.Mode,
		})
	}
}
