package router

import (
	"fmt"
	"strings"

	"github.com/sparkzonn-blog/internal/cache"
	"github.com/sparkzonn-blog/internal/config"
	"github.com/sparkzonn-blog/internal/constants"
	adminhandlers "github.com/sparkzonn-blog/internal/http/handlers/admin"
	publichandlers "github.com/sparkzonn-blog/internal/http/handlers/public"
	"github.com/sparkzonn-blog/internal/logger"
	"github.com/sparkzonn-blog/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "Too many login attempts",
	}
	resetRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:password_reset", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "Too many password reset requests",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 本地资源驱动时由进程直接提供图片静态服务
	if cfg.Assets.Driver == constants.AssetDriverLocal {
		r.Static("/uploads", cfg.Assets.LocalDir)
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/posts", publicHandler.GetPosts)
			// gin 要求同一段路径使用相同的参数名，like/comments 的参数段实际承载文章 ID
			public.GET("/posts/:slug", publicHandler.GetPost)
			public.POST("/posts/:slug/like", publicHandler.LikePost)
			public.GET("/posts/:slug/comments", publicHandler.GetPostComments)
			public.GET("/categories", publicHandler.GetCategories)
			public.GET("/categories/:slug", publicHandler.GetCategory)
			public.GET("/ads", publicHandler.GetAds)
			public.POST("/comments", publicHandler.CreateComment)
			public.POST("/newsletter", publicHandler.SubscribeNewsletter)
		}

		// 认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), adminHandler.Login)
			auth.POST("/forgot-password", RateLimitMiddleware(redisClient, resetRule, KeyByIPAndJSONField("email")), publicHandler.ForgotPassword)
			auth.POST("/reset-password", publicHandler.ResetPassword)
		}

		// 管理员接口（JWT + RBAC）
		admin := apiV1.Group("/admin")
		authorized := admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo), RBACMiddleware(c.AuthzService))
		{
			// 文章管理
			authorized.GET("/posts", adminHandler.GetPosts)
			authorized.GET("/posts/:id", adminHandler.GetPost)
			authorized.POST("/posts", adminHandler.CreatePost)
			authorized.PUT("/posts/:id", adminHandler.UpdatePost)
			authorized.DELETE("/posts/:id", adminHandler.DeletePost)

			// 分类管理
			authorized.GET("/categories", adminHandler.GetCategories)
			authorized.POST("/categories", adminHandler.CreateCategory)
			authorized.PUT("/categories/:id", adminHandler.UpdateCategory)
			authorized.DELETE("/categories/:id", adminHandler.DeleteCategory)

			// 广告管理
			authorized.GET("/ads", adminHandler.GetAds)
			authorized.POST("/ads", adminHandler.CreateAd)
			authorized.PUT("/ads/:id", adminHandler.UpdateAd)
			authorized.PATCH("/ads/:id/active", adminHandler.ToggleAd)
			authorized.DELETE("/ads/:id", adminHandler.DeleteAd)

			// 评论管理
			authorized.GET("/comments", adminHandler.GetComments)
			authorized.DELETE("/comments/:id", adminHandler.DeleteComment)

			// 用户管理（super_admin）
			authorized.GET("/users", adminHandler.GetUsers)
			authorized.POST("/users", adminHandler.CreateUser)
			authorized.PUT("/users/:id", adminHandler.UpdateUser)
			authorized.DELETE("/users/:id", adminHandler.DeleteUser)

			// 个人资料
			authorized.GET("/profile", adminHandler.GetProfile)
			authorized.PUT("/profile", adminHandler.UpdateProfile)
			authorized.PUT("/password", adminHandler.UpdatePassword)

			// 文件上传
			authorized.POST("/upload", adminHandler.UploadFile)

			// 邮件配置自检
			authorized.POST("/email/test", adminHandler.TestEmail)
		}
	}

	return r
}
