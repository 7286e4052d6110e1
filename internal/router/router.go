package router

import (
	"vidshare/internal/config"
	"vidshare/internal/handlers"
	"vidshare/internal/middleware"
	"vidshare/internal/services"
	"vidshare/internal/store"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// Dependencies 路由所需的外部协作者，由 main 注入
type Dependencies struct {
	Store  store.Store
	Tokens *services.TokenService
	Config *config.Config
}

func New(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.ErrorResponder())
	RegisterRoutes(r, deps)
	return r
}

func RegisterRoutes(r *gin.Engine, deps Dependencies) {
	cfg := deps.Config

	authHandler := handlers.NewAuthHandler(deps.Store, deps.Tokens, cfg.CookieSecure)
	if cfg.GoogleClientID != "" {
		authHandler.EnableGoogleOAuth(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.SiteURL, cfg.ClientURL)
	}
	videoHandler := handlers.NewVideoHandler(
		deps.Store,
		services.NewVideoService(deps.Store),
		services.NewReactionService(deps.Store),
	)
	commentHandler := handlers.NewCommentHandler(deps.Store)

	getAuthUser := middleware.GetAuthUser(deps.Store, deps.Tokens)
	protect := middleware.Protect(deps.Store, deps.Tokens)

	r.GET("/healthz", handlers.Health(deps.Store))

	// 认证 (Auth)
	auth := r.Group("/auth")
	auth.Use(sessions.Sessions("vidshare_oauth", cookie.NewStore([]byte(cfg.SessionSecret))))
	{
		auth.POST("/google-login", authHandler.GoogleLogin)      // 客户端完成 Google 登录后换取 token
		auth.GET("/google", authHandler.GoogleRedirect)          // 服务端 OAuth 跳转
		auth.GET("/google/callback", authHandler.GoogleCallback) // OAuth 回调
		auth.GET("/me", protect, authHandler.Me)                 // 当前用户
		auth.GET("/signout", authHandler.Signout)                // 退出登录
	}

	// 视频 (Videos)
	videos := r.Group("/videos")
	{
		videos.GET("", videoHandler.Recommended)       // 推荐，按时间倒序
		videos.GET("/trending", videoHandler.Trending) // 热门，按播放数倒序
		videos.GET("/search", videoHandler.Search)     // 搜索标题/简介
		videos.POST("", protect, videoHandler.Create)  // 发布视频

		videos.GET("/:videoId", getAuthUser, videoHandler.Detail)       // 视频详情
		videos.DELETE("/:videoId", protect, videoHandler.Delete)        // 删除视频
		videos.GET("/:videoId/view", getAuthUser, videoHandler.AddView) // 记录播放
		videos.GET("/:videoId/like", protect, videoHandler.Like)        // 点赞/取消
		videos.GET("/:videoId/dislike", protect, videoHandler.Dislike)  // 点踩/取消

		videos.POST("/:videoId/comments", protect, commentHandler.Add)        // 发表评论
		videos.DELETE("/comments/:commentId", protect, commentHandler.Delete) // 删除评论
	}
}
