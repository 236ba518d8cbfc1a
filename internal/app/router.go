package app

import (
	"social_hub_backend/docs"
	"social_hub_backend/internal/config"
	"social_hub_backend/internal/middleware"
	"social_hub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 可匿名浏览的读取接口：有合法token则注入身份
	browse := router.Group("/api")
	browse.Use(middleware.TryAuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		browse.GET("/groups/search", c.group.Search)
		browse.GET("/posts/:id/comments", c.post.Comments)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/auth/user", c.auth.GetProfile)

		// 用户
		authGroup.PUT("/users/profile", c.user.UpdateProfile)
		authGroup.POST("/users/avatar/upload", c.user.UploadAvatar)
		authGroup.GET("/users/search", c.user.Search)
		authGroup.GET("/users/suggested", c.user.Suggested)

		// 动态
		authGroup.POST("/posts", c.post.Create)
		authGroup.GET("/posts/feed", c.post.Feed)
		authGroup.GET("/posts/user/:userId", c.post.UserPosts)
		authGroup.GET("/posts/:id", c.post.Get)
		authGroup.POST("/posts/:id/like", c.post.Like)
		authGroup.DELETE("/posts/:id/like", c.post.Unlike)
		authGroup.POST("/posts/:id/comments", c.post.AddComment)

		// 好友
		authGroup.POST("/friends/request", c.friend.SendRequest)
		authGroup.GET("/friends/requests", c.friend.PendingRequests)
		authGroup.POST("/friends/accept", c.friend.Accept)
		authGroup.POST("/friends/decline", c.friend.Decline)
		authGroup.GET("/friends", c.friend.Friends)
		authGroup.DELETE("/friends/:friendId", c.friend.Remove)

		// 小组
		authGroup.POST("/groups", c.group.Create)
		authGroup.GET("/groups/user", c.group.UserGroups)
		authGroup.GET("/groups/:id", c.group.Get)
		authGroup.POST("/groups/:id/join", c.group.Join)
		authGroup.POST("/groups/:id/leave", c.group.Leave)
		authGroup.GET("/groups/:id/posts", c.group.Posts)
		authGroup.POST("/groups/:id/posts", c.group.CreatePost)

		// 通知
		authGroup.GET("/notifications", c.notification.List)
		authGroup.GET("/notifications/unread-count", c.notification.UnreadCount)
		authGroup.POST("/notifications/:id/read", c.notification.MarkRead)
	}
}
