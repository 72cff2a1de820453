package router

import (
	"github.com/newsroom/backend/internal/domain/identity"
	"github.com/newsroom/backend/internal/infrastructure/auth"
	"github.com/newsroom/backend/internal/infrastructure/config"
	"github.com/newsroom/backend/internal/infrastructure/logger"
	"github.com/newsroom/backend/internal/interfaces/http/handler"
	"github.com/newsroom/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers bundles all route handlers
type Handlers struct {
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Post       *handler.PostHandler
	Comment    *handler.CommentHandler
	Taxonomy   *handler.TaxonomyHandler
	Magazine   *handler.MagazineHandler
	Media      *handler.MediaHandler
	Subscriber *handler.SubscriberHandler
	System     *handler.SystemHandler
}

// New builds the gin engine with the full middleware chain and the
// /api/v1 route table
func New(cfg *config.Config, jwtService *auth.JWTService, handlers Handlers, log *zap.Logger) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.Use(logger.Recovery(log))
	engine.Use(middleware.RequestID())
	engine.Use(logger.AccessLog(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}

	requireAuth := middleware.RequireAuth(jwtService)
	optionalAuth := middleware.OptionalAuth(jwtService)
	staffOnly := middleware.RequireRole(identity.RoleAdmin, identity.RoleEditor)
	adminOnly := middleware.RequireRole(identity.RoleAdmin)

	api := engine.Group("/api/v1")

	api.GET("/health", handlers.System.Health)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/sign-up", handlers.Auth.SignUp)
		authGroup.POST("/login", handlers.Auth.Login)
		authGroup.POST("/refresh", handlers.Auth.Refresh)
	}

	users := api.Group("/users")
	{
		users.GET("/me", requireAuth, handlers.Auth.Me)
		users.POST("/update-name", requireAuth, handlers.User.UpdateName)
		users.GET("/profile/:username", handlers.User.GetProfile)
		users.GET("", requireAuth, adminOnly, handlers.User.List)
		users.POST("/:id/role", requireAuth, adminOnly, handlers.User.ChangeRole)
	}

	posts := api.Group("/posts")
	{
		articles := posts.Group("/articles")
		articles.GET("", optionalAuth, handlers.Post.List)
		articles.POST("", requireAuth, handlers.Post.Create)
		articles.GET("/featured", handlers.Post.Featured)
		articles.GET("/:id", optionalAuth, handlers.Post.Get)
		articles.PATCH("/:id", requireAuth, handlers.Post.Update)
		articles.DELETE("/:id", requireAuth, handlers.Post.Delete)
		articles.POST("/:id/approve", requireAuth, staffOnly, handlers.Post.Approve)
		articles.POST("/:id/reject", requireAuth, staffOnly, handlers.Post.Reject)
		articles.POST("/:id/view", handlers.Post.RecordView)
		articles.GET("/:id/comments", optionalAuth, handlers.Post.ListComments)
		articles.POST("/:id/comments", optionalAuth, handlers.Post.AddComment)
	}

	categories := api.Group("/categories")
	{
		categories.GET("", handlers.Taxonomy.ListCategories)
		categories.POST("", requireAuth, adminOnly, handlers.Taxonomy.CreateCategory)
		categories.DELETE("/:id", requireAuth, adminOnly, handlers.Taxonomy.DeleteCategory)
		categories.GET("/:slug/articles", handlers.Taxonomy.CategoryArticles)
	}

	api.GET("/tags", handlers.Taxonomy.ListTags)

	magazines := api.Group("/magazines")
	{
		magazines.GET("", optionalAuth, handlers.Magazine.List)
		magazines.POST("", requireAuth, staffOnly, handlers.Magazine.Create)
		magazines.GET("/:slug", optionalAuth, handlers.Magazine.GetBySlug)
		magazines.POST("/:id/approve", requireAuth, staffOnly, handlers.Magazine.Approve)
	}

	comments := api.Group("/comments")
	{
		comments.POST("/:id/moderate", requireAuth, staffOnly, handlers.Comment.Moderate)
	}

	media := api.Group("/media", requireAuth)
	{
		media.POST("/upload-url", handlers.Media.RequestUpload)
		media.POST("", handlers.Media.Register)
		media.GET("", handlers.Media.ListMine)
		media.DELETE("/:id", handlers.Media.Delete)
	}

	subscribers := api.Group("/subscribers")
	{
		subscribers.POST("", handlers.Subscriber.Subscribe)
		subscribers.POST("/verify", handlers.Subscriber.Verify)
	}

	return engine
}
