package handler

import (
	"GelezaSmart/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type RouterOptions struct {
	ClassCode          string
	RateLimitPerMinute int
	StaticDir          string // 비어 있으면 프론트엔드 미제공
	Swagger            bool
}

func NewRouter(h *Handler, opts RouterOptions, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	router := gin.New()
	router.Use(middleware.Recovery(logger), middleware.RequestLogger(logger))

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowHeaders = append(config.AllowHeaders, "Authorization", middleware.ClassCodeHeader)
	router.Use(cors.New(config))

	router.GET("/healthz", h.Healthz)
	router.POST("/onboarding", middleware.ClassCodeMiddleware(opts.ClassCode), h.Onboarding)

	limited := middleware.RateLimit(opts.RateLimitPerMinute)
	protected := router.Group("/api").Use(middleware.AuthMiddleware(h.tokens))
	{
		protected.GET("/profile", h.Profile)
		protected.DELETE("/profile", h.ResetProfile)
		protected.GET("/messages", h.ListMessages)
		protected.POST("/messages", limited, h.SendMessage)
		protected.GET("/messages/:id/audio", h.MessageAudio)
		protected.POST("/voice", limited, h.SendVoice)
	}

	router.GET("/ws/chat", h.HandleChatConnection)

	if opts.Swagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	if opts.StaticDir != "" {
		router.NoRoute(staticFallback(opts.StaticDir))
	}
	return router
}
