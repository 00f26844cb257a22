package server

import (
	"github.com/gin-gonic/gin"

	"github.com/iamvtyagi/flashLearn/internal/http/handlers"
	"github.com/iamvtyagi/flashLearn/internal/http/middleware"
	"github.com/iamvtyagi/flashLearn/internal/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	AuthMiddleware *middleware.AuthMiddleware
	HealthHandler  *handlers.HealthHandler
	UserHandler    *handlers.UserHandler
	SearchHandler  *handlers.SearchHandler
	VideoHandler   *handlers.VideoHandler
	QuizHandler    *handlers.QuizHandler
	PDFHandler     *handlers.PDFHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(cfg.Log))
	router.Use(middleware.CORS())

	// Public
	router.GET("/healthcheck", cfg.HealthHandler.Healthcheck)

	users := router.Group("/users")
	{
		users.POST("/register", cfg.UserHandler.Register)
		users.POST("/login", cfg.UserHandler.Login)
		users.GET("/leaderboard", cfg.UserHandler.Leaderboard)
	}

	api := router.Group("/api")
	{
		api.GET("/search", cfg.SearchHandler.SearchPlaylists)
		api.GET("/playlist-videos", cfg.SearchHandler.PlaylistVideos)
		api.POST("/quiz", cfg.QuizHandler.FromTranscript)
		api.POST("/pdf-quiz", cfg.PDFHandler.FromPDF)
	}

	// Protected
	protectedUsers := router.Group("/users")
	protectedUsers.Use(cfg.AuthMiddleware.RequireAuth())
	{
		protectedUsers.GET("/profile", cfg.UserHandler.Profile)
		protectedUsers.GET("/logout", cfg.UserHandler.Logout)
	}

	protectedAPI := router.Group("/api")
	protectedAPI.Use(cfg.AuthMiddleware.RequireAuth())
	{
		protectedAPI.POST("/process-video", cfg.VideoHandler.ProcessVideo)
		protectedAPI.POST("/quiz/stats", cfg.QuizHandler.UpdateStats)
		protectedAPI.POST("/quiz/attempts", cfg.QuizHandler.SaveAttempt)
		protectedAPI.GET("/quiz/attempts", cfg.QuizHandler.Attempts)
	}

	return router
}
