package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/iamvtyagi/flashLearn/internal/clients/gcp"
	"github.com/iamvtyagi/flashLearn/internal/clients/genai"
	"github.com/iamvtyagi/flashLearn/internal/clients/youtube"
	"github.com/iamvtyagi/flashLearn/internal/db"
	"github.com/iamvtyagi/flashLearn/internal/http/handlers"
	"github.com/iamvtyagi/flashLearn/internal/http/middleware"
	"github.com/iamvtyagi/flashLearn/internal/logger"
	"github.com/iamvtyagi/flashLearn/internal/pipeline"
	"github.com/iamvtyagi/flashLearn/internal/quiz"
	"github.com/iamvtyagi/flashLearn/internal/repos"
	"github.com/iamvtyagi/flashLearn/internal/server"
	"github.com/iamvtyagi/flashLearn/internal/services"
	"github.com/iamvtyagi/flashLearn/internal/utils"
)

func main() {
	_ = godotenv.Load()

	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	port := utils.GetEnv("PORT", "8080", log)
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	tokenTTL := utils.GetEnvAsInt("TOKEN_TTL", 86400, log)
	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	geminiModel := utils.GetEnv("GEMINI_MODEL", "gemini-1.5-flash", log)
	youtubeAPIKey := os.Getenv("YOUTUBE_API_KEY")
	audioWorkDir := utils.GetEnv("AUDIO_WORK_DIR", "", log)

	// Database
	dbService, err := db.NewDatabaseService(log)
	if err != nil {
		log.Fatal("Database init failed", "error", err)
	}
	if err = dbService.AutoMigrateAll(); err != nil {
		log.Fatal("Database auto migration failed", "error", err)
	}
	gormDB := dbService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(gormDB, log)
	tokenRepo := repos.NewBlacklistedTokenRepo(gormDB, log)
	attemptRepo := repos.NewQuizAttemptRepo(gormDB, log)

	// Clients
	log.Info("Setting up Clients from main...")
	ctx := context.Background()

	bucketService, err := gcp.NewBucketService(log)
	if err != nil {
		log.Fatal("Bucket service init failed", "error", err)
	}
	defer bucketService.Close()

	speechService, err := gcp.NewSpeech(log)
	if err != nil {
		log.Fatal("Speech service init failed", "error", err)
	}
	defer speechService.Close()

	genaiClient, err := genai.NewClient(ctx, log, geminiAPIKey, geminiModel)
	if err != nil {
		log.Fatal("Gemini client init failed", "error", err)
	}
	defer genaiClient.Close()

	ytClient, err := youtube.NewClient(ctx, log, youtubeAPIKey)
	if err != nil {
		log.Fatal("YouTube client init failed", "error", err)
	}

	// Pipeline
	log.Info("Setting up Pipeline from main...")
	extractor := pipeline.NewAudioExtractor(log, audioWorkDir)
	generator := quiz.NewGenerator(log, genaiClient)
	orchestrator := pipeline.NewOrchestrator(log, extractor, bucketService, speechService, generator)

	// Services
	log.Info("Setting up Services from main...")
	authService := services.NewAuthService(log, userRepo, tokenRepo, jwtSecretKey, time.Duration(tokenTTL)*time.Second)
	userService := services.NewUserService(log, userRepo)
	quizService := services.NewQuizService(log, attemptRepo)

	// Handlers
	log.Info("Setting up Handlers from main...")
	healthHandler := handlers.NewHealthHandler()
	userHandler := handlers.NewUserHandler(authService, userService)
	searchHandler := handlers.NewSearchHandler(ytClient)
	videoHandler := handlers.NewVideoHandler(orchestrator)
	quizHandler := handlers.NewQuizHandler(orchestrator, userService, quizService)
	pdfHandler := handlers.NewPDFHandler(orchestrator)

	// Middleware + Router
	authMiddleware := middleware.NewAuthMiddleware(log, authService)
	router := server.NewRouter(server.RouterConfig{
		Log:            log,
		AuthMiddleware: authMiddleware,
		HealthHandler:  healthHandler,
		UserHandler:    userHandler,
		SearchHandler:  searchHandler,
		VideoHandler:   videoHandler,
		QuizHandler:    quizHandler,
		PDFHandler:     pdfHandler,
	})

	log.Info("Starting server...", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
