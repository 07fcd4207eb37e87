package main

import (
	"connectfitness/coach-api/internal/ai"
	"connectfitness/coach-api/internal/api"
	"connectfitness/coach-api/internal/config"
	"connectfitness/coach-api/internal/logger"
	"connectfitness/coach-api/internal/service"
	"connectfitness/coach-api/internal/storage"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}

	zl, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("FATAL: Could not build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()
	zl.Info("starting Connect Fitness API",
		zap.String("address", cfg.Server.Address),
		zap.String("database_driver", cfg.Database.Driver),
	)

	// --- Database ---
	repos, err := openRepositories(cfg.Database, zl.Named("db"))
	if err != nil {
		zl.Fatal("could not open database", zap.Error(err))
	}
	defer func() {
		if err := repos.close(); err != nil {
			zl.Error("failed to close database", zap.Error(err))
		}
	}()

	// --- File storage (optional) ---
	var fileStorage storage.FileStorage
	if cfg.S3.Enabled() {
		fileStorage, err = storage.NewS3Storage(context.Background(), cfg.S3, zl.Named("storage"))
		if err != nil {
			zl.Fatal("failed to initialize S3 storage", zap.Error(err))
		}
	} else {
		zl.Warn("s3.bucket_name is empty; exercise video uploads are disabled")
	}

	// --- Model client ---
	if cfg.AI.APIKey == "" {
		zl.Warn("ai.api_key is empty; model calls will be sent without credentials")
	}
	model := ai.NewChatClient(ai.ChatClientConfig{
		BaseURL:       cfg.AI.BaseURL,
		APIKey:        cfg.AI.APIKey,
		Model:         cfg.AI.Model,
		Temperature:   cfg.AI.Temperature,
		Timeout:       cfg.AI.Timeout,
		MaxConcurrent: cfg.AI.MaxConcurrent,
	}, zl)

	// --- Services ---
	authService := service.NewAuthService(repos.users, cfg.JWT.Secret, cfg.JWT.Expiration)
	clientService := service.NewClientService(repos.clients)
	planService := service.NewWorkoutPlanService(repos.plans, repos.clients)
	generationService := service.NewGenerationService(model, repos.plans, zl, service.GenerationOptions{
		LogRawOutput: cfg.AI.LogRawOutput,
	})
	videoService := service.NewExerciseVideoService(fileStorage)

	zl.Info("workout generation configured",
		zap.String("model", cfg.AI.Model),
		zap.Bool("require_auth", cfg.AI.RequireAuth),
		zap.Int("max_concurrent", cfg.AI.MaxConcurrent),
		zap.Bool("log_raw_output", cfg.AI.LogRawOutput),
	)
	if !cfg.AI.RequireAuth {
		zl.Warn("POST /api/v1/ai/workouts/generate is public; set ai.require_auth to restrict it to signed-in coaches")
	}

	// --- HTTP ---
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(zl, api.Services{
		Auth:         authService,
		Clients:      clientService,
		WorkoutPlans: planService,
		Generation:   generationService,
		Videos:       videoService,
	}, api.RouterOptions{
		AllowedOrigins:           cfg.Server.AllowedOrigins,
		RequireAuthForGeneration: cfg.AI.RequireAuth,
	})

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		zl.Info("server listening", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("listen failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zl.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		zl.Error("server forced to shutdown", zap.Error(err))
	}
	zl.Info("server exited")
}
