package api

import (
	"connectfitness/coach-api/internal/domain"
	"connectfitness/coach-api/internal/service"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Services are the application services the HTTP layer calls into.
type Services struct {
	Auth         service.AuthService
	Clients      service.ClientService
	WorkoutPlans service.WorkoutPlanService
	Generation   service.GenerationService
	Videos       service.ExerciseVideoService
}

type RouterOptions struct {
	AllowedOrigins []string
	// RequireAuthForGeneration puts the AI generation route behind coach authentication.
	RequireAuthForGeneration bool
}

// NewRouter builds the gin engine with the shared middleware stack and all routes.
func NewRouter(logger *zap.Logger, services Services, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(requestid.New())
	router.Use(RequestLogger(logger.Named("http")))
	router.Use(Recovery(logger.Named("http")))
	router.Use(cors.New(corsConfig(opts.AllowedOrigins)))

	SetupRoutes(router, logger, services, opts)
	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

func SetupRoutes(router *gin.Engine, logger *zap.Logger, services Services, opts RouterOptions) {
	authHandler := NewAuthHandler(services.Auth)
	clientHandler := NewClientHandler(services.Clients)
	planHandler := NewWorkoutPlanHandler(services.WorkoutPlans)
	uploadHandler := NewUploadHandler(services.Videos, logger)
	generationHandler := NewGenerationHandler(services.Generation, services.Clients, logger, opts.RequireAuthForGeneration)

	authMiddleware := AuthMiddleware(services.Auth)
	coachOnly := RoleMiddleware(domain.RoleCoach)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "Connect Fitness API is running"})
	})
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		if opts.RequireAuthForGeneration {
			apiV1.POST("/ai/workouts/generate", authMiddleware, coachOnly, generationHandler.GenerateWorkouts)
		} else {
			apiV1.POST("/ai/workouts/generate", generationHandler.GenerateWorkouts)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.Me)

		coach := protected.Group("")
		coach.Use(coachOnly)
		{
			coach.POST("/clients", clientHandler.CreateClient)
			coach.GET("/clients", clientHandler.ListClients)
			coach.GET("/clients/:clientId", clientHandler.GetClient)

			coach.POST("/workout-plans", planHandler.CreateWorkoutPlan)
			coach.GET("/workout-plans", planHandler.ListWorkoutPlans)
			coach.GET("/workout-plans/:planId", planHandler.GetWorkoutPlan)

			coach.POST("/uploads/exercise-videos", uploadHandler.RequestUpload)
			coach.DELETE("/uploads/exercise-videos", uploadHandler.Delete)
		}
	}
}
