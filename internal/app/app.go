package app

import (
	"ai_hub_backend/internal/config"
	"ai_hub_backend/internal/controller"
	"ai_hub_backend/internal/middleware"
	"ai_hub_backend/internal/quizbank"
	"ai_hub_backend/internal/repository"
	"ai_hub_backend/internal/service"
	"ai_hub_backend/pkg/configwatcher"
	"ai_hub_backend/pkg/database"
	"ai_hub_backend/pkg/logger"
	"ai_hub_backend/pkg/monitoring"
	"ai_hub_backend/pkg/security"
	"ai_hub_backend/pkg/tracing"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config    *config.Config
	Router    *gin.Engine
	DB        *gorm.DB
	Redis     *redis.Client
	adminGate *middleware.AdminGate
	services  *services
}

type repositories struct {
	submission   *repository.SubmissionRepository
	story        *repository.StoryRepository
	conversation *repository.ConversationRepository
}

type services struct {
	quiz        *service.QuizService
	certificate *service.CertificateService
	story       *service.StoryService
	dashboard   *service.DashboardService
	export      *service.ExportService
	assistant   *service.AssistantService
}

type controllers struct {
	quiz        *controller.QuizController
	story       *controller.StoryController
	certificate *controller.CertificateController
	dashboard   *controller.DashboardController
	admin       *controller.AdminController
	assistant   *controller.AssistantController
	health      *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		submission:   repository.NewSubmissionRepository(db),
		story:        repository.NewStoryRepository(db),
		conversation: repository.NewConversationRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, bank *quizbank.Bank, rdb *redis.Client) *services {
	return &services{
		quiz:        service.NewQuizService(repos.submission, bank, rdb),
		certificate: service.NewCertificateService(repos.submission, bank, cfg.Certificate.TestEmail),
		story:       service.NewStoryService(repos.story, repos.submission),
		dashboard:   service.NewDashboardService(repos.submission, repos.story),
		export:      service.NewExportService(repos.submission),
		assistant:   service.NewAssistantService(cfg.AI, repos.conversation),
	}
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		quiz:        controller.NewQuizController(s.quiz),
		story:       controller.NewStoryController(s.story),
		certificate: controller.NewCertificateController(s.certificate),
		dashboard:   controller.NewDashboardController(s.dashboard),
		admin:       controller.NewAdminController(s.export),
		assistant:   controller.NewAssistantController(s.assistant),
		health:      controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	bank, err := quizbank.Load()
	if err != nil {
		logger.Log.Fatal("Failed to load quiz bank", zap.Error(err))
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.MigrateOnly {
		return &App{Config: cfg, DB: db}
	}

	// Redis only backs the module-stats cache; the hub stays up without it.
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, module stats served from database", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, bank, rdb)
	app.services = services
	controllers := app.initControllers(services, db)

	app.adminGate = middleware.NewAdminGate(cfg.Admin.Password)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("ai-hub", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers)

	go configwatcher.WatchConfig("configs/config.yaml", func(updated *config.Config) {
		app.adminGate.UpdatePassword(updated.Admin.Password)
		services.assistant.UpdateConfig(updated.AI)
		logger.Log.Info("Configuration reloaded")
	})

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
