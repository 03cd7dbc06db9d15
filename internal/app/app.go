package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"course_market_backend/internal/config"
	"course_market_backend/internal/controller"
	"course_market_backend/internal/repository"
	"course_market_backend/internal/service"
	"course_market_backend/pkg/database"
	"course_market_backend/pkg/logger"
	"course_market_backend/pkg/monitoring"
	"course_market_backend/pkg/security"
	"course_market_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	category   *repository.CategoryRepository
	course     *repository.CourseRepository
	chapter    *repository.ChapterRepository
	attachment *repository.AttachmentRepository
	videoAsset *repository.VideoAssetRepository
	progress   *repository.ProgressRepository
	purchase   *repository.PurchaseRepository
}

type services struct {
	storage   *service.StorageService
	media     *service.MediaService
	category  *service.CategoryService
	progress  *service.ProgressService
	catalog   *service.CatalogService
	course    *service.CourseService
	chapter   *service.ChapterService
	purchase  *service.PurchaseService
	dashboard *service.DashboardService
}

type controllers struct {
	catalog   *controller.CatalogController
	progress  *controller.ProgressController
	course    *controller.CourseController
	chapter   *controller.ChapterController
	purchase  *controller.PurchaseController
	category  *controller.CategoryController
	dashboard *controller.DashboardController
	health    *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ReloadConfig 配置文件热更新入口，由 configwatcher 触发
func (a *App) ReloadConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
	logger.Log.Info("Config reloaded")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		category:   repository.NewCategoryRepository(db),
		course:     repository.NewCourseRepository(db),
		chapter:    repository.NewChapterRepository(db),
		attachment: repository.NewAttachmentRepository(db),
		videoAsset: repository.NewVideoAssetRepository(db),
		progress:   repository.NewProgressRepository(db),
		purchase:   repository.NewPurchaseRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.media = service.NewMediaService(s.storage, cfg)
	s.category = service.NewCategoryService(repos.category)
	s.progress = service.NewProgressService(repos.progress, repos.chapter, repos.course, repos.purchase)
	s.catalog = service.NewCatalogService(repos.course, repos.chapter, repos.purchase, repos.progress, s.progress, rdb, cfg)
	s.course = service.NewCourseService(repos.course, repos.chapter, repos.attachment, repos.category, s.catalog)
	s.chapter = service.NewChapterService(repos.chapter, repos.course, repos.videoAsset, s.catalog)
	s.purchase = service.NewPurchaseService(repos.purchase, repos.course, service.NewPaymentClient(cfg), cfg.Payment.Currency)
	s.dashboard = service.NewDashboardService(repos.purchase)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		catalog:   controller.NewCatalogController(s.catalog, s.category),
		progress:  controller.NewProgressController(s.progress),
		course:    controller.NewCourseController(s.course, s.media),
		chapter:   controller.NewChapterController(s.chapter, s.media),
		purchase:  controller.NewPurchaseController(s.purchase),
		category:  controller.NewCategoryController(s.category),
		dashboard: controller.NewDashboardController(s.dashboard),
		health:    controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("course-market", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
		router.Static("/api/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
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
