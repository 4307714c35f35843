package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"sellhub_uz_202608/internal/controller"
	"sellhub_uz_202608/internal/middleware"
	"sellhub_uz_202608/internal/model"
	"sellhub_uz_202608/internal/repository"
	"sellhub_uz_202608/internal/router"
	"sellhub_uz_202608/internal/service"
	"sellhub_uz_202608/internal/task"
	"sellhub_uz_202608/pkg/database"
)

func main() {
	// 1. 加载环境变量和日志
	initEnv()

	// 2. 初始化数据库
	db := initDatabase()

	// 3. 初始化依赖
	deps := initDependencies(db)

	// 4. 启动后台任务
	taskManager := initTasks(deps)
	defer taskManager.Stop()

	// 5. 初始化路由
	r := gin.Default()
	router.InitRoutes(r, deps.Repos.Partner,
		deps.Controllers.Card,
		deps.Controllers.Price,
		deps.Controllers.Mxik,
		deps.Controllers.Report,
	)

	// 6. 启动服务
	startServer(r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *Controllers
}

// Repositories 仓库集合
type Repositories struct {
	Partner   repository.PartnerRepository
	Card      repository.CardRepository
	AiCallLog repository.AICallLogRepository
}

// Services 服务集合
type Services struct {
	Mxik     *service.MxikService
	Category *service.CategoryService
	Pricing  *service.PricingService
	Quality  *service.QualityService
	AI       *service.AIService
	Storage  *service.StorageService
	Card     *service.CardService
	Report   *service.ReportService
	Uzum     *service.UzumClient
	Yandex   *service.YandexClient
}

// Controllers 控制器集合
type Controllers struct {
	Card   *controller.CardController
	Price  *controller.PriceController
	Mxik   *controller.MxikController
	Report *controller.ReportController
}

// ==================== 初始化函数 ====================

// initEnv 加载 .env 和日志配置
func initEnv() {
	if err := godotenv.Load(); err != nil {
		log.Warn("未找到 .env 文件，使用系统环境变量")
	}

	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	if getEnv("LOG_LEVEL", "info") == "debug" {
		log.SetLevel(log.DebugLevel)
	}

	if getEnv("GIN_MODE", "") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetJWTConfig(&middleware.JWTConfig{
		SecretKey:      getEnv("JWT_SECRET", "sellhub-secret-key-change-in-production"),
		AccessTokenTTL: 24 * time.Hour,
		Issuer:         "sellhub-uz",
	})
}

// initDatabase 初始化数据库
func initDatabase() *gorm.DB {
	dsn := getEnv("DATABASE_DSN",
		"host=localhost user=sellhub password=sellhub dbname=sellhub port=5432 sslmode=disable TimeZone=Asia/Tashkent")

	return database.InitDB(dsn, getEnv("LOG_LEVEL", "info") == "debug",
		// Partner
		&model.Partner{},
		// Card
		&model.ProductCard{}, &model.CardImage{},
		// AI
		&model.AICallLog{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB) *Dependencies {
	// -------- Repo 层 --------
	repos := &Repositories{
		Partner:   repository.NewPartnerRepository(db),
		Card:      repository.NewCardRepository(db),
		AiCallLog: repository.NewAICallLogRepository(db),
	}

	// -------- 领域服务 --------
	services := &Services{
		Mxik:     service.NewMxikService(getEnv("MXIK_DATA_FILE", "data/mxik_codes.json")),
		Category: service.NewCategoryService(nil),
		Pricing:  service.NewPricingService(),
		Quality:  service.NewQualityService(),
	}

	// -------- 存储 & AI 服务 --------
	services.Storage = initStorageService()
	services.AI = initAIService(repos.AiCallLog)

	// -------- 市场客户端 --------
	mpCfg := &service.MarketplaceConfig{
		UzumBaseURL:    getEnv("UZUM_BASE_URL", ""),
		UzumToken:      getEnv("UZUM_API_TOKEN", ""),
		YandexBaseURL:  getEnv("YANDEX_BASE_URL", ""),
		YandexToken:    getEnv("YANDEX_API_TOKEN", ""),
		YandexCampaign: getEnv("YANDEX_CAMPAIGN_ID", ""),
	}
	services.Uzum = service.NewUzumClient(mpCfg)
	services.Yandex = service.NewYandexClient(mpCfg)

	// nil 接口陷阱：只有实例非空时才赋值
	var content service.ContentGeneratorInterface
	var infographic service.InfographicGeneratorInterface
	if services.AI != nil {
		content = services.AI
		infographic = services.AI
	}
	var imageHost service.ImageHostInterface
	if services.Storage != nil {
		imageHost = services.Storage
	}

	marketplace, err := service.ResolveMarketplaceClient(
		getEnv("DEFAULT_MARKETPLACE", "uzum"), services.Uzum, services.Yandex)
	if err != nil {
		log.Warnf("默认市场客户端不可用: %v", err)
	}

	// -------- 卡片流水线 --------
	services.Card = service.NewCardService(
		services.Mxik,
		services.Category,
		services.Pricing,
		services.Quality,
		content,
		infographic,
		imageHost,
		marketplace,
		repos.Card,
		nil,
	)
	services.Report = service.NewReportService(repos.Card, repos.AiCallLog)

	// -------- Controller 层 --------
	controllers := &Controllers{
		Card:   controller.NewCardController(services.Card, repos.Card),
		Price:  controller.NewPriceController(services.Pricing, repos.Partner),
		Mxik:   controller.NewMxikController(services.Mxik),
		Report: controller.NewReportController(services.Report),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// initStorageService 初始化存储服务
func initStorageService() *service.StorageService {
	storageSvc, err := service.NewStorageService(&service.StorageConfig{
		Provider:  getEnv("STORAGE_PROVIDER", "s3"),
		Bucket:    getEnv("AWS_BUCKET", ""),
		Region:    getEnv("AWS_REGION", ""),
		AccessKey: getEnv("AWS_ACCESS_KEY_ID", ""),
		SecretKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		Endpoint:  getEnv("STORAGE_ENDPOINT", ""),
		CDNDomain: getEnv("AWS_CDN_DOMAIN", ""),
		BasePath:  getEnv("STORAGE_BASE_PATH", "sellhub"),
	})
	if err != nil {
		log.Warnf("存储服务初始化失败: %v", err)
		return nil
	}
	return storageSvc
}

// initAIService 初始化 AI 服务
func initAIService(callLogRepo repository.AICallLogRepository) *service.AIService {
	aiSvc, err := service.NewAIService(&service.AIConfig{
		ApiKey:     getEnv("GEMINI_API_KEY", ""),
		TextModel:  getEnv("GEMINI_TEXT_MODEL", ""),
		ImageModel: getEnv("GEMINI_IMAGE_MODEL", ""),
	}, callLogRepo)
	if err != nil {
		log.Warnf("AI 服务初始化失败，卡片生成将使用模板兜底: %v", err)
		return nil
	}
	return aiSvc
}

// ==================== 定时任务 ====================

// initTasks 初始化后台任务
func initTasks(deps *Dependencies) *task.TaskManager {
	tm := task.NewTaskManager(&task.TaskManagerDeps{
		CardRepo:    deps.Repos.Card,
		PartnerRepo: deps.Repos.Partner,

		PricingService: deps.Services.Pricing,
		MxikService:    deps.Services.Mxik,

		Updaters: []task.PriceUpdater{deps.Services.Uzum, deps.Services.Yandex},
	}, nil)

	tm.Start()
	return tm
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine) {
	port := getEnv("SERVER_PORT", "8080")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Infof("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Info("服务已退出")
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
