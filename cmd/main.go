package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"catalog_admin_v1/internal/controller"
	"catalog_admin_v1/internal/model"
	"catalog_admin_v1/internal/repository"
	"catalog_admin_v1/internal/router"
	"catalog_admin_v1/internal/service"
	"catalog_admin_v1/internal/task"
	"catalog_admin_v1/pkg/database"
	"catalog_admin_v1/pkg/gateway"
)

func main() {
	// .env 不存在也没关系，走环境变量
	if err := godotenv.Load(); err == nil {
		log.Println("已加载 .env 配置")
	}

	// 1. 初始化依赖
	deps := initDependencies()

	// 2. 启动定时任务
	upkeep := task.NewUpkeepTask(deps.Gateway.Cache(), deps.Services.Session)
	upkeep.Start()
	defer upkeep.Stop()

	// 3. 初始化路由
	r := router.SetupRouter(deps.Controllers)

	// 4. 启动服务
	startServer(r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	Gateway     *gateway.Client
	Snapshots   repository.SnapshotRepository
	Services    *Services
	Controllers *router.Controllers
}

// Services 服务集合
type Services struct {
	Auth    *service.AuthService
	Product *service.ProductService
	Draft   *service.DraftService
	Session *service.SessionService
	Storage *service.StorageService
}

// ==================== 初始化函数 ====================

// initDependencies 初始化所有依赖
func initDependencies() *Dependencies {
	// -------- 令牌与会话 --------
	tokens := gateway.NewFileTokenStore(getEnv("TOKEN_FILE", "data/access_token"))
	sessionSvc := service.NewSessionService(tokens, sessionTimeout())

	// -------- 网关 --------
	gw := gateway.NewClient(gateway.Config{
		BaseURL: getEnv("CATALOG_API_BASE_URL", "http://localhost:3000"),
	}, tokens, sessionSvc.HandleUnauthorized)

	// -------- 快照仓库 --------
	snapshots := initSnapshotRepo()

	// -------- 业务服务 --------
	storageSvc := initStorageService()
	services := &Services{
		Auth:    service.NewAuthService(gw, tokens),
		Product: service.NewProductService(gw),
		Session: sessionSvc,
		Storage: storageSvc,
	}
	services.Draft = service.NewDraftService(snapshots, storageSvc, services.Product)

	// -------- Controller 层 --------
	controllers := &router.Controllers{
		Auth:    controller.NewAuthController(services.Auth),
		Product: controller.NewProductController(services.Product),
		Draft:   controller.NewDraftController(services.Draft, services.Storage),
		Session: controller.NewSessionController(services.Session),
	}

	return &Dependencies{
		Gateway:     gw,
		Snapshots:   snapshots,
		Services:    services,
		Controllers: controllers,
	}
}

// initSnapshotRepo 初始化快照仓库
// 配了 DSN 就落数据库（多实例部署），否则落本地文件
func initSnapshotRepo() repository.SnapshotRepository {
	dsn := getEnv("DATABASE_DSN", "")
	if dsn == "" {
		dir := getEnv("SNAPSHOT_DIR", "data/snapshots")
		log.Printf("[Init] 快照使用文件存储: %s", dir)
		return repository.NewFileSnapshotRepo(dir)
	}

	db, err := database.InitDB(dsn, getEnv("DB_VERBOSE", "") != "", &model.DraftSnapshot{})
	if err != nil {
		log.Fatalf("数据库初始化失败: %v", err)
	}
	return repository.NewGormSnapshotRepo(db)
}

// initStorageService 初始化图片存储
func initStorageService() *service.StorageService {
	storageSvc, err := service.NewStorageService(&service.StorageConfig{
		Provider:  getEnv("STORAGE_PROVIDER", "local"),
		Bucket:    getEnv("AWS_BUCKET", ""),
		Region:    getEnv("AWS_REGION", ""),
		AccessKey: getEnv("AWS_ACCESS_KEY_ID", ""),
		SecretKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		Endpoint:  getEnv("AWS_ENDPOINT", ""),
		CDNDomain: getEnv("AWS_CDN_DOMAIN", ""),
		BasePath:  getEnv("STORAGE_BASE_PATH", "data/uploads"),
		PublicURL: getEnv("STORAGE_PUBLIC_URL", "http://localhost:8080/uploads"),
	})
	if err != nil {
		log.Fatalf("存储服务初始化失败: %v", err)
	}
	return storageSvc
}

func sessionTimeout() time.Duration {
	if v := getEnv("SESSION_TIMEOUT", ""); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("警告: SESSION_TIMEOUT 格式不对，使用默认值")
	}
	return service.DefaultSessionTimeout
}

// ==================== 服务启动 ====================

// startServer 启动服务并等待退出信号
func startServer(r *gin.Engine) {
	port := getEnv("SERVER_PORT", "8080")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭，最多等待 10 秒
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
