package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"library-catalog/internal/config"
	infraCache "library-catalog/internal/infrastructure/cache"
	"library-catalog/internal/infrastructure/database"
	"library-catalog/internal/infrastructure/storage"
	"library-catalog/pkg/cache"
	"library-catalog/pkg/jwt"

	"library-catalog/internal/domains/apikey"

	bookHandler "library-catalog/internal/domains/book/handler"
	bookRepo "library-catalog/internal/domains/book/repository"
	bookService "library-catalog/internal/domains/book/service"

	"library-catalog/internal/domains/user"
	userHandler "library-catalog/internal/domains/user/handler"
	userRepo "library-catalog/internal/domains/user/repository"
	userService "library-catalog/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application
// Lifecycle: mọi field là singleton trong suốt app lifetime
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config     *config.Config
	DB         *database.PostgresDB
	Redis      *infraCache.RedisClient
	Cache      cache.Cache // session revocation
	Storage    *storage.MinIOStorage
	JWTManager *jwt.Manager

	// ========================================
	// REPOSITORY LAYER (DATA ACCESS)
	// ========================================
	BookRepo   bookRepo.RepositoryInterface
	APIKeyRepo apikey.Repository
	UserRepo   user.Repository

	// ========================================
	// SERVICE LAYER (BUSINESS LOGIC)
	// ========================================
	CoverService     bookService.CoverService
	BookService      bookService.ServiceInterface
	APIKeyService    apikey.Service
	IdentityProvider user.IdentityProvider

	// ========================================
	// HANDLER LAYER (HTTP)
	// ========================================
	BookHandler *bookHandler.Handler
	UserHandler *userHandler.UserHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer tạo và initialize toàn bộ dependency graph
//
// Thứ tự initialization:
// 1. Config
// 2. Infrastructure (DB, Redis, MinIO)
// 3. Repositories
// 4. Services
// 5. Handlers
func NewContainer() (*Container, error) {
	log.Info().Msg("initializing DI container")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("env", cfg.App.Environment).Msg("config loaded")

	// ========================================
	// STEP 2: INITIALIZE INFRASTRUCTURE
	// ========================================
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := c.initInfrastructure(ctx); err != nil {
		c.Cleanup()
		return nil, err
	}

	// ========================================
	// STEP 3-5: REPOSITORIES → SERVICES → HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("DI container initialized")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initInfrastructure(ctx context.Context) error {
	// ----------------------------------------
	// DATABASE
	// ----------------------------------------
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	// ----------------------------------------
	// REDIS
	// ----------------------------------------
	// Redis lỗi lúc start không chặn app: login vẫn chạy,
	// verify session sẽ trả về 502 cho tới khi Redis lên lại
	c.Redis = infraCache.NewRedisClient(c.Config.Redis)
	if err := c.Redis.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("redis connection failed (non-critical)")
	}
	c.Cache = infraCache.NewRedisCache(c.Redis.Client, "catalog:")

	// ----------------------------------------
	// OBJECT STORAGE
	// ----------------------------------------
	store, err := storage.NewMinIOStorage(ctx, c.Config.MinIO)
	if err != nil {
		return fmt.Errorf("failed to init object storage: %w", err)
	}
	c.Storage = store

	c.JWTManager = jwt.NewManager(
		c.Config.JWT.Secret,
		time.Duration(c.Config.JWT.SessionExpiry)*time.Minute,
	)
	return nil
}

// initRepositories khởi tạo tất cả repositories
func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.BookRepo = bookRepo.NewPostgresRepository(pool)
	c.APIKeyRepo = apikey.NewPostgresRepository(pool)
	c.UserRepo = userRepo.NewPostgresRepository(pool)
}

// initServices khởi tạo tất cả services
func (c *Container) initServices() {
	catalog := c.Config.Catalog

	c.CoverService = bookService.NewCoverService(
		c.Storage,
		storage.NewImageProcessor(catalog.CoverMaxEdge, catalog.CoverMaxPixels),
		bookService.CoverConfig{
			DefaultURL:     catalog.DefaultCoverImg,
			DownloadDir:    catalog.DownloadDir,
			MaxUploadBytes: catalog.MaxUploadBytes,
		},
	)
	c.BookService = bookService.NewBookService(c.BookRepo, c.CoverService)
	c.APIKeyService = apikey.NewService(c.APIKeyRepo)
	c.IdentityProvider = userService.NewLocalProvider(c.UserRepo, c.JWTManager, c.Cache)
}

// initHandlers khởi tạo tất cả HTTP handlers
func (c *Container) initHandlers() {
	c.BookHandler = bookHandler.NewHandler(c.BookService)
	c.UserHandler = userHandler.NewUserHandler(c.IdentityProvider, c.APIKeyService)
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("cleaning up container resources")

	if c.DB != nil {
		c.DB.Close()
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis")
		}
	}
}
