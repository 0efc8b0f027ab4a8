package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"fitbooks-backend/internal/config"
	infraCache "fitbooks-backend/internal/infrastructure/cache"
	"fitbooks-backend/internal/infrastructure/database"
	"fitbooks-backend/internal/infrastructure/storage"
	"fitbooks-backend/pkg/cache"

	productHandler "fitbooks-backend/internal/domains/product/handler"
	productRepo "fitbooks-backend/internal/domains/product/repository"
	productService "fitbooks-backend/internal/domains/product/service"
	reviewHandler "fitbooks-backend/internal/domains/review/handler"
	reviewRepo "fitbooks-backend/internal/domains/review/repository"
	reviewService "fitbooks-backend/internal/domains/review/service"
	"fitbooks-backend/internal/domains/review/tagging"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton built once at startup, in dependency order: config,
// infrastructure, repositories, services, handlers.
type Container struct {
	// =====================================================
	// INFRASTRUCTURE
	// =====================================================
	Config       *config.Config
	DB           *database.PostgresDB
	Cache        cache.Cache
	ImageService *storage.ImageService // nil when object storage is unavailable

	// =====================================================
	// REPOSITORIES
	// =====================================================
	ProductRepo productRepo.ProductRepository
	ReviewRepo  reviewRepo.ReviewRepository

	// =====================================================
	// SERVICES
	// =====================================================
	ProductService productService.ServiceInterface
	ReviewService  reviewService.ServiceInterface

	// =====================================================
	// HANDLERS
	// =====================================================
	ProductHandler *productHandler.ProductHandler
	ReviewHandler  *reviewHandler.ReviewHandler
}

func NewContainer() (*Container, error) {
	c := &Container{}

	// Step 1: Configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("environment", cfg.App.Environment).Msg("Config loaded")

	// Step 2: Database (schema + seed data included; the API is not usable
	// without it, so failure here is fatal)
	if err := c.initDatabase(); err != nil {
		return nil, err
	}

	// Step 3: Redis. Non-critical: the popular-tags cache degrades to
	// recomputing on every request.
	c.initCache()

	// Step 4: Object storage. Non-critical: reviews without images still work.
	c.initStorage()

	// Step 5: Repositories
	c.ProductRepo = productRepo.NewPostgresProductRepository(c.DB.Pool)
	c.ReviewRepo = reviewRepo.NewPostgresReviewRepository(c.DB.Pool)

	// Step 6: Services
	c.ProductService = productService.NewProductService(c.ProductRepo)
	c.ReviewService = reviewService.NewReviewService(
		c.ReviewRepo,
		c.ProductRepo,
		tagging.NewExtractor(tagging.DefaultVocabulary),
		c.Cache,
	)

	// Step 7: Handlers
	c.ReviewHandler = reviewHandler.NewReviewHandler(
		c.ReviewService,
		c.ImageService,
		cfg.Upload.MaxSizeBytes,
	)
	c.ProductHandler = productHandler.NewProductHandler(c.ProductService, c.ReviewService)

	log.Info().Msg("Container initialized")
	return c, nil
}

func (c *Container) initDatabase() error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.InitSchema(ctx); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	if err := db.Seed(ctx); err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}

	c.DB = db
	return nil
}

func (c *Container) initCache() {
	redisCache := infraCache.NewRedisCache(
		c.Config.Redis.Host,
		c.Config.Redis.Password,
		c.Config.Redis.DB,
	)

	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("Redis connection failed (non-critical)")
		} else {
			log.Info().Msg("Redis connected")
		}
	}

	c.Cache = redisCache
}

func (c *Container) initStorage() {
	minioStorage, err := storage.NewMinIOStorage(c.Config.MinIO)
	if err != nil {
		log.Warn().Err(err).Msg("Object storage unavailable (non-critical), image uploads disabled")
		return
	}

	processor := storage.NewImageProcessor(
		c.Config.Upload.MaxSizeBytes,
		c.Config.Upload.MaxDimension,
	)
	c.ImageService = storage.NewImageService(minioStorage, processor)
	log.Info().Str("bucket", c.Config.MinIO.Bucket).Msg("Object storage connected")
}

// Cleanup releases infrastructure resources during graceful shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
		log.Info().Msg("Database connections closed")
	}

	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				log.Warn().Err(err).Msg("Failed to close Redis")
			}
		}
	}
}
