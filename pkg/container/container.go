package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/Kingsley6145/gamebridge-admin/internal/config"
	courseHandler "github.com/Kingsley6145/gamebridge-admin/internal/domains/course/handler"
	courseRepo "github.com/Kingsley6145/gamebridge-admin/internal/domains/course/repository"
	courseService "github.com/Kingsley6145/gamebridge-admin/internal/domains/course/service"
	"github.com/Kingsley6145/gamebridge-admin/internal/domains/media"
	mediaHandler "github.com/Kingsley6145/gamebridge-admin/internal/domains/media/handler"
	userHandler "github.com/Kingsley6145/gamebridge-admin/internal/domains/user/handler"
	"github.com/Kingsley6145/gamebridge-admin/internal/infrastructure/cache"
	"github.com/Kingsley6145/gamebridge-admin/internal/infrastructure/database"
	"github.com/Kingsley6145/gamebridge-admin/internal/infrastructure/storage"
	"github.com/Kingsley6145/gamebridge-admin/pkg/jwt"
	"github.com/Kingsley6145/gamebridge-admin/pkg/logger"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton built once at startup, in dependency order: config, then
// infrastructure, then stores, then services, then handlers.
type Container struct {
	Config     *config.Config
	JWTManager *jwt.Manager

	// Infrastructure. Redis or Postgres is nil depending on STORE_MODE.
	Redis       *cache.RedisClient
	DB          *database.PostgresDB
	Storage     *storage.MinIOStorage
	AsynqClient *asynq.Client

	// Domain layer.
	CourseStore  courseRepo.Store
	MediaService *media.Service
	Synchronizer *courseService.Synchronizer

	// HTTP layer.
	AuthHandler   *userHandler.AuthHandler
	CourseHandler *courseHandler.Handler
	NestedHandler *courseHandler.NestedHandler
	BulkHandler   *courseHandler.BulkHandler
	MediaHandler  *mediaHandler.MediaHandler
}

func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Info("config loaded", map[string]interface{}{
		"environment": cfg.App.Environment,
		"store_mode":  cfg.Store.Mode,
	})

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := c.initStore(ctx); err != nil {
		return nil, err
	}

	minioStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to init object storage: %w", err)
	}
	c.Storage = minioStorage
	logger.Info("object storage ready", map[string]interface{}{"bucket": cfg.MinIO.Bucket})

	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	imageProcessor := storage.NewImageProcessor(cfg.Upload.MaxImageBytes, cfg.Upload.CoverWidth, cfg.Upload.CoverHeight)
	c.MediaService = media.NewService(minioStorage, imageProcessor, cfg.Upload, cfg.Store.Prefix)

	c.Synchronizer = courseService.NewSynchronizer(c.CourseStore, c.MediaService, c.AsynqClient)

	c.AuthHandler = userHandler.NewAuthHandler(cfg.Admin, c.JWTManager)
	c.CourseHandler = courseHandler.NewHandler(c.Synchronizer)
	c.NestedHandler = courseHandler.NewNestedHandler(c.Synchronizer, c.MediaService)
	c.BulkHandler = courseHandler.NewBulkHandler(c.Synchronizer)
	c.MediaHandler = mediaHandler.NewMediaHandler(c.MediaService)

	return c, nil
}

// initStore builds the course store for the configured mode. Realtime
// keeps a Redis connection; postgres keeps a pgx pool and makes sure
// the schema exists.
func (c *Container) initStore(ctx context.Context) error {
	switch c.Config.Store.Mode {
	case "realtime":
		redisClient := cache.NewRedisClient(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
		if err := redisClient.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		c.Redis = redisClient
		c.CourseStore = courseRepo.NewRealtimeStore(redisClient.Client, c.Config.Store.Prefix)

	case "postgres":
		db := database.NewPostgresDB(c.Config.Postgres)
		if err := db.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		store := courseRepo.NewPostgresStore(db.Pool)
		if err := store.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
		c.DB = db
		c.CourseStore = store

	default:
		return fmt.Errorf("unknown store mode %q", c.Config.Store.Mode)
	}

	return nil
}

// HealthCheck pings whichever backends this mode holds open.
func (c *Container) HealthCheck(ctx context.Context) error {
	if c.Redis != nil {
		if err := c.Redis.HealthCheck(ctx); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	if c.DB != nil {
		if err := c.DB.HealthCheck(ctx); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	}
	return nil
}

// Close releases every held connection. Safe to call once at shutdown.
func (c *Container) Close() {
	if c.Synchronizer != nil {
		c.Synchronizer.Stop()
	}
	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			logger.Warn("failed to close asynq client", err)
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logger.Warn("failed to close redis", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
