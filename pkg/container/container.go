package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"library-backend/internal/config"
	infraCache "library-backend/internal/infrastructure/cache"
	"library-backend/internal/infrastructure/database"
	"library-backend/pkg/cache"

	bookHandler "library-backend/internal/domains/book/handler"
	bookRepo "library-backend/internal/domains/book/repository"
	bookService "library-backend/internal/domains/book/service"

	readerHandler "library-backend/internal/domains/reader/handler"
	readerRepo "library-backend/internal/domains/reader/repository"
	readerService "library-backend/internal/domains/reader/service"

	loanHandler "library-backend/internal/domains/loan/handler"
	loanRepo "library-backend/internal/domains/loan/repository"
	loanService "library-backend/internal/domains/loan/service"

	"library-backend/internal/domains/stats"
	webHandler "library-backend/internal/web/handler"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton built once at startup, in dependency order: config, then
// infrastructure, then repositories, services, and handlers.
type Container struct {
	Config *config.Config
	DB     *database.PostgresDB
	Cache  cache.Cache

	BookRepo   bookRepo.RepositoryInterface
	ReaderRepo readerRepo.RepositoryInterface
	LoanRepo   loanRepo.RepositoryInterface
	StatsRepo  stats.Repository

	BookService   bookService.ServiceInterface
	ReaderService readerService.ServiceInterface
	LoanService   loanService.ServiceInterface
	StatsService  stats.Service

	BookHandler   *bookHandler.Handler
	ReaderHandler *readerHandler.Handler
	LoanHandler   *loanHandler.Handler
	StatsHandler  *stats.Handler
	Pages         *webHandler.Pages
}

func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("environment", cfg.App.Environment).Msg("Configuration loaded")

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	// Redis is optional: a failed connection degrades the dashboard cache,
	// nothing else.
	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if err := redisCache.Connect(context.Background()); err != nil {
		log.Warn().Err(err).Msg("Redis connection failed, continuing without cache")
	}
	c.Cache = redisCache

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("Container initialized")
	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.BookRepo = bookRepo.NewPostgresRepository(pool)
	c.ReaderRepo = readerRepo.NewPostgresRepository(pool)
	c.LoanRepo = loanRepo.NewPostgresRepository(pool)
	c.StatsRepo = stats.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.BookService = bookService.NewService(c.BookRepo, c.Cache)
	c.ReaderService = readerService.NewService(c.ReaderRepo, c.Cache)
	c.LoanService = loanService.NewService(c.LoanRepo, c.Cache)
	c.StatsService = stats.NewService(c.StatsRepo, c.Cache)
}

func (c *Container) initHandlers() {
	c.BookHandler = bookHandler.NewHandler(c.BookService)
	c.ReaderHandler = readerHandler.NewHandler(c.ReaderService)
	c.LoanHandler = loanHandler.NewHandler(c.LoanService)
	c.StatsHandler = stats.NewHandler(c.StatsService)
	c.Pages = webHandler.NewPages(c.BookService, c.ReaderService, c.StatsService)
}

// Cleanup releases infrastructure resources. Called from graceful shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close database")
		}
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis")
		}
	}

	log.Info().Msg("Container cleanup completed")
}
