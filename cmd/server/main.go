package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/store-rating/internal/cache"
	"github.com/iliyamo/store-rating/internal/config"
	"github.com/iliyamo/store-rating/internal/database"
	"github.com/iliyamo/store-rating/internal/handler"
	"github.com/iliyamo/store-rating/internal/logger"
	"github.com/iliyamo/store-rating/internal/middleware"
	"github.com/iliyamo/store-rating/internal/queue"
	"github.com/iliyamo/store-rating/internal/repository"
	"github.com/iliyamo/store-rating/internal/router"
	"github.com/iliyamo/store-rating/internal/service"
)

// Usage:
//
//	server            run the HTTP API
//	server migrate    apply pending migrations and exit
//	server status     print migration status and exit
func main() {
	config.LoadDotEnv()
	cfg := config.Load()
	log := logger.New(cfg)

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	if len(os.Args) > 1 {
		ctx := context.Background()
		switch os.Args[1] {
		case "migrate":
			if err := database.Migrate(ctx, db); err != nil {
				log.Fatal().Err(err).Msg("migrate failed")
			}
			log.Info().Msg("migrations applied")
		case "status":
			if err := database.MigrationStatus(ctx, db); err != nil {
				log.Fatal().Err(err).Msg("migration status failed")
			}
		default:
			log.Fatal().Str("command", os.Args[1]).Msg("unknown command")
		}
		return
	}

	if cfg.DBAutoMigrate {
		if err := database.Migrate(context.Background(), db); err != nil {
			log.Fatal().Err(err).Msg("auto-migrate failed")
		}
	}

	if err := run(cfg, db, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg config.Config, db *sql.DB, log zerolog.Logger) error {
	rdb, err := config.NewRedisClient(config.LoadRedisConfig())
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable; rate limiting and response cache disabled")
	} else {
		defer rdb.Close()
	}

	cacheCfg := config.LoadCacheConfig()
	queueCfg := config.LoadQueueConfig()
	gen := cache.NewGeneration(rdb, cacheCfg.GenerationKey)
	publisher := queue.NewPublisher(queueCfg, log)

	users := repository.NewUserRepo(db)
	stores := repository.NewStoreRepo(db)
	ratings := repository.NewRatingRepo(db)
	tokens := repository.NewTokenRepo(db)

	ratingSvc := service.NewRatingService(ratings, stores, publisher, gen, log)
	listingSvc := service.NewListingService(stores, users)
	storeSvc := service.NewStoreService(stores, users, gen, log)
	adminSvc := service.NewAdminService(users, users, stores, ratings, cfg.BcryptCost, gen, log)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewRequestValidator()
	e.Use(
		middleware.RequestLogging(log),
		middleware.Recover(log),
		middleware.Metrics(),
		middleware.CORS(cfg.CORSOrigins),
	)

	guards := router.Guards{
		JWTSecret: cfg.JWTSecret,
		RateLimit: middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, log),
		Cache:     middleware.NewRedisCache(cacheCfg, rdb, gen, log),
	}
	router.RegisterRoutes(e, db)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens, gen), guards)
	router.RegisterStores(e, handler.NewStoreHandler(storeSvc, listingSvc), guards)
	router.RegisterRatings(e, handler.NewRatingHandler(ratingSvc), guards)
	router.RegisterOwner(e, handler.NewOwnerHandler(ratingSvc), guards)
	router.RegisterAdmin(e, handler.NewAdminHandler(adminSvc, listingSvc), guards)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if queueCfg.ConsumerEnabled {
		go func() {
			if err := queue.StartRatingConsumer(ctx, queueCfg, log); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("rating consumer stopped")
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
