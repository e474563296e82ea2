package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	sessionUsecases "dav/internal/application/session/usecases"
	"dav/internal/application/tableobject/services"
	"dav/internal/infrastructure/cache"
	"dav/internal/infrastructure/config"
	"dav/internal/infrastructure/database"
	"dav/internal/infrastructure/repository"
	"dav/internal/shared/logger"
)

const (
	drainInterval = 1 * time.Minute
	sweepInterval = 24 * time.Hour
)

// The worker replays queued cache operations so the Redis mirror converges
// after outages, and sweeps sessions that have gone stale.
func main() {
	env := "development"
	if len(os.Args) > 1 {
		env = os.Args[1]
	}
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	log := logger.NewLogger()
	log.Infow("starting cache replay worker", "environment", env)

	if err := database.Init(&cfg.Database); err != nil {
		log.Fatalw("failed to initialize database", "error", err)
	}
	defer database.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalw("failed to connect to redis", "error", err)
	}
	log.Infow("redis connection established", "address", cfg.Redis.GetAddr())

	objectRepo := repository.NewTableObjectRepository(database.Get())
	propertyTypeRepo := repository.NewTablePropertyTypeRepository(database.Get())
	tableEtagRepo := repository.NewTableEtagRepository(database.Get())
	pendingRepo := repository.NewPendingCacheOperationRepository(database.Get())
	sessionRepo := repository.NewSessionRepository(database.Get())

	objectCache := cache.NewTableObjectCache(redisClient)
	propagator := services.NewChangePropagator(objectRepo, propertyTypeRepo, tableEtagRepo, pendingRepo, objectCache, log)
	sweepSessions := sessionUsecases.NewSweepStaleSessionsUseCase(sessionRepo, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	drainTicker := time.NewTicker(drainInterval)
	defer drainTicker.Stop()

	sweepTicker := time.NewTicker(sweepInterval)
	defer sweepTicker.Stop()

	log.Infow("running initial cache drain")
	if err := propagator.DrainPendingOperations(ctx); err != nil {
		log.Errorw("initial cache drain failed", "error", err)
	}

	log.Infow("worker started", "drain_interval", drainInterval, "sweep_interval", sweepInterval)

	for {
		select {
		case <-drainTicker.C:
			if err := propagator.DrainPendingOperations(ctx); err != nil {
				log.Errorw("cache drain failed", "error", err)
			}

		case <-sweepTicker.C:
			if err := sweepSessions.Execute(ctx); err != nil {
				log.Errorw("stale session sweep failed", "error", err)
			}

		case sig := <-sigChan:
			log.Infow("received signal, shutting down", "signal", sig)

			// One last drain so a clean shutdown leaves no queued work behind.
			drainCtx, drainCancel := context.WithTimeout(context.Background(), 30*time.Second)
			if err := propagator.DrainPendingOperations(drainCtx); err != nil {
				log.Errorw("final cache drain failed", "error", err)
			}
			drainCancel()

			log.Infow("worker stopped")
			return
		}
	}
}
