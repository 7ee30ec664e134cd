package main

import (
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	"github.com/tiagofoil/valuerank/internal/auth"
	rediscache "github.com/tiagofoil/valuerank/internal/cache/redis"
	"github.com/tiagofoil/valuerank/internal/config"
	"github.com/tiagofoil/valuerank/internal/domain"
	"github.com/tiagofoil/valuerank/internal/http"
	"github.com/tiagofoil/valuerank/internal/http/middleware"
	"github.com/tiagofoil/valuerank/internal/observability"
	"github.com/tiagofoil/valuerank/internal/repository"
	"github.com/tiagofoil/valuerank/internal/store/sqlite"
)

func main() {
	container := buildContainer()

	err := container.Invoke(func(server *http.Server) {
		if err := server.Start(); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

func buildContainer() *dig.Container {
	container := dig.New()

	// Configuration
	if err := container.Provide(config.Load); err != nil {
		log.Fatalf("Failed to provide config: %v", err)
	}
	if err := container.Provide(config.ParseDependenciesConfig); err != nil {
		log.Fatalf("Failed to provide config dependencies: %v", err)
	}

	// Observability
	if err := container.Provide(observability.InitLogger); err != nil {
		log.Fatalf("Failed to provide logger: %v", err)
	}

	// Catalog database. A missing or broken database is not fatal: the
	// repository degrades to its static snapshot.
	if err := container.Provide(func(cfg *config.DatabaseConfig) *sqlite.Store {
		store, err := sqlite.Open(cfg.Path)
		if err != nil {
			log.Printf("database unavailable, running on fallback snapshot: %v", err)
			return nil
		}
		if err := store.Migrate(); err != nil {
			log.Printf("database migration failed, running on fallback snapshot: %v", err)
			store.Close()
			return nil
		}
		return store
	}); err != nil {
		log.Fatalf("Failed to provide store: %v", err)
	}

	// Model repository with the degrading fetch chain
	if err := container.Provide(func(store *sqlite.Store, cfg *config.DatabaseConfig) domain.ModelSource {
		var dbStore repository.Store
		if store != nil {
			dbStore = store
		}
		return repository.New(
			dbStore,
			repository.FallbackModels(),
			repository.WithTierTimeout(time.Duration(cfg.TierTimeout)*time.Second),
		)
	}); err != nil {
		log.Fatalf("Failed to provide repository: %v", err)
	}

	// Write surface (admin + scraper); closed when the database is down
	if err := container.Provide(func(store *sqlite.Store) domain.ModelWriter {
		if store == nil {
			return nil
		}
		return store
	}); err != nil {
		log.Fatalf("Failed to provide model writer: %v", err)
	}

	// Ranking cache, enabled only when Redis is configured
	if err := container.Provide(func(cfg *config.RedisConfig) domain.RankingCache {
		if cfg.Addr == "" {
			return nil
		}
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		return rediscache.NewRankingCache(client)
	}); err != nil {
		log.Fatalf("Failed to provide ranking cache: %v", err)
	}

	// Domain Services
	if err := container.Provide(domain.NewRankingService); err != nil {
		log.Fatalf("Failed to provide ranking service: %v", err)
	}

	// Auth
	if err := container.Provide(auth.NewVerifier); err != nil {
		log.Fatalf("Failed to provide auth verifier: %v", err)
	}

	// HTTP Layer
	if err := container.Provide(middleware.BuildMiddlewareChain); err != nil {
		log.Fatalf("Failed to provide middleware chain: %v", err)
	}
	if err := container.Provide(http.NewHandler); err != nil {
		log.Fatalf("Failed to provide HTTP handler: %v", err)
	}
	if err := container.Provide(http.NewServer); err != nil {
		log.Fatalf("Failed to provide HTTP server: %v", err)
	}

	return container
}
