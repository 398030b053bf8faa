// @title Modeva Storefront API
// @version 1.0
// @description Storefront browsing, filtering, cart and checkout API
// @host localhost:8081
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
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

	"github.com/Modeva-Ecommerce/modeva-storefront/cache"
	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/fixtures"
	"github.com/Modeva-Ecommerce/modeva-storefront/services"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const devJWTSecret = "dev-secret-key-change-in-production"

func init() {
	_ = godotenv.Load()
}

func main() {
	cfg := config.Load()

	logger, err := config.InitLogger(cfg.AppEnv)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg); err != nil {
		zap.L().Fatal("❌ server stopped", zap.Error(err))
	}
}

func run(cfg config.AppConfig) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := serverDeps{cfg: cfg}

	// Product source
	switch cfg.ProductSource {
	case config.SourcePostgres:
		dsn := cfg.DatabaseDSN()
		db, err := config.OpenGorm(dsn, cfg.IsProduction())
		if err != nil {
			return err
		}
		defer config.CloseGorm(db)

		pingCtx, cancel := config.WithTimeout()
		pool, err := config.OpenPgx(pingCtx, dsn)
		cancel()
		if err != nil {
			return err
		}
		defer pool.Close()

		deps.catalog = services.NewGormProvider(db)
		deps.health = append(deps.health, healthCheck{"postgres", pool.Ping})
	default:
		products, err := fixtures.Products()
		if err != nil {
			return err
		}
		deps.catalog = services.NewMemoryProvider(products)
		zap.L().Info("✅ serving fixture catalog", zap.Int("products", len(products)))
	}

	// Redis connection
	var rdb *redis.Client
	if cfg.UsesRedis() {
		redisCtx, cancel := config.WithTimeout()
		client, err := config.ConnectRedis(redisCtx, cfg.RedisURL)
		cancel()
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()
		rdb = client
		deps.redis = rdb
		deps.health = append(deps.health, healthCheck{"redis", func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}})
	}

	var counts cache.CountCache = cache.NewMemoryCountCache()
	if cfg.CountCacheBackend == config.CacheRedis {
		counts = cache.NewRedisCountCache(rdb)
	}

	// ✅ Initialize visitor tokens
	secret := cfg.JWTSecret
	if secret == "" {
		if cfg.IsProduction() {
			return errors.New("JWT_SECRET environment variable not set")
		}
		zap.L().Warn("⚠️ JWT_SECRET not set, using development secret")
		secret = devJWTSecret
	}
	tokens, err := services.NewTokenService(secret, cfg.TokenTTL)
	if err != nil {
		return err
	}
	zap.L().Info("✅ Token service initialized")

	deps.tokens = tokens
	deps.products = services.NewCatalogService(deps.catalog, counts)
	deps.sessions = services.NewSessionService(deps.products)
	deps.carts = services.NewCartService(deps.catalog)
	deps.metadata = cache.NewMetadataCache(cfg.MetadataTTL)

	go pruneIdle(ctx, deps.sessions, deps.carts, cfg.SessionIdleTTL)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("🚀 Server is running", zap.String("url", "http://localhost:"+cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zap.L().Info("🛑 Shutting down")
	shutdownCtx, cancel := config.WithCustomTimeout(15 * time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// pruneIdle drops idle sessions and carts every quarter of maxIdle until ctx
// is done.
func pruneIdle(ctx context.Context, sessions *services.SessionService, carts *services.CartService, maxIdle time.Duration) {
	ticker := time.NewTicker(maxIdle / 4)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s := sessions.PruneIdle(maxIdle)
			c := carts.PruneIdle(maxIdle)
			if s > 0 || c > 0 {
				zap.L().Info("pruned idle visitors", zap.Int("sessions", s), zap.Int("carts", c))
			}
		}
	}
}
