package main

import (
	"context"
	"net/http"
	"time"

	"github.com/Modeva-Ecommerce/modeva-storefront/cache"
	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/controllers/ecommerce/cart_controller"
	"github.com/Modeva-Ecommerce/modeva-storefront/controllers/ecommerce/filter_controller"
	"github.com/Modeva-Ecommerce/modeva-storefront/controllers/ecommerce/product_controller"
	"github.com/Modeva-Ecommerce/modeva-storefront/controllers/ecommerce/session_controller"
	_ "github.com/Modeva-Ecommerce/modeva-storefront/docs"
	"github.com/Modeva-Ecommerce/modeva-storefront/middleware"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/routes/ecommerce_routes"
	"github.com/Modeva-Ecommerce/modeva-storefront/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type healthCheck struct {
	name string
	ping func(context.Context) error
}

// serverDeps is everything the router needs, built once in run.
type serverDeps struct {
	cfg      config.AppConfig
	catalog  services.Catalog
	products *services.CatalogService
	sessions *services.SessionService
	carts    *services.CartService
	tokens   *services.TokenService
	metadata *cache.MetadataCache
	redis    *redis.Client
	health   []healthCheck
}

func newRouter(deps serverDeps) *gin.Engine {
	if deps.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	models.RegisterJSONFieldNames()

	corsCfg := cors.Config{
		AllowOrigins:     deps.cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-CSRF-Token", "X-Requested-With", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(), cors.New(corsCfg))

	router.GET("/healthz", healthHandler(deps.health))

	// Write endpoints are rate limited when a limit is configured
	var limit []gin.HandlerFunc
	if deps.redis != nil && deps.cfg.RateLimitRequests > 0 {
		limit = append(limit, middleware.RateLimiter(deps.redis, deps.cfg.RateLimitRequests, deps.cfg.RateLimitWindow))
	}
	visitorAuth := middleware.VisitorAuth(deps.tokens)

	// Register API routes
	api := router.Group("/api/v1")
	ecommerce_routes.SetupStorefrontRoutes(api,
		product_controller.New(deps.products),
		filter_controller.New(deps.catalog, deps.metadata),
	)
	ecommerce_routes.SetupSessionRoutes(api,
		session_controller.New(deps.sessions, deps.tokens, deps.cfg.IsProduction()),
		visitorAuth, limit...,
	)
	ecommerce_routes.SetupCartRoutes(api, cart_controller.New(deps.carts), visitorAuth, limit...)

	// Swagger docs
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}

// healthHandler pings every backing service.
func healthHandler(checks []healthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := gin.H{}
		healthy := true
		for _, check := range checks {
			if err := check.ping(ctx); err != nil {
				status[check.name] = err.Error()
				healthy = false
				continue
			}
			status[check.name] = "ok"
		}

		if !healthy {
			resp := models.ErrorResponse(c, "Unhealthy")
			resp.Data = status
			c.JSON(http.StatusServiceUnavailable, resp)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(c, "OK", status))
	}
}
