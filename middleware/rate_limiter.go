package middleware

import (
	"net/http"
	"time"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimiter allows maxRequests per window per client IP, method and route.
// Redis failures let the request through.
func RateLimiter(client *redis.Client, maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		ip := c.ClientIP()
		endpoint := c.FullPath() // /api/v1/store/cart/items, /api/v1/store/cart/items/:productId, etc.
		method := c.Request.Method

		// Key is per-IP, per-method, per-endpoint
		key := "rl:" + ip + ":" + method + ":" + endpoint

		pipe := client.TxPipeline()
		incr := pipe.Incr(ctx, key)
		ttl := pipe.TTL(ctx, key)
		if _, err := pipe.Exec(ctx); err != nil {
			zap.L().Warn("rate limiter unavailable", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}
		count := incr.Val()

		// A key without expiry is a new window, or one whose expiry failed
		// to set earlier. Either way it gets one now.
		resetIn := ttl.Val()
		if resetIn < 0 {
			resetIn = window
			if err := client.Expire(ctx, key, window).Err(); err != nil {
				zap.L().Warn("rate limiter expiry failed, retrying on next request", zap.String("key", key), zap.Error(err))
			}
		}
		resetAt := time.Now().Add(resetIn).Truncate(time.Second)

		remaining := max(maxRequests-int(count), 0)
		resetInSeconds := max(int(resetIn.Seconds()), 0)

		rate := &models.RateLimiter{
			Limit:          maxRequests,
			Remaining:      remaining,
			ResetAt:        resetAt,
			ResetInSeconds: resetInSeconds,
		}

		// Store in context for controllers
		c.Set("rateLimiter", rate)

		if int(count) > maxRequests {
			c.JSON(http.StatusTooManyRequests, models.ApiResponse{
				Message: "Too many requests",
				Error:   true,
				Rate:    rate,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
