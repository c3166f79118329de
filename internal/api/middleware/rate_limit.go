package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/princeprakhar/device-catalog/internal/config"
	"github.com/princeprakhar/device-catalog/internal/utils"
	"github.com/princeprakhar/device-catalog/pkg/logger"
)

// RateLimitMiddleware limits each client to cfg.RateLimitRPS requests per
// second and path. Counters live in Redis when a client is given, so that
// several instances share them.
func RateLimitMiddleware(cfg *config.Config, redisClient *redis.Client) gin.HandlerFunc {
	rate := limiter.Rate{
		Period: time.Second,
		Limit:  int64(cfg.RateLimitRPS),
	}

	var store limiter.Store = memory.NewStore()
	if redisClient != nil {
		shared, err := sredis.NewStoreWithOptions(redisClient, limiter.StoreOptions{
			Prefix:   "catalog:ratelimit",
			MaxRetry: 3,
		})
		if err != nil {
			logger.WithFields(map[string]interface{}{"error": err.Error()}).Warn("Redis rate limit store unavailable, using memory")
		} else {
			store = shared
		}
	}
	instance := limiter.New(store, rate, limiter.WithTrustForwardHeader(true))

	return mgin.NewMiddleware(instance,
		mgin.WithKeyGetter(func(c *gin.Context) string {
			return fmt.Sprintf("%s:%s", c.ClientIP(), c.Request.URL.Path)
		}),
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			utils.SendError(c, http.StatusTooManyRequests, "Too many requests", nil)
			c.Abort()
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			utils.SendInternalError(c, "Rate limiter failure", err)
			c.Abort()
		}),
	)
}
