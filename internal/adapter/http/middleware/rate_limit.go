package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"

	"github.com/Diilaye/batimo/internal/infrastructure/cache"
	"github.com/Diilaye/batimo/internal/logger"
	"github.com/Diilaye/batimo/pkg"

	"github.com/gin-gonic/gin"
)

// Limiter is satisfied by both cache.MemoryLimiter and cache.RedisLimiter.
type Limiter interface {
	Allow(ctx context.Context, key string) (cache.Decision, error)
}

var errTooManyRequests = pkg.NewDomainErrorSimple("RATE_LIMITED", "Too many requests, retry later", http.StatusTooManyRequests)

// RateLimit throttles each route per client IP. A limiter failure lets the
// request through: the public forms stay reachable when Redis is down.
func RateLimit(limiter Limiter, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		decision, err := limiter.Allow(c.Request.Context(), c.FullPath()+"|"+ip)
		if err != nil {
			log.Warn("rate limiter unavailable, allowing request",
				logger.String("client_ip", ip), logger.String("path", c.FullPath()), logger.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		if !decision.Allowed {
			secs := int(math.Ceil(decision.RetryAfter.Seconds()))
			if secs < 1 {
				secs = 1
			}
			c.Header("Retry-After", strconv.Itoa(secs))
			log.Info("rate limited", logger.String("client_ip", ip), logger.String("path", c.FullPath()))
			c.AbortWithStatusJSON(errTooManyRequests.HTTPStatus, errTooManyRequests.ToHTTPError())
			return
		}
		c.Next()
	}
}
