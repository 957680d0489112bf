package throttle

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	appErrors "github.com/noah-isme/edu-advisor-api/pkg/errors"
	"github.com/noah-isme/edu-advisor-api/pkg/response"
)

// IPRateLimiter manages per-IP token buckets.
type IPRateLimiter struct {
	limiters sync.Map
	rate     rate.Limit
	burst    int
	logger   *zap.Logger
}

// PerMinute converts a request budget into a rate.
func PerMinute(n int) rate.Limit {
	if n <= 0 {
		return rate.Inf
	}
	return rate.Limit(float64(n) / 60.0)
}

// NewIPRateLimiter creates a new IP-based rate limiter.
func NewIPRateLimiter(r rate.Limit, burst int, logger *zap.Logger) *IPRateLimiter {
	if burst <= 0 {
		burst = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IPRateLimiter{rate: r, burst: burst, logger: logger}
}

func (i *IPRateLimiter) limiter(ip string) *rate.Limiter {
	if v, ok := i.limiters.Load(ip); ok {
		return v.(*rate.Limiter)
	}
	v, _ := i.limiters.LoadOrStore(ip, rate.NewLimiter(i.rate, i.burst))
	return v.(*rate.Limiter)
}

// Middleware rejects requests beyond the per-IP budget with 429.
func (i *IPRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !i.limiter(ip).Allow() {
			i.logger.Warn("rate limit exceeded", zap.String("ip", ip), zap.String("path", c.Request.URL.Path))
			c.Header("Retry-After", strconv.Itoa(retryAfterSeconds(i.rate)))
			response.Error(c, appErrors.Clone(appErrors.ErrTooManyRequests, "rate limit exceeded"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RetryAfter formats a wait for the Retry-After header, rounding up.
func RetryAfter(wait time.Duration) string {
	secs := int((wait + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

func retryAfterSeconds(r rate.Limit) int {
	if r == rate.Inf || r <= 0 {
		return 1
	}
	secs := int(1/float64(r) + 0.999)
	if secs < 1 {
		return 1
	}
	return secs
}
