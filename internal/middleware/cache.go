package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// CacheHeader reports whether a response was served from the cache.
	CacheHeader = "X-Cache"
	// TimingHeader carries the handler processing time in milliseconds.
	TimingHeader = "X-Response-Time-Ms"

	requestStartKey = "request_start"
)

// WithResponseMeta records when the request started so handlers can report
// processing time before the body is written.
func WithResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(requestStartKey, time.Now())
		c.Next()
	}
}

// SetCacheHit annotates the response with cache and timing headers. Call it
// before writing the body.
func SetCacheHit(c *gin.Context, hit bool) {
	if c == nil {
		return
	}
	value := "MISS"
	if hit {
		value = "HIT"
	}
	c.Header(CacheHeader, value)
	if started, ok := c.Get(requestStartKey); ok {
		if t, ok := started.(time.Time); ok {
			c.Header(TimingHeader, strconv.FormatInt(time.Since(t).Milliseconds(), 10))
		}
	}
}
