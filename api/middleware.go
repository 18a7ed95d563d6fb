package api

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/Domenick1991/airplanemode/internal/logging"
	"github.com/Domenick1991/airplanemode/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const requestIDHeader = "X-Request-ID"

// RequestID propagates the caller's request id or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// Metrics records request counters, latency and in-flight gauges per route.
func Metrics(reg *metrics.MetricsRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		reg.HTTPRequestsInFlight.WithLabelValues(route).Inc()
		defer reg.HTTPRequestsInFlight.WithLabelValues(route).Dec()

		start := time.Now()
		c.Next()
		duration := time.Since(start)

		status := c.Writer.Status()
		reg.HTTPRequestsTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(status)).Inc()
		reg.HTTPRequestDuration.WithLabelValues(route, c.Request.Method).Observe(duration.Seconds())

		logging.Info("HTTP request completed",
			"request_id", c.GetString("request_id"),
			"method", c.Request.Method,
			"endpoint", route,
			"status_code", status,
			"duration_ms", duration.Milliseconds(),
		)
	}
}

// IPRateLimiter hands out one token bucket per client IP.
type IPRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

func NewIPRateLimiter(rps float64, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

func (l *IPRateLimiter) limiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, ok := l.limiters[ip]; ok {
		return limiter
	}
	limiter := rate.NewLimiter(l.rps, l.burst)
	l.limiters[ip] = limiter
	return limiter
}

func (l *IPRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.limiter(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests", "code": "RATE_LIMITED"})
			return
		}
		c.Next()
	}
}
