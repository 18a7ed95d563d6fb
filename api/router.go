package api

import (
	"context"
	"net/http"

	"github.com/Domenick1991/airplanemode/internal/metrics"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

// HealthCheck reports whether a backing service is reachable.
type HealthCheck func(ctx context.Context) error

type Handlers struct {
	Fleet   *FleetHandler
	Flights *FlightHandler
	Tickets *TicketHandler
	Leasing *LeasingHandler
	Reports *ReportHandler
}

type RouterOptions struct {
	Metrics     *metrics.MetricsRegistry
	RateLimiter *IPRateLimiter
	// SwaggerURL is the OpenAPI document served to the docs UI. Docs are disabled when empty.
	SwaggerURL string
	// SwaggerDir is served under /swagger/ when set.
	SwaggerDir string
	Health     map[string]HealthCheck
}

func NewRouter(h Handlers, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID())
	if opts.Metrics != nil {
		router.Use(Metrics(opts.Metrics))
		router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}
	router.GET("/healthz", healthz(opts.Health))

	if opts.SwaggerDir != "" {
		router.Static("/swagger", opts.SwaggerDir)
	}
	if opts.SwaggerURL != "" {
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL(opts.SwaggerURL))))
	}

	apiGroup := router.Group("/api")
	h.Fleet.Register(apiGroup)
	h.Flights.Register(apiGroup.Group("/flights"))
	h.Tickets.Register(apiGroup.Group("/tickets"))
	h.Leasing.Register(apiGroup)
	h.Reports.Register(apiGroup)

	www := apiGroup.Group("/www")
	if opts.RateLimiter != nil {
		www.Use(opts.RateLimiter.Middleware())
	}
	h.Reports.RegisterPublic(www)
	return router
}

// NewOpsRouter serves only /metrics and /healthz, for processes without the public API.
func NewOpsRouter(reg *metrics.MetricsRegistry, health map[string]HealthCheck) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/metrics", gin.WrapH(reg.Handler()))
	router.GET("/healthz", healthz(health))
	return router
}

func healthz(checks map[string]HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := http.StatusOK
		result := gin.H{}
		for name, check := range checks {
			if err := check(c.Request.Context()); err != nil {
				status = http.StatusServiceUnavailable
				result[name] = err.Error()
				continue
			}
			result[name] = "ok"
		}
		c.JSON(status, gin.H{"status": http.StatusText(status), "checks": result})
	}
}
