package handlers

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"storefront/internal/events"
	"storefront/internal/middleware"
)

type Dependencies struct {
	Contacts ContactStore
	Orders   OrderStore
	Events   events.Publisher
	Ping     func(ctx context.Context) error
	Logger   zerolog.Logger
	Now      func() time.Time

	PublicDir      string
	CORSOrigins    []string
	AdminJWTSecret string
	// TracingService enables otelgin spans under this service name when set.
	TracingService string
}

func NewRouter(deps Dependencies) *gin.Engine {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Events == nil {
		deps.Events = events.Nop{}
	}

	r := gin.New()
	if deps.TracingService != "" {
		r.Use(otelgin.Middleware(deps.TracingService))
	}
	r.Use(
		middleware.RequestID(),
		middleware.Logging(deps.Logger),
		middleware.Metrics(),
		cors.New(corsConfig(deps.CORSOrigins)),
	)

	adminOnly := middleware.AdminAuth(deps.AdminJWTSecret, deps.Logger)

	api := r.Group("/api")
	{
		api.POST("/contact", CreateContact(deps.Contacts, deps.Logger, deps.Now))
		api.GET("/contacts", adminOnly, GetContacts(deps.Contacts, deps.Logger))

		api.POST("/orders", CreateOrder(deps.Orders, deps.Events, deps.Logger, deps.Now))
		api.GET("/orders", adminOnly, GetOrders(deps.Orders, deps.Logger))
	}

	if deps.Ping != nil {
		r.GET("/healthz", Health(deps.Ping))
	}
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.NoRoute(Frontend(deps.PublicDir))
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
