package api

import (
	"net/http"

	"store/api/customer"
	"store/api/health"
	"store/api/middleware"
	"store/api/order"
	"store/api/product"
	"store/config"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const AppTitle = "Store API"

type Router struct {
	engine             *gin.Engine
	config             *config.Config
	gatherer           prometheus.Gatherer
	healthController   *health.Controller
	customerController *customer.Controller
	orderController    *order.Controller
	productController  *product.Controller
}

// NewRouter builds the engine with its middleware chain. A nil gatherer
// leaves /metrics unregistered.
func NewRouter(
	cfg *config.Config,
	gatherer prometheus.Gatherer,
	healthController *health.Controller,
	customerController *customer.Controller,
	orderController *order.Controller,
	productController *product.Controller,
) *Router {
	switch {
	case cfg.IsDevelopment():
		gin.SetMode(gin.DebugMode)
	case cfg.App.Env == "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Order matters: the request id must exist before anything logs.
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.RecoveryMiddleware())
	engine.Use(middleware.LoggingMiddleware())
	engine.Use(middleware.CORSMiddleware(&cfg.CORS))
	engine.Use(middleware.RateLimitMiddleware(&cfg.Server.RateLimit))

	return &Router{
		engine:             engine,
		config:             cfg,
		gatherer:           gatherer,
		healthController:   healthController,
		customerController: customerController,
		orderController:    orderController,
		productController:  productController,
	}
}

func (r *Router) SetupRoutes() {
	v1 := r.engine.Group("/v1")
	{
		r.customerController.RegisterRoutes(v1)
		r.orderController.RegisterRoutes(v1)
		r.productController.RegisterRoutes(v1)
	}

	r.healthController.RegisterRoutes(&r.engine.RouterGroup)

	if r.gatherer != nil {
		r.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})))
	}

	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"app":     AppTitle,
			"version": r.config.App.Version,
		})
	})
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
