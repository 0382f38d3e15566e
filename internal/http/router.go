package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/yungbote/sportshop-backend/internal/http/handlers"
	httpMW "github.com/yungbote/sportshop-backend/internal/http/middleware"
	"github.com/yungbote/sportshop-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler   *httpH.HealthHandler
	AuthHandler     *httpH.AuthHandler
	UserHandler     *httpH.UserHandler
	ProductHandler  *httpH.ProductHandler
	OrderHandler    *httpH.OrderHandler
	CheckoutHandler *httpH.CheckoutHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")

	// Auth (public)
	if cfg.AuthHandler != nil {
		api.POST("/register", cfg.AuthHandler.Register)
		api.POST("/login", cfg.AuthHandler.Login)
	}

	// Products (public reads, admin writes)
	if cfg.ProductHandler != nil {
		api.GET("/products", cfg.ProductHandler.List)
		api.GET("/products/:id", cfg.ProductHandler.Get)
		if cfg.AuthMiddleware != nil {
			admin := api.Group("/products", cfg.AuthMiddleware.RequireAuth(), cfg.AuthMiddleware.RequireAdmin())
			admin.POST("", cfg.ProductHandler.Create)
			admin.PUT("/:id", cfg.ProductHandler.Update)
			admin.DELETE("/:id", cfg.ProductHandler.Delete)
		}
	}

	if cfg.AuthMiddleware == nil {
		return r
	}

	// Checkout (authenticated)
	if cfg.CheckoutHandler != nil {
		api.POST("/checkout", cfg.AuthMiddleware.RequireAuth(), cfg.CheckoutHandler.Checkout)
	}

	// Orders. Guards are chained ahead of each handler; a denial aborts the
	// chain so the operation never runs.
	if cfg.OrderHandler != nil {
		orders := api.Group("/orders", cfg.AuthMiddleware.RequireAuth())
		{
			orders.GET("", cfg.AuthMiddleware.RequireAdmin(), cfg.OrderHandler.List)
			orders.GET("/stats", cfg.AuthMiddleware.RequireAdmin(), cfg.OrderHandler.Stats)
			orders.GET("/income/stats", cfg.AuthMiddleware.RequireAdmin(), cfg.OrderHandler.IncomeStats)
			orders.GET("/week-sales", cfg.AuthMiddleware.RequireAdmin(), cfg.OrderHandler.WeekSales)
			orders.PUT("/:id", cfg.AuthMiddleware.RequireAdmin(), cfg.OrderHandler.Update)
			orders.GET("/find/:userId", cfg.AuthMiddleware.RequireSelfOrAdmin("userId"), cfg.OrderHandler.ListForUser)
			// Ownership of a single order is resolved in the service once
			// the record is loaded.
			orders.GET("/findOne/:id", cfg.OrderHandler.Get)
		}
	}

	// Users
	if cfg.UserHandler != nil {
		users := api.Group("/users", cfg.AuthMiddleware.RequireAuth())
		{
			users.GET("", cfg.AuthMiddleware.RequireAdmin(), cfg.UserHandler.List)
			users.GET("/stats", cfg.AuthMiddleware.RequireAdmin(), cfg.UserHandler.Stats)
			users.GET("/:id", cfg.AuthMiddleware.RequireSelfOrAdmin("id"), cfg.UserHandler.Get)
			users.PUT("/:id", cfg.AuthMiddleware.RequireSelfOrAdmin("id"), cfg.UserHandler.Update)
			users.DELETE("/:id", cfg.AuthMiddleware.RequireAdmin(), cfg.UserHandler.Delete)
		}
	}

	return r
}
