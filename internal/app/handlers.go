package app

import (
	internalhttp "github.com/yungbote/sportshop-backend/internal/http"
	httpH "github.com/yungbote/sportshop-backend/internal/http/handlers"
	httpMW "github.com/yungbote/sportshop-backend/internal/http/middleware"
	"github.com/yungbote/sportshop-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health   *httpH.HealthHandler
	Auth     *httpH.AuthHandler
	User     *httpH.UserHandler
	Product  *httpH.ProductHandler
	Order    *httpH.OrderHandler
	Checkout *httpH.CheckoutHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:   httpH.NewHealthHandler(),
		Auth:     httpH.NewAuthHandler(serviceset.Auth),
		User:     httpH.NewUserHandler(serviceset.User),
		Product:  httpH.NewProductHandler(serviceset.Product),
		Order:    httpH.NewOrderHandler(serviceset.Order),
		Checkout: httpH.NewCheckoutHandler(serviceset.Checkout),
	}
}

func wireMiddleware(log *logger.Logger, serviceset Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, serviceset.Auth),
	}
}

func wireServer(log *logger.Logger, handlers Handlers, middleware Middleware) *internalhttp.Server {
	return internalhttp.NewServer(internalhttp.RouterConfig{
		Log:             log,
		AuthMiddleware:  middleware.Auth,
		HealthHandler:   handlers.Health,
		AuthHandler:     handlers.Auth,
		UserHandler:     handlers.User,
		ProductHandler:  handlers.Product,
		OrderHandler:    handlers.Order,
		CheckoutHandler: handlers.Checkout,
	})
}
