package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/sportshop-backend/internal/platform/logger"
	"github.com/yungbote/sportshop-backend/internal/services"
)

type Services struct {
	Auth     services.AuthService
	User     services.UserService
	Product  services.ProductService
	Order    services.OrderService
	Checkout services.CheckoutService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, clients Clients) Services {
	log.Info("Wiring services...")
	return Services{
		Auth:     services.NewAuthService(db, log, reposet.User, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		User:     services.NewUserService(db, log, reposet.User),
		Product:  services.NewProductService(db, log, reposet.Product, clients.ProductCache),
		Order:    services.NewOrderService(db, log, reposet.Order),
		Checkout: services.NewCheckoutService(db, log, reposet.Product, reposet.Order, clients.StripeGateway),
	}
}
