package app

import (
	"fmt"
	"os"
	"strings"

	redisclient "github.com/yungbote/sportshop-backend/internal/clients/redis"
	stripeclient "github.com/yungbote/sportshop-backend/internal/clients/stripe"
	"github.com/yungbote/sportshop-backend/internal/platform/logger"
)

type Clients struct {
	ProductCache  redisclient.ProductCache
	StripeGateway stripeclient.Gateway
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	// Redis is optional; without REDIS_ADDR the catalog cache is disabled.
	var cache redisclient.ProductCache
	if strings.TrimSpace(os.Getenv("REDIS_ADDR")) != "" {
		c, err := redisclient.NewProductCache(log)
		if err != nil {
			return Clients{}, fmt.Errorf("init product cache: %w", err)
		}
		cache = c
	}

	gateway, err := stripeclient.NewGateway(log, cfg.StripeAPIKey)
	if err != nil {
		return Clients{}, fmt.Errorf("init stripe gateway: %w", err)
	}

	return Clients{
		ProductCache:  cache,
		StripeGateway: gateway,
	}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.ProductCache != nil {
		_ = c.ProductCache.Close()
	}
}
