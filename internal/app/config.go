package app

import (
	"time"

	"github.com/yungbote/sportshop-backend/internal/platform/env"
	"github.com/yungbote/sportshop-backend/internal/platform/logger"
)

type Config struct {
	Port           string
	JWTSecretKey   string
	AccessTokenTTL time.Duration
	StripeAPIKey   string
}

func LoadConfig(log *logger.Logger) Config {
	port := env.Get("PORT", "8080", log)
	jwtSecretKey := env.Get("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := env.GetAsInt("ACCESS_TOKEN_TTL", 3600, log)
	stripeAPIKey := env.Get("STRIPE_API_KEY", "", log)
	return Config{
		Port:           port,
		JWTSecretKey:   jwtSecretKey,
		AccessTokenTTL: time.Duration(accessTokenTTLSeconds) * time.Second,
		StripeAPIKey:   stripeAPIKey,
	}
}
