package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/sportshop-backend/internal/platform/logger"
	"github.com/yungbote/sportshop-backend/internal/repos"
)

type Repos struct {
	User    repos.UserRepo
	Product repos.ProductRepo
	Order   repos.OrderRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:    repos.NewUserRepo(db, log),
		Product: repos.NewProductRepo(db, log),
		Order:   repos.NewOrderRepo(db, log),
	}
}
