package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/yungbote/sportshop-backend/internal/platform/env"
	"github.com/yungbote/sportshop-backend/internal/platform/logger"
	"github.com/yungbote/sportshop-backend/internal/types"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	postgresHost := env.Get("POSTGRES_HOST", "localhost", log)
	postgresPort := env.Get("POSTGRES_PORT", "5432", log)
	postgresUser := env.Get("POSTGRES_USER", "postgres", log)
	postgresPassword := env.Get("POSTGRES_PASSWORD", "", log)
	postgresName := env.Get("POSTGRES_NAME", "sportshop", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	serviceLog.Info("Connecting to Postgres...")
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := gdb.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		serviceLog.Error("Failed to enable uuid-ossp extension", "error", err)
		return nil, fmt.Errorf("enable uuid-ossp extension: %w", err)
	}

	return &PostgresService{db: gdb, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	// Orders keep a weak reference to their owner: the user must exist at
	// creation time but no FK constraint enforces it afterwards.
	if err := s.db.AutoMigrate(
		&types.User{},
		&types.Product{},
		&types.Order{},
	); err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
