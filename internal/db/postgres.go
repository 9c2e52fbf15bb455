package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/yungbote/tenancy-backend/internal/logger"
	"github.com/yungbote/tenancy-backend/internal/types"
	"github.com/yungbote/tenancy-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	log.Info("Loading environment variables...")
	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "tenancy", log)
	log.Debug("Environment variables loaded")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	log.Info("Connecting to Postgres...")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("Failed to connect to Postgres: %w", err)
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		log.Error("Failed to enable uuid-ossp extension", "error", err)
		return nil, fmt.Errorf("Failed to enable uuid-ossp extension: %w", err)
	}
	log.Info("uuid-ossp extension enabled")

	return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
		&types.User{},
		&types.Apartment{},
		&types.Agreement{},
		&types.Announcement{},
		&types.Coupon{},
		&types.Payment{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}

	// The invariants "one active agreement per email" and "one checked
	// agreement per apartment" must hold under concurrent submitters, so
	// they live in the store as partial unique indexes, not only in the
	// application-level checks.
	s.log.Info("Configuring agreement uniqueness constraints...")
	if err := s.db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS "uq_agreement_active_owner"
		ON "agreement"("email")
		WHERE status IN ('pending', 'checked')
	`).Error; err != nil {
		return fmt.Errorf("Failed to create uq_agreement_active_owner: %w", err)
	}
	if err := s.db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS "uq_agreement_checked_apartment"
		ON "agreement"("block_name", "apartment_no")
		WHERE status = 'checked'
	`).Error; err != nil {
		return fmt.Errorf("Failed to create uq_agreement_checked_apartment: %w", err)
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
