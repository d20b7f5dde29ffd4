package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/platewire/eatery-backend/internal/logger"
	"github.com/platewire/eatery-backend/internal/types"
	"github.com/platewire/eatery-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "eatery", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	log.Info("Connecting to Postgres...")
	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return &PostgresService{db: gormDB, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
		&types.User{},
		&types.Eatery{},
		&types.Review{},
		&types.Connection{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}

	s.log.Info("Configuring foreign key relationships for postgres tables...")
	constraints := []struct {
		name string
		stmt string
	}{
		{
			name: "fk_review_user_id",
			stmt: `ALTER TABLE "review" ADD CONSTRAINT "fk_review_user_id" FOREIGN KEY ("user_id") REFERENCES "user"("id") ON DELETE CASCADE`,
		},
		{
			name: "fk_review_eatery_id",
			stmt: `ALTER TABLE "review" ADD CONSTRAINT "fk_review_eatery_id" FOREIGN KEY ("eatery_id") REFERENCES "eatery"("id") ON DELETE CASCADE`,
		},
		{
			name: "fk_connection_follower_id",
			stmt: `ALTER TABLE "connection" ADD CONSTRAINT "fk_connection_follower_id" FOREIGN KEY ("follower_id") REFERENCES "user"("id") ON DELETE CASCADE`,
		},
		{
			name: "fk_connection_following_id",
			stmt: `ALTER TABLE "connection" ADD CONSTRAINT "fk_connection_following_id" FOREIGN KEY ("following_id") REFERENCES "user"("id") ON DELETE CASCADE`,
		},
	}
	for _, constraint := range constraints {
		var count int64
		if err := s.db.Raw(
			`SELECT COUNT(*) FROM information_schema.table_constraints WHERE constraint_name = ?`, constraint.name,
		).Scan(&count).Error; err != nil {
			return fmt.Errorf("check constraint %s: %w", constraint.name, err)
		}
		if count > 0 {
			continue
		}
		if err := s.db.Exec(constraint.stmt).Error; err != nil {
			return fmt.Errorf("add constraint %s: %w", constraint.name, err)
		}
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
