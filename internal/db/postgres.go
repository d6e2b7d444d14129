package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/wearly/shopagent-backend/internal/logger"
	"github.com/wearly/shopagent-backend/internal/utils"
)

// PostgresService holds the connection to the product catalog. The
// catalog schema is owned elsewhere; this backend only issues
// parameterized reads against it, so there is no migration step.
type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	dsn := utils.GetEnv("DATABASE_URL", "", log)
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	serviceLog.Info("Connecting to catalog database...")
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		serviceLog.Error("Failed to connect to catalog database", "error", err)
		return nil, fmt.Errorf("failed to connect to catalog database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(utils.GetEnvAsInt("DATABASE_MAX_OPEN_CONNS", 10, log))
	sqlDB.SetMaxIdleConns(utils.GetEnvAsInt("DATABASE_MAX_IDLE_CONNS", 2, log))

	serviceLog.Info("Catalog database connected")
	return &PostgresService{db: gdb, log: serviceLog}, nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
