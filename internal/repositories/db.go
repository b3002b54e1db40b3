// Package repositories provides the data access layer. All reads and
// writes against Postgres and Redis go through the interfaces defined
// here.
package repositories

import (
	"log"
	"time"

	"qrmint/internal/config"
	"qrmint/internal/models"

	"qrmint/internal/repositories/cache"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the global database instance used across the application.
var DB *gorm.DB

// ScanCache is the global Redis-backed cache for scan destinations.
var ScanCache *cache.Service

// InitDB opens the Postgres connection, runs migrations and wires the
// Redis cache. The full schema is assumed from the start; AutoMigrate
// guarantees it before the first request is served.
func InitDB() error {
	dsn := "host=" + config.GetEnv("DB_HOST", "localhost") +
		" user=" + config.GetEnv("DB_USER", "postgres") +
		" password=" + config.GetEnv("DB_PASSWORD", "postgres") +
		" dbname=" + config.GetEnv("DB_NAME", "qrmint") +
		" port=" + config.GetEnv("DB_PORT", "5432") +
		" sslmode=" + config.GetEnv("DB_SSLMODE", "disable")

	logLevel := logger.Warn
	if !config.IsProduction() {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return err
	}
	DB = db

	if err := DB.AutoMigrate(
		&models.User{},
		&models.QRCode{},
		&models.DynamicQRCode{},
	); err != nil {
		return err
	}

	redisCfg := &cache.RedisConfig{
		Host:     config.GetEnv("REDIS_HOST", "localhost"),
		Port:     config.GetEnv("REDIS_PORT", "6379"),
		Password: config.GetEnv("REDIS_PASSWORD", ""),
		DB:       config.GetIntEnv("REDIS_DB", 0),
	}
	ScanCache = cache.NewService(cache.NewRedisClient(redisCfg), 1*time.Hour)

	log.Println("database initialized")
	return nil
}
