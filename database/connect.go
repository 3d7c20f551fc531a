package database

import (
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"wedding_manager/config"
	"wedding_manager/model"
)

// Connect opens postgres and migrates the schema. The handle is returned to
// the caller and wired through constructors; nothing keeps a package-level
// copy.
func Connect() (*gorm.DB, error) {
	port, err := strconv.ParseUint(config.ConfigOr("DB_PORT", "5432"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("parse DB_PORT: %w", err)
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		config.Config("DB_HOST"), port, config.Config("DB_USER"),
		config.Config("DB_PASSWORD"), config.Config("DB_NAME"))
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	log.Info().Msg("database connected and migrated")

	SeedData(db)
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Account{},
		&model.VerificationToken{},
		&model.PasswordResetToken{},
		&model.Couple{},
		&model.GuestGroup{},
		&model.Guest{},
		&model.Companion{},
	)
}

// ConnectRedis returns nil when REDIS_ADDR is unset; callers treat the cache
// and the RSVP feed as optional in that case.
func ConnectRedis() *redis.Client {
	addr := config.Config("REDIS_ADDR")
	if addr == "" {
		log.Warn().Msg("REDIS_ADDR unset, tenant cache and RSVP feed disabled")
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: config.Config("REDIS_PASSWORD"),
	})
}
