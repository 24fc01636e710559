package app

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"

	"github.com/Richard-avalos/legendme-login-svc/internal/config"
	"github.com/Richard-avalos/legendme-login-svc/internal/db"
	"github.com/Richard-avalos/legendme-login-svc/internal/logger"
	"github.com/Richard-avalos/legendme-login-svc/internal/redis"
)

type Infra struct {
	DB    *sql.DB
	Redis *redis.Client
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	sqlDB, err := sql.Open("postgres", cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := db.RunMigration(ctx, sqlDB); err != nil {
		return nil, err
	}

	logger.Info("database ready", nil)

	redisClient, err := redis.New(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		return nil, err
	}

	logger.Info("redis ready", nil)

	return &Infra{
		DB:    sqlDB,
		Redis: redisClient,
	}, nil
}
