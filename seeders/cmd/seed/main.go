package main

import (
	"context"

	"go.uber.org/zap"

	"cmdb-system/pkg/config"
	"cmdb-system/pkg/database/postgresql"
	applogger "cmdb-system/pkg/logger"
	"cmdb-system/seeders"
)

func main() {
	logger := applogger.NewLogger()
	defer logger.Sync()

	cfg := config.New()
	ctx := context.Background()

	pool, err := postgresql.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer pool.Close()

	if err := postgresql.Migrate(ctx, pool); err != nil {
		logger.Fatal("applying migrations failed", zap.Error(err))
	}
	if err := seeders.Seed(ctx, pool, logger); err != nil {
		logger.Fatal("seeding failed", zap.Error(err))
	}
}
