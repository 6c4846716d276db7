package main

import (
	"flag"

	"go.uber.org/zap"

	"github.com/joripage/ghost-trader/config"
	"github.com/joripage/ghost-trader/pkg/infra"
	"github.com/joripage/ghost-trader/pkg/logging"
)

func main() {
	var configFile string
	flag.StringVar(&configFile, "config-file", "./config/config.yml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(configFile)
	if err != nil {
		zap.S().Fatalf("load config error: %v", err)
	}

	logger, err := logging.Init(cfg.LogLevel, cfg.Development)
	if err != nil {
		zap.S().Fatalf("init logging error: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if cfg.JournalDB == nil {
		zap.S().Fatal("journal_db config is required to migrate")
	}

	infra.GetMigrateTool().Migrate("file://migrations/sql", cfg.JournalDB.MigrationConnURL)
}
