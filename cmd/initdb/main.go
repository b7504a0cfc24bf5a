// Command initdb creates or upgrades the schema and exits.
package main

import (
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/noah-isme/el-timetable/pkg/config"
	"github.com/noah-isme/el-timetable/pkg/database"
	"github.com/noah-isme/el-timetable/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.New(cfg.Database)
	if err != nil {
		logr.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	version, err := database.Migrate(db, cfg.Database.Driver)
	if err != nil {
		logr.Fatal("failed to migrate database", zap.Error(err))
	}
	logr.Debug("schema ready", zap.Uint("version", version))
	fmt.Println("Initialized the database.")
}
