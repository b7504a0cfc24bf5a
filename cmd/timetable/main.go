package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/noah-isme/el-timetable/api/swagger"
	"github.com/noah-isme/el-timetable/internal/app"
	"github.com/noah-isme/el-timetable/pkg/config"
	"github.com/noah-isme/el-timetable/pkg/database"
	"github.com/noah-isme/el-timetable/pkg/logger"
)

// @title EL Timetable
// @version 1.0.0
// @description Tutoring timetable, payments and attendance
// @BasePath /
// @schemes http

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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		logr.Fatal("failed to open database", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		version, err := database.Migrate(db, cfg.Database.Driver)
		if err != nil {
			logr.Fatal("failed to migrate database", zap.Error(err))
		}
		logr.Info("database migrated", zap.Uint("version", version))
	}

	r, err := app.New(cfg, db, logr)
	if err != nil {
		logr.Fatal("failed to build router", zap.Error(err))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "driver", cfg.Database.Driver)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
