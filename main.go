package main

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/2110503-CEDT68/be-project-68-group7/config"
	"github.com/2110503-CEDT68/be-project-68-group7/logger"
	"github.com/2110503-CEDT68/be-project-68-group7/models"
	"github.com/2110503-CEDT68/be-project-68-group7/routes"
	"github.com/2110503-CEDT68/be-project-68-group7/utils"
)

func main() {
	cfg := config.Load()
	log := logger.GetLogger()
	defer log.Sync()

	if err := config.ConnectDatabase(cfg); err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	db := config.DB

	if err := migrate(db); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	if err := utils.SeedAdmin(db, cfg); err != nil {
		log.Fatal("admin seed failed", zap.Error(err))
	}

	r := routes.SetupRouter(db, cfg)
	addr := ":" + cfg.Port
	log.Info("server running", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := r.Run(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Provider{}, &models.Car{}, &models.Booking{})
}
