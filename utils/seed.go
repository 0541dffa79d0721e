package utils

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/2110503-CEDT68/be-project-68-group7/config"
	"github.com/2110503-CEDT68/be-project-68-group7/logger"
	"github.com/2110503-CEDT68/be-project-68-group7/models"
)

// SeedAdmin creates the initial admin account when SEED_ADMIN_EMAIL and
// SEED_ADMIN_PASSWORD are set. Registration never produces admins, so this
// is the only way one comes into existence.
func SeedAdmin(db *gorm.DB, cfg *config.Config) error {
	log := logger.GetLogger()

	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		return nil
	}

	var existing models.User
	err := db.Where("email = ?", cfg.SeedAdminEmail).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:     "Administrator",
		Email:    cfg.SeedAdminEmail,
		Password: hashed,
		Role:     models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Info("seeded admin user", zap.String("email", cfg.SeedAdminEmail))
	return nil
}
