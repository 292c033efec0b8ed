package database

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"portfolio/analytics"
	"portfolio/models"
)

// RunMigrations brings the schema up to date.
func RunMigrations(db *gorm.DB, log zerolog.Logger) error {
	log.Info().Msg("running database migrations")

	err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Article{},
		&models.KBArticle{},
		&models.ContactSubmission{},
		&models.CVDownload{},
		&analytics.PageEvent{},
	)
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	log.Info().Msg("migrations completed")
	return nil
}

// SeedAdmin creates the initial admin account and its author profile.
// Only runs against an empty users table, so restarts are safe.
func SeedAdmin(db *gorm.DB, email, password, fullName string, log zerolog.Logger) error {
	if email == "" || password == "" {
		log.Warn().Msg("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("counting users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	profile := models.Profile{
		ID:       uuid.NewString(),
		FullName: fullName,
	}
	if err := db.Create(&profile).Error; err != nil {
		return fmt.Errorf("creating admin profile: %w", err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		ProfileID:    profile.ID,
	}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	log.Info().Str("email", email).Msg("seeded initial admin account")
	return nil
}
