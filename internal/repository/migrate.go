package repository

import "gorm.io/gorm"

// AutoMigrate keeps the schema in sync with the row models. Called by both
// binaries on startup.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&reportModel{},
		&contributionModel{},
		&settingModel{},
	)
}
