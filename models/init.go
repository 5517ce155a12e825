package models

import "gorm.io/gorm"

// Migrate creates or updates the tables used by the gorm record store
func Migrate(tx *gorm.DB) error {
	if err := tx.AutoMigrate(&Photo{}); err != nil {
		return err
	}
	return tx.AutoMigrate(&Wish{})
}
