package database

import (
	"Balgil/internal/model"
	"fmt"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Message{},
		&model.Comment{},
		&model.Vote{},
		&model.SavedMessage{},
		&model.Route{},
	); err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}
	return nil
}
