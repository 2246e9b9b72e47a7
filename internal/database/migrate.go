package database

import (
	"gorm.io/gorm"

	"github.com/pantrybase/recipebox/internal/models"
)

// Migrate applies the schema. AutoMigrate also creates the recipe_tags
// and recipe_ingredients join tables with composite primary keys.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
	)
}
