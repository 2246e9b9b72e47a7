package models

import (
	"time"
)

// RecipeImagePath is the key prefix under which uploaded recipe images
// are stored, regardless of storage backend.
const RecipeImagePath = "uploads/recipe/"

// Tag labels a recipe. Names are scoped per owner, not globally unique.
type Tag struct {
	ID     uint   `gorm:"primarykey" json:"id"`
	Name   string `gorm:"size:100;not null" json:"name"`
	UserID uint   `gorm:"not null;index" json:"-"`
}

// Ingredient is a recipe component, scoped per owner like Tag.
type Ingredient struct {
	ID     uint   `gorm:"primarykey" json:"id"`
	Name   string `gorm:"size:100;not null" json:"name"`
	UserID uint   `gorm:"not null;index" json:"-"`
}

type Recipe struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title       string `gorm:"size:255;not null" json:"title"`
	UserID      uint   `gorm:"not null;index" json:"-"`
	TimeMinutes uint   `gorm:"not null" json:"time_minutes"`
	Price       Price  `gorm:"not null" json:"price"`
	Link        string `gorm:"size:255" json:"link"`
	// Image holds the stored file key (or URL for remote backends).
	Image string `gorm:"size:255" json:"image"`

	Tags        []Tag        `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE" json:"tags"`
	Ingredients []Ingredient `gorm:"many2many:recipe_ingredients;constraint:OnDelete:CASCADE" json:"ingredients"`
}
