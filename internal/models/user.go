package models

import (
	"time"
)

// User is the account entity. Email is the login identifier; the address
// is stored with its domain lowercased and must be unique.
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Name         string `gorm:"size:255" json:"name"`
	PasswordHash string `gorm:"not null" json:"-"`
	IsActive     bool   `gorm:"not null;default:true" json:"is_active"`
	IsStaff      bool   `gorm:"not null;default:false" json:"is_staff"`
	IsSuperuser  bool   `gorm:"not null;default:false" json:"is_superuser"`

	Tags        []Tag        `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Ingredients []Ingredient `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Recipes     []Recipe     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
