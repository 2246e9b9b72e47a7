package types

import (
	"github.com/pantrybase/recipebox/internal/models"
)

// RegisterUserRequest is the body for account registration. The two
// password fields must match; the minimum length follows the product
// rule of five characters.
type RegisterUserRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Name      string `json:"name" binding:"max=255"`
	Password1 string `json:"password1" binding:"required,min=5"`
	Password2 string `json:"password2" binding:"required"`
}

// TokenRequest is the body for the login/token endpoint.
type TokenRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateMeRequest carries a partial profile update. Nil fields are
// left untouched.
type UpdateMeRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Name     *string `json:"name" binding:"omitempty,max=255"`
	Password *string `json:"password" binding:"omitempty,min=5"`
}

type TagRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type IngredientRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// CreateRecipeRequest is the body for POST and PUT on recipes; every
// mandatory recipe field must be present. TimeMinutes and Price are
// pointers so that present-but-zero values pass the required check.
type CreateRecipeRequest struct {
	Title       string        `json:"title" binding:"required,max=255"`
	TimeMinutes *uint         `json:"time_minutes" binding:"required"`
	Price       *models.Price `json:"price" binding:"required"`
	Link        string        `json:"link" binding:"max=255"`
	Tags        []uint        `json:"tags"`
	Ingredients []uint        `json:"ingredients"`
}

// UpdateRecipeRequest is the body for PATCH on recipes. Nil fields are
// left untouched; a non-nil empty Tags/Ingredients list clears the
// relation.
type UpdateRecipeRequest struct {
	Title       *string       `json:"title" binding:"omitempty,max=255"`
	TimeMinutes *uint         `json:"time_minutes"`
	Price       *models.Price `json:"price"`
	Link        *string       `json:"link" binding:"omitempty,max=255"`
	Tags        *[]uint       `json:"tags"`
	Ingredients *[]uint       `json:"ingredients"`
}
