package types

import (
	"github.com/pantrybase/recipebox/internal/models"
)

// UserResponse is the profile shape; the password hash never leaves
// the store.
type UserResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{Email: u.Email, Name: u.Name}
}

type TokenResponse struct {
	Token string `json:"token"`
}

type TagResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func NewTagResponse(t *models.Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name}
}

func NewTagResponses(tags []models.Tag) []TagResponse {
	out := make([]TagResponse, 0, len(tags))
	for i := range tags {
		out = append(out, NewTagResponse(&tags[i]))
	}
	return out
}

type IngredientResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func NewIngredientResponse(i *models.Ingredient) IngredientResponse {
	return IngredientResponse{ID: i.ID, Name: i.Name}
}

func NewIngredientResponses(ingredients []models.Ingredient) []IngredientResponse {
	out := make([]IngredientResponse, 0, len(ingredients))
	for i := range ingredients {
		out = append(out, NewIngredientResponse(&ingredients[i]))
	}
	return out
}

// RecipeListItem is the list/write representation: related entities
// appear as identifier references.
type RecipeListItem struct {
	ID          uint         `json:"id"`
	Title       string       `json:"title"`
	TimeMinutes uint         `json:"time_minutes"`
	Price       models.Price `json:"price"`
	Link        string       `json:"link"`
	Image       string       `json:"image"`
	Tags        []uint       `json:"tags"`
	Ingredients []uint       `json:"ingredients"`
}

func NewRecipeListItem(r *models.Recipe) RecipeListItem {
	item := RecipeListItem{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		Image:       r.Image,
		Tags:        make([]uint, 0, len(r.Tags)),
		Ingredients: make([]uint, 0, len(r.Ingredients)),
	}
	for _, t := range r.Tags {
		item.Tags = append(item.Tags, t.ID)
	}
	for _, i := range r.Ingredients {
		item.Ingredients = append(item.Ingredients, i.ID)
	}
	return item
}

func NewRecipeList(recipes []models.Recipe) []RecipeListItem {
	out := make([]RecipeListItem, 0, len(recipes))
	for i := range recipes {
		out = append(out, NewRecipeListItem(&recipes[i]))
	}
	return out
}

// RecipeDetail is the detail representation: related entities are
// nested as full objects.
type RecipeDetail struct {
	ID          uint                 `json:"id"`
	Title       string               `json:"title"`
	TimeMinutes uint                 `json:"time_minutes"`
	Price       models.Price         `json:"price"`
	Link        string               `json:"link"`
	Image       string               `json:"image"`
	Tags        []TagResponse        `json:"tags"`
	Ingredients []IngredientResponse `json:"ingredients"`
}

func NewRecipeDetail(r *models.Recipe) RecipeDetail {
	return RecipeDetail{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		Image:       r.Image,
		Tags:        NewTagResponses(r.Tags),
		Ingredients: NewIngredientResponses(r.Ingredients),
	}
}

// RecipeImageResponse is the dedicated upload representation: only the
// identifier and image fields are exposed.
type RecipeImageResponse struct {
	ID    uint   `json:"id"`
	Image string `json:"image"`
}
