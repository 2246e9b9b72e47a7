package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantrybase/recipebox/internal/models"
	"github.com/pantrybase/recipebox/internal/types"
)

// ErrNotImage is returned when an uploaded payload does not sniff as
// an image format.
var ErrNotImage = errors.New("upload a valid image")

// RecipeFilter narrows a recipe listing. Ids within one dimension
// combine with OR; supplying both dimensions combines them with AND.
type RecipeFilter struct {
	TagIDs        []uint
	IngredientIDs []uint
}

// RecipeService owns the recipe entity, its tag/ingredient membership
// and the attached image file.
type RecipeService struct {
	db      *gorm.DB
	storage ImageStorage
}

func NewRecipeService(db *gorm.DB, storage ImageStorage) *RecipeService {
	return &RecipeService{db: db, storage: storage}
}

// List returns the caller's recipes, newest first.
func (s *RecipeService) List(userID uint, filter RecipeFilter) ([]models.Recipe, error) {
	q := s.db.Model(&models.Recipe{}).Where("recipes.user_id = ?", userID)

	if len(filter.TagIDs) > 0 {
		q = q.Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Where("recipe_tags.tag_id IN ?", filter.TagIDs)
	}
	if len(filter.IngredientIDs) > 0 {
		q = q.Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id").
			Where("recipe_ingredients.ingredient_id IN ?", filter.IngredientIDs)
	}

	var recipes []models.Recipe
	err := q.Distinct("recipes.*").
		Preload("Tags").
		Preload("Ingredients").
		Order("recipes.id DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("listing recipes: %w", err)
	}
	return recipes, nil
}

// Get returns one of the caller's recipes. A recipe belonging to
// another user yields ErrNotFound, not a permission error.
func (s *RecipeService) Get(userID, recipeID uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.
		Preload("Tags").
		Preload("Ingredients").
		Where("id = ? AND user_id = ?", recipeID, userID).
		First(&recipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading recipe: %w", err)
	}
	return &recipe, nil
}

// Create persists a recipe stamped with the caller's identity.
func (s *RecipeService) Create(userID uint, req types.CreateRecipeRequest) (*models.Recipe, error) {
	var recipe *models.Recipe
	err := s.db.Transaction(func(tx *gorm.DB) error {
		tags, err := resolveTags(tx, userID, req.Tags)
		if err != nil {
			return err
		}
		ingredients, err := resolveIngredients(tx, userID, req.Ingredients)
		if err != nil {
			return err
		}

		recipe = &models.Recipe{
			Title:       req.Title,
			UserID:      userID,
			TimeMinutes: *req.TimeMinutes,
			Price:       *req.Price,
			Link:        req.Link,
			Tags:        tags,
			Ingredients: ingredients,
		}
		if err := tx.Create(recipe).Error; err != nil {
			return fmt.Errorf("creating recipe: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recipe, nil
}

// Update applies a partial update; failed validation leaves the row
// untouched.
func (s *RecipeService) Update(userID, recipeID uint, req types.UpdateRecipeRequest) (*models.Recipe, error) {
	var recipe *models.Recipe
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		recipe, err = s.getForUpdate(tx, userID, recipeID)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if req.Title != nil {
			recipe.Title = *req.Title
			updates["title"] = *req.Title
		}
		if req.TimeMinutes != nil {
			recipe.TimeMinutes = *req.TimeMinutes
			updates["time_minutes"] = *req.TimeMinutes
		}
		if req.Price != nil {
			recipe.Price = *req.Price
			updates["price"] = *req.Price
		}
		if req.Link != nil {
			recipe.Link = *req.Link
			updates["link"] = *req.Link
		}
		if len(updates) > 0 {
			if err := tx.Model(recipe).Updates(updates).Error; err != nil {
				return fmt.Errorf("updating recipe: %w", err)
			}
		}

		if req.Tags != nil {
			tags, err := resolveTags(tx, userID, *req.Tags)
			if err != nil {
				return err
			}
			if err := tx.Model(recipe).Association("Tags").Replace(tags); err != nil {
				return fmt.Errorf("replacing tags: %w", err)
			}
			recipe.Tags = tags
		}
		if req.Ingredients != nil {
			ingredients, err := resolveIngredients(tx, userID, *req.Ingredients)
			if err != nil {
				return err
			}
			if err := tx.Model(recipe).Association("Ingredients").Replace(ingredients); err != nil {
				return fmt.Errorf("replacing ingredients: %w", err)
			}
			recipe.Ingredients = ingredients
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recipe, nil
}

// Delete removes a recipe and its stored image file.
func (s *RecipeService) Delete(ctx context.Context, userID, recipeID uint) error {
	recipe, err := s.Get(userID, recipeID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Ingredients").Clear(); err != nil {
			return err
		}
		return tx.Delete(recipe).Error
	})
	if err != nil {
		return fmt.Errorf("deleting recipe: %w", err)
	}

	if recipe.Image != "" {
		// Best effort; the row is already gone.
		_ = s.storage.Remove(ctx, recipe.Image)
	}
	return nil
}

// SaveImage validates and stores an uploaded image, replacing any
// prior reference on the row. A replaced file is not deleted.
func (s *RecipeService) SaveImage(ctx context.Context, userID, recipeID uint, filename string, data []byte) (*models.Recipe, error) {
	recipe, err := s.Get(userID, recipeID)
	if err != nil {
		return nil, err
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotImage
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = extensionFor(contentType)
	}

	key := models.RecipeImagePath + uuid.New().String() + ext
	stored, err := s.storage.Save(ctx, key, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("storing image: %w", err)
	}

	if err := s.db.Model(recipe).Update("image", stored).Error; err != nil {
		return nil, fmt.Errorf("updating image reference: %w", err)
	}
	recipe.Image = stored
	return recipe, nil
}

func (s *RecipeService) getForUpdate(tx *gorm.DB, userID, recipeID uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := tx.Where("id = ? AND user_id = ?", recipeID, userID).First(&recipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading recipe: %w", err)
	}
	return &recipe, nil
}

func resolveTags(tx *gorm.DB, userID uint, ids []uint) ([]models.Tag, error) {
	ids = dedupe(ids)
	if len(ids) == 0 {
		return []models.Tag{}, nil
	}
	var tags []models.Tag
	if err := tx.Where("user_id = ? AND id IN ?", userID, ids).Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("resolving tags: %w", err)
	}
	if len(tags) != len(ids) {
		return nil, &InvalidReferenceError{Field: "tags"}
	}
	return tags, nil
}

func resolveIngredients(tx *gorm.DB, userID uint, ids []uint) ([]models.Ingredient, error) {
	ids = dedupe(ids)
	if len(ids) == 0 {
		return []models.Ingredient{}, nil
	}
	var ingredients []models.Ingredient
	if err := tx.Where("user_id = ? AND id IN ?", userID, ids).Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("resolving ingredients: %w", err)
	}
	if len(ingredients) != len(ids) {
		return nil, &InvalidReferenceError{Field: "ingredients"}
	}
	return ingredients, nil
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".img"
	}
}
