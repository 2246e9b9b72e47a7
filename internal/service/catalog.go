package service

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/pantrybase/recipebox/internal/models"
)

// CatalogService owns the tag and ingredient entities. Both are plain
// named labels scoped to their owner, so they share one service.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// ListTags returns the caller's tags ordered by name descending. With
// assignedOnly, only tags attached to at least one of the caller's
// recipes are returned.
func (s *CatalogService) ListTags(userID uint, assignedOnly bool) ([]models.Tag, error) {
	q := s.db.Model(&models.Tag{}).Where("tags.user_id = ?", userID)
	if assignedOnly {
		q = q.Joins("JOIN recipe_tags ON recipe_tags.tag_id = tags.id").
			Distinct("tags.*")
	}

	var tags []models.Tag
	if err := q.Order("tags.name DESC").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	return tags, nil
}

// CreateTag creates a tag owned by the caller.
func (s *CatalogService) CreateTag(userID uint, name string) (*models.Tag, error) {
	tag := models.Tag{Name: name, UserID: userID}
	if err := s.db.Create(&tag).Error; err != nil {
		return nil, fmt.Errorf("creating tag: %w", err)
	}
	return &tag, nil
}

// ListIngredients mirrors ListTags for ingredients.
func (s *CatalogService) ListIngredients(userID uint, assignedOnly bool) ([]models.Ingredient, error) {
	q := s.db.Model(&models.Ingredient{}).Where("ingredients.user_id = ?", userID)
	if assignedOnly {
		q = q.Joins("JOIN recipe_ingredients ON recipe_ingredients.ingredient_id = ingredients.id").
			Distinct("ingredients.*")
	}

	var ingredients []models.Ingredient
	if err := q.Order("ingredients.name DESC").Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("listing ingredients: %w", err)
	}
	return ingredients, nil
}

// CreateIngredient creates an ingredient owned by the caller.
func (s *CatalogService) CreateIngredient(userID uint, name string) (*models.Ingredient, error) {
	ingredient := models.Ingredient{Name: name, UserID: userID}
	if err := s.db.Create(&ingredient).Error; err != nil {
		return nil, fmt.Errorf("creating ingredient: %w", err)
	}
	return &ingredient, nil
}
