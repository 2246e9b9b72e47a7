package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pantrybase/recipebox/internal/middleware"
	"github.com/pantrybase/recipebox/internal/service"
	"github.com/pantrybase/recipebox/internal/types"
)

type RecipeHandler struct {
	recipes *service.RecipeService
	log     *logrus.Logger
}

func NewRecipeHandler(recipes *service.RecipeService, log *logrus.Logger) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, log: log}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/", h.List)
	router.POST("/", h.Create)
	router.GET("/:id/", h.Get)
	router.PATCH("/:id/", h.PartialUpdate)
	router.PUT("/:id/", h.FullUpdate)
	router.DELETE("/:id/", h.Delete)
	router.POST("/:id/upload-image/", h.UploadImage)
}

func (h *RecipeHandler) List(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	tagIDs, err := parseIDList(c.Query("tags"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewFieldError("tags", "invalid identifier list"))
		return
	}
	ingredientIDs, err := parseIDList(c.Query("ingredients"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewFieldError("ingredients", "invalid identifier list"))
		return
	}

	recipes, err := h.recipes.List(userID, service.RecipeFilter{
		TagIDs:        tagIDs,
		IngredientIDs: ingredientIDs,
	})
	if err != nil {
		h.log.WithError(err).Error("failed to list recipes")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list recipes"})
		return
	}

	c.JSON(http.StatusOK, types.NewRecipeList(recipes))
}

func (h *RecipeHandler) Get(c *gin.Context) {
	userID, recipeID, ok := h.requestIDs(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.Get(userID, recipeID)
	if err != nil {
		h.respondError(c, err, "failed to load recipe")
		return
	}

	c.JSON(http.StatusOK, types.NewRecipeDetail(recipe))
}

func (h *RecipeHandler) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.BindingErrors(err))
		return
	}

	recipe, err := h.recipes.Create(userID, req)
	if err != nil {
		h.respondError(c, err, "failed to create recipe")
		return
	}

	c.JSON(http.StatusCreated, types.NewRecipeDetail(recipe))
}

// PartialUpdate replaces only the provided fields.
func (h *RecipeHandler) PartialUpdate(c *gin.Context) {
	userID, recipeID, ok := h.requestIDs(c)
	if !ok {
		return
	}

	var req types.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.BindingErrors(err))
		return
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		c.JSON(http.StatusBadRequest, types.NewFieldError("title", "may not be blank"))
		return
	}

	recipe, err := h.recipes.Update(userID, recipeID, req)
	if err != nil {
		h.respondError(c, err, "failed to update recipe")
		return
	}

	c.JSON(http.StatusOK, types.NewRecipeDetail(recipe))
}

// FullUpdate requires every mandatory field, then applies them all.
func (h *RecipeHandler) FullUpdate(c *gin.Context) {
	userID, recipeID, ok := h.requestIDs(c)
	if !ok {
		return
	}

	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.BindingErrors(err))
		return
	}

	tags := req.Tags
	if tags == nil {
		tags = []uint{}
	}
	ingredients := req.Ingredients
	if ingredients == nil {
		ingredients = []uint{}
	}
	recipe, err := h.recipes.Update(userID, recipeID, types.UpdateRecipeRequest{
		Title:       &req.Title,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Link:        &req.Link,
		Tags:        &tags,
		Ingredients: &ingredients,
	})
	if err != nil {
		h.respondError(c, err, "failed to update recipe")
		return
	}

	c.JSON(http.StatusOK, types.NewRecipeDetail(recipe))
}

func (h *RecipeHandler) Delete(c *gin.Context) {
	userID, recipeID, ok := h.requestIDs(c)
	if !ok {
		return
	}

	if err := h.recipes.Delete(c.Request.Context(), userID, recipeID); err != nil {
		h.respondError(c, err, "failed to delete recipe")
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadImage accepts a single multipart "image" field and replaces
// the recipe's image reference.
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	userID, recipeID, ok := h.requestIDs(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewFieldError("image", "no image was submitted"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewFieldError("image", "could not read the submitted file"))
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewFieldError("image", "could not read the submitted file"))
		return
	}

	recipe, err := h.recipes.SaveImage(c.Request.Context(), userID, recipeID, fileHeader.Filename, data)
	if err != nil {
		if errors.Is(err, service.ErrNotImage) {
			c.JSON(http.StatusBadRequest, types.NewFieldError("image", "upload a valid image"))
			return
		}
		h.respondError(c, err, "failed to store image")
		return
	}

	c.JSON(http.StatusOK, types.RecipeImageResponse{ID: recipe.ID, Image: recipe.Image})
}

// requestIDs pulls the caller and the :id path parameter. An
// unparsable id behaves like a missing row.
func (h *RecipeHandler) requestIDs(c *gin.Context) (userID, recipeID uint, ok bool) {
	userID, exists := middleware.CurrentUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return 0, 0, false
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "not found"})
		return 0, 0, false
	}
	return userID, uint(id), true
}

func (h *RecipeHandler) respondError(c *gin.Context, err error, msg string) {
	var refErr *service.InvalidReferenceError
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "not found"})
	case errors.As(err, &refErr):
		c.JSON(http.StatusBadRequest, types.NewFieldError(refErr.Field, refErr.Error()))
	default:
		h.log.WithError(err).Error(msg)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}

// parseIDList parses a comma-separated identifier list such as "1,5,9".
func parseIDList(raw string) ([]uint, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]uint, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(p), 10, 32)
		if err != nil {
			return nil, err
		}
		out = append(out, uint(id))
	}
	return out, nil
}
