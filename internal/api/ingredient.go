package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pantrybase/recipebox/internal/middleware"
	"github.com/pantrybase/recipebox/internal/service"
	"github.com/pantrybase/recipebox/internal/types"
)

type IngredientHandler struct {
	catalog *service.CatalogService
	log     *logrus.Logger
}

func NewIngredientHandler(catalog *service.CatalogService, log *logrus.Logger) *IngredientHandler {
	return &IngredientHandler{catalog: catalog, log: log}
}

func (h *IngredientHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/", h.List)
	router.POST("/", h.Create)
}

func (h *IngredientHandler) List(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	assignedOnly := c.Query("assigned_only") == "1"
	ingredients, err := h.catalog.ListIngredients(userID, assignedOnly)
	if err != nil {
		h.log.WithError(err).Error("failed to list ingredients")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list ingredients"})
		return
	}

	c.JSON(http.StatusOK, types.NewIngredientResponses(ingredients))
}

func (h *IngredientHandler) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req types.IngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.BindingErrors(err))
		return
	}

	ingredient, err := h.catalog.CreateIngredient(userID, req.Name)
	if err != nil {
		h.log.WithError(err).Error("failed to create ingredient")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create ingredient"})
		return
	}

	c.JSON(http.StatusCreated, types.NewIngredientResponse(ingredient))
}
