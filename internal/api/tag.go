package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pantrybase/recipebox/internal/middleware"
	"github.com/pantrybase/recipebox/internal/service"
	"github.com/pantrybase/recipebox/internal/types"
)

type TagHandler struct {
	catalog *service.CatalogService
	log     *logrus.Logger
}

func NewTagHandler(catalog *service.CatalogService, log *logrus.Logger) *TagHandler {
	return &TagHandler{catalog: catalog, log: log}
}

func (h *TagHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/", h.List)
	router.POST("/", h.Create)
}

func (h *TagHandler) List(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	assignedOnly := c.Query("assigned_only") == "1"
	tags, err := h.catalog.ListTags(userID, assignedOnly)
	if err != nil {
		h.log.WithError(err).Error("failed to list tags")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tags"})
		return
	}

	c.JSON(http.StatusOK, types.NewTagResponses(tags))
}

func (h *TagHandler) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req types.TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.BindingErrors(err))
		return
	}

	tag, err := h.catalog.CreateTag(userID, req.Name)
	if err != nil {
		h.log.WithError(err).Error("failed to create tag")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create tag"})
		return
	}

	c.JSON(http.StatusCreated, types.NewTagResponse(tag))
}
