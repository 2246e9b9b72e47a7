package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pantrybase/recipebox/internal/api"
	"github.com/pantrybase/recipebox/internal/middleware"
	"github.com/pantrybase/recipebox/internal/service"
	"github.com/pantrybase/recipebox/internal/types"
)

// Config carries everything the route table needs.
type Config struct {
	Logger         *logrus.Logger
	Users          *service.UserService
	Catalog        *service.CatalogService
	Recipes        *service.RecipeService
	RateLimiter    *middleware.RateLimiter
	AllowedOrigins []string
}

// New configures the application routes
func New(cfg Config) *gin.Engine {
	types.InitValidation()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(cfg.Logger))
	router.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	// Unmatched methods on a known path must answer 405, not 404. On
	// protected paths the credential check still comes first, so an
	// anonymous caller sees 401 rather than 405.
	router.HandleMethodNotAllowed = true
	authCheck := middleware.Auth(cfg.Users)
	router.NoMethod(func(c *gin.Context) {
		if requiresAuth(c.Request.URL.Path) {
			authCheck(c)
			if c.IsAborted() {
				return
			}
		}
		c.JSON(http.StatusMethodNotAllowed, gin.H{"detail": "method not allowed"})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	userHandler := api.NewUserHandler(cfg.Users, cfg.Logger)
	userHandler.RegisterRoutes(router, cfg.RateLimiter)

	authed := router.Group("/recipe", middleware.Auth(cfg.Users))
	{
		api.NewTagHandler(cfg.Catalog, cfg.Logger).RegisterRoutes(authed.Group("/tags"))
		api.NewIngredientHandler(cfg.Catalog, cfg.Logger).RegisterRoutes(authed.Group("/ingredients"))
		api.NewRecipeHandler(cfg.Recipes, cfg.Logger).RegisterRoutes(authed.Group("/recipes"))
	}

	return router
}

func requiresAuth(path string) bool {
	return strings.HasPrefix(path, "/recipe/") || strings.HasPrefix(path, "/users/me/")
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
		c.AllowCredentials = false
	} else {
		c.AllowOrigins = origins
	}
	return c
}
