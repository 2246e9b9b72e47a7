package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/pantrybase/recipebox/config"
	"github.com/pantrybase/recipebox/internal/middleware"
	"github.com/pantrybase/recipebox/internal/router"
	"github.com/pantrybase/recipebox/internal/service"
)

// Server represents the HTTP server
type Server struct {
	http *http.Server
	log  *logrus.Logger
}

// New wires services, handlers and the HTTP server together.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, log *logrus.Logger) (*Server, error) {
	storage, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}

	users := service.NewUserService(db, cfg.JWTSecret)
	catalog := service.NewCatalogService(db)
	recipes := service.NewRecipeService(db, storage)

	var limiter *middleware.RateLimiter
	if redisClient != nil {
		limiter = middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
			KeyPrefix: "login",
		})
	}

	engine := router.New(router.Config{
		Logger:         log,
		Users:          users,
		Catalog:        catalog,
		Recipes:        recipes,
		RateLimiter:    limiter,
		AllowedOrigins: cfg.CORSOrigins,
	})

	return &Server{
		http: &http.Server{
			Addr:    fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
			Handler: engine,
		},
		log: log,
	}, nil
}

// Start runs the server until Shutdown is called.
func (s *Server) Start() error {
	s.log.WithField("addr", s.http.Addr).Info("starting server")
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func newStorage(cfg *config.Config) (service.ImageStorage, error) {
	switch cfg.StorageBackend {
	case config.StorageS3:
		s3cfg, err := config.NewS3Config(context.Background(), cfg.S3Bucket)
		if err != nil {
			return nil, fmt.Errorf("initializing S3 storage: %w", err)
		}
		return service.NewS3Storage(s3cfg), nil
	default:
		return service.NewLocalStorage(cfg.MediaRoot), nil
	}
}
