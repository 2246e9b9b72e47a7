package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pantrybase/recipebox/internal/middleware"
	"github.com/pantrybase/recipebox/internal/service"
	"github.com/pantrybase/recipebox/internal/types"
)

// UserHandler serves registration, login and the profile endpoint.
type UserHandler struct {
	users *service.UserService
	log   *logrus.Logger
}

func NewUserHandler(users *service.UserService, log *logrus.Logger) *UserHandler {
	return &UserHandler{users: users, log: log}
}

// RegisterRoutes wires the /users/ surface. The token endpoint gets
// the rate limiter when one is configured.
func (h *UserHandler) RegisterRoutes(router *gin.Engine, limiter *middleware.RateLimiter) {
	users := router.Group("/users")
	{
		users.POST("/", h.Create)

		token := users.Group("/token")
		if limiter != nil {
			token.Use(limiter.Middleware())
		}
		token.POST("/", h.CreateToken)

		me := users.Group("/me", middleware.Auth(h.users))
		{
			me.GET("/", h.Me)
			me.PATCH("/", h.UpdateMe)
		}
	}
}

func (h *UserHandler) Create(c *gin.Context) {
	var req types.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.BindingErrors(err))
		return
	}
	if req.Password1 != req.Password2 {
		c.JSON(http.StatusBadRequest, types.NewFieldError("password2", "passwords do not match"))
		return
	}

	user, err := h.users.Create(req.Email, req.Name, req.Password1)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailRequired):
			c.JSON(http.StatusBadRequest, types.NewFieldError("email", "this field is required"))
		case errors.Is(err, service.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, types.NewFieldError("email", err.Error()))
		default:
			h.log.WithError(err).Error("failed to create user")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		}
		return
	}

	c.JSON(http.StatusCreated, types.NewUserResponse(user))
}

// CreateToken issues a bearer token. Missing fields, unknown accounts
// and wrong passwords all yield the same 400.
func (h *UserHandler) CreateToken(c *gin.Context) {
	var req types.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.BindingErrors(err))
		return
	}

	user, err := h.users.Authenticate(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewFieldError(types.NonFieldErrors, service.ErrInvalidCredentials.Error()))
		return
	}

	token, err := h.users.GenerateToken(user.ID)
	if err != nil {
		h.log.WithError(err).Error("failed to generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, types.TokenResponse{Token: token})
}

func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	user, err := h.users.Get(userID)
	if err != nil {
		h.log.WithError(err).Error("failed to load profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, types.NewUserResponse(user))
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req types.UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.BindingErrors(err))
		return
	}

	user, err := h.users.Update(userID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailRequired):
			c.JSON(http.StatusBadRequest, types.NewFieldError("email", "this field may not be blank"))
		case errors.Is(err, service.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, types.NewFieldError("email", err.Error()))
		default:
			h.log.WithError(err).Error("failed to update profile")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		}
		return
	}

	c.JSON(http.StatusOK, types.NewUserResponse(user))
}
