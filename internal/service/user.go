package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pantrybase/recipebox/internal/models"
	"github.com/pantrybase/recipebox/internal/types"
)

var (
	// ErrEmailRequired is returned when a user is created without an
	// email address.
	ErrEmailRequired = errors.New("user must have an email address")
	// ErrEmailTaken is returned when the normalized address collides
	// with an existing account.
	ErrEmailTaken = errors.New("user with this email already exists")
	// ErrInvalidCredentials is deliberately uniform across unknown
	// account, wrong password and inactive account.
	ErrInvalidCredentials = errors.New("unable to authenticate with provided credentials")
	// ErrInvalidToken covers expired, malformed and badly signed tokens.
	ErrInvalidToken = errors.New("invalid token")
)

const tokenTTL = 24 * time.Hour

// UserService owns account creation, authentication and token
// issuing/validation.
type UserService struct {
	db        *gorm.DB
	jwtSecret string
}

func NewUserService(db *gorm.DB, jwtSecret string) *UserService {
	return &UserService{db: db, jwtSecret: jwtSecret}
}

// NormalizeEmail lowercases the domain part of an address, leaving the
// local part as provided.
func NormalizeEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

// Create persists a new account with a hashed password. Uniqueness is
// checked case-insensitively on the whole address so that A@B.COM and
// a@b.com resolve to the same identity.
func (s *UserService) Create(email, name, password string) (*models.User, error) {
	if strings.TrimSpace(email) == "" {
		return nil, ErrEmailRequired
	}
	email = NormalizeEmail(email)

	var count int64
	if err := s.db.Model(&models.User{}).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("checking email uniqueness: %w", err)
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := models.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return &user, nil
}

// CreateSuperuser creates an account with the staff and superuser
// flags set.
func (s *UserService) CreateSuperuser(email, password string) (*models.User, error) {
	user, err := s.Create(email, "", password)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{"is_staff": true, "is_superuser": true}
	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("promoting user: %w", err)
	}
	user.IsStaff = true
	user.IsSuperuser = true
	return user, nil
}

// Authenticate returns the account matching email and password. The
// error never discloses whether the account exists.
func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	var user models.User
	err := s.db.
		Where("LOWER(email) = ?", strings.ToLower(NormalizeEmail(email))).
		First(&user).Error
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// Get returns the account by id.
func (s *UserService) Get(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Update applies a partial profile update. A present password is
// re-hashed; omitted fields are untouched.
func (s *UserService) Update(userID uint, req types.UpdateMeRequest) (*models.User, error) {
	user, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Email != nil {
		email := NormalizeEmail(*req.Email)
		if strings.TrimSpace(email) == "" {
			return nil, ErrEmailRequired
		}
		var count int64
		if err := s.db.Model(&models.User{}).
			Where("LOWER(email) = ? AND id <> ?", strings.ToLower(email), userID).
			Count(&count).Error; err != nil {
			return nil, fmt.Errorf("checking email uniqueness: %w", err)
		}
		if count > 0 {
			return nil, ErrEmailTaken
		}
		updates["email"] = email
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		updates["password_hash"] = string(hash)
	}

	if len(updates) == 0 {
		return user, nil
	}
	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}
	return user, nil
}

// GenerateToken issues a signed JWT for the account.
func (s *UserService) GenerateToken(userID uint) (string, error) {
	now := time.Now()
	claims := types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
		UserID: userID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken parses and verifies a bearer token.
func (s *UserService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
