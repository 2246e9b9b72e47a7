package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pantrybase/recipebox/internal/database"
	"github.com/pantrybase/recipebox/internal/models"
	"github.com/pantrybase/recipebox/internal/router"
	"github.com/pantrybase/recipebox/internal/service"
)

const testJWTSecret = "test-jwt-secret"

// setupTest builds the full router against an in-memory database with
// image files stored in a per-test temp dir.
func setupTest(t *testing.T) (*gin.Engine, *gorm.DB, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	log := logrus.New()
	log.SetOutput(io.Discard)

	mediaDir := t.TempDir()
	engine := router.New(router.Config{
		Logger:  log,
		Users:   service.NewUserService(db, testJWTSecret),
		Catalog: service.NewCatalogService(db),
		Recipes: service.NewRecipeService(db, service.NewLocalStorage(mediaDir)),
	})
	return engine, db, mediaDir
}

func createUserAndToken(t *testing.T, db *gorm.DB, email, password string) (*models.User, string) {
	t.Helper()
	users := service.NewUserService(db, testJWTSecret)
	user, err := users.Create(email, "Test User", password)
	require.NoError(t, err)
	token, err := users.GenerateToken(user.ID)
	require.NoError(t, err)
	return user, token
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
