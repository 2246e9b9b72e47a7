package integration

import (
	"context"
	"fmt"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pantrybase/recipebox/internal/database"
	"github.com/pantrybase/recipebox/internal/models"
	"github.com/pantrybase/recipebox/internal/service"
	"github.com/pantrybase/recipebox/internal/types"
)

// setupPostgres starts a containerized PostgreSQL instance and returns a
// migrated connection. Tests are skipped when docker is unavailable.
func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not installed, skipping container-based test")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "postpass",
				"POSTGRES_DB":       "recipebox_test",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections"),
			).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "failed to start container")
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := container.Terminate(ctx); err != nil {
			t.Errorf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	mappedPort, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=postgres password=postpass dbname=recipebox_test sslmode=disable",
		host, mappedPort.Port())

	var db *gorm.DB
	// The server can accept connections slightly after the log line.
	for attempt := 0; attempt < 10; attempt++ {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err, "failed to connect to database")
	require.NoError(t, database.Migrate(db))

	return db
}

func TestUserLifecycleOnPostgres(t *testing.T) {
	db := setupPostgres(t)
	users := service.NewUserService(db, "test-jwt-secret")

	created, err := users.Create("Alice@EXAMPLE.COM", "Alice", "password123")
	require.NoError(t, err)
	assert.Equal(t, "Alice@example.com", created.Email)

	_, err = users.Create("alice@example.com", "Impostor", "password123")
	assert.ErrorIs(t, err, service.ErrEmailTaken)

	authed, err := users.Authenticate("alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, authed.ID)

	token, err := users.GenerateToken(created.ID)
	require.NoError(t, err)
	claims, err := users.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.UserID)
}

func TestRecipeLifecycleOnPostgres(t *testing.T) {
	db := setupPostgres(t)
	users := service.NewUserService(db, "test-jwt-secret")
	catalog := service.NewCatalogService(db)
	recipes := service.NewRecipeService(db, service.NewLocalStorage(t.TempDir()))

	owner, err := users.Create("cook@example.com", "Cook", "password123")
	require.NoError(t, err)

	tag, err := catalog.CreateTag(owner.ID, "Dessert")
	require.NoError(t, err)
	ingredient, err := catalog.CreateIngredient(owner.ID, "Chocolate")
	require.NoError(t, err)

	price := models.Price(550)
	timeMinutes := uint(30)
	created, err := recipes.Create(owner.ID, types.CreateRecipeRequest{
		Title:       "Chocolate cheesecake",
		TimeMinutes: &timeMinutes,
		Price:       &price,
		Tags:        []uint{tag.ID},
		Ingredients: []uint{ingredient.ID},
	})
	require.NoError(t, err)

	// The price survives the round trip through the decimal column.
	fetched, err := recipes.Get(owner.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Price(550), fetched.Price)
	require.Len(t, fetched.Tags, 1)
	assert.Equal(t, "Dessert", fetched.Tags[0].Name)

	listed, err := recipes.List(owner.ID, service.RecipeFilter{TagIDs: []uint{tag.ID}})
	require.NoError(t, err)
	require.Len(t, listed, 1)

	listed, err = recipes.List(owner.ID, service.RecipeFilter{TagIDs: []uint{tag.ID + 100}})
	require.NoError(t, err)
	assert.Empty(t, listed)

	require.NoError(t, recipes.Delete(context.Background(), owner.ID, created.ID))
	_, err = recipes.Get(owner.ID, created.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}
