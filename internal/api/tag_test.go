package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrybase/recipebox/internal/models"
	"github.com/pantrybase/recipebox/internal/types"
)

func TestListTagsRequiresAuth(t *testing.T) {
	engine, _, _ := setupTest(t)

	w := doJSON(t, engine, "GET", "/recipe/tags/", nil, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListTags(t *testing.T) {
	engine, db, _ := setupTest(t)
	user, token := createUserAndToken(t, db, "tags@gmail.com", "password123")

	require.NoError(t, db.Create(&models.Tag{Name: "Vegan", UserID: user.ID}).Error)
	require.NoError(t, db.Create(&models.Tag{Name: "Dessert", UserID: user.ID}).Error)

	w := doJSON(t, engine, "GET", "/recipe/tags/", nil, token)

	assert.Equal(t, http.StatusOK, w.Code)

	var body []types.TagResponse
	decodeBody(t, w, &body)
	require.Len(t, body, 2)
	// Ordered by name descending.
	assert.Equal(t, "Vegan", body[0].Name)
	assert.Equal(t, "Dessert", body[1].Name)
}

func TestListTagsLimitedToOwner(t *testing.T) {
	engine, db, _ := setupTest(t)
	user, token := createUserAndToken(t, db, "a@gmail.com", "password123")
	other, _ := createUserAndToken(t, db, "b@gmail.com", "password123")

	require.NoError(t, db.Create(&models.Tag{Name: "Mine", UserID: user.ID}).Error)
	require.NoError(t, db.Create(&models.Tag{Name: "Theirs", UserID: other.ID}).Error)

	w := doJSON(t, engine, "GET", "/recipe/tags/", nil, token)

	assert.Equal(t, http.StatusOK, w.Code)

	var body []types.TagResponse
	decodeBody(t, w, &body)
	require.Len(t, body, 1)
	assert.Equal(t, "Mine", body[0].Name)
}

func TestCreateTag(t *testing.T) {
	engine, db, _ := setupTest(t)
	user, token := createUserAndToken(t, db, "tags@gmail.com", "password123")

	w := doJSON(t, engine, "POST", "/recipe/tags/", map[string]interface{}{"name": "Comfort Food"}, token)

	assert.Equal(t, http.StatusCreated, w.Code)

	var tag models.Tag
	require.NoError(t, db.Where("name = ?", "Comfort Food").First(&tag).Error)
	assert.Equal(t, user.ID, tag.UserID)
}

func TestCreateTagBlankName(t *testing.T) {
	engine, db, _ := setupTest(t)
	_, token := createUserAndToken(t, db, "tags@gmail.com", "password123")

	w := doJSON(t, engine, "POST", "/recipe/tags/", map[string]interface{}{"name": ""}, token)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string][]string
	decodeBody(t, w, &body)
	assert.Contains(t, body, "name")
}

func TestListTagsAssignedOnly(t *testing.T) {
	engine, db, _ := setupTest(t)
	user, token := createUserAndToken(t, db, "tags@gmail.com", "password123")

	assigned := models.Tag{Name: "Breakfast", UserID: user.ID}
	unassigned := models.Tag{Name: "Lunch", UserID: user.ID}
	require.NoError(t, db.Create(&assigned).Error)
	require.NoError(t, db.Create(&unassigned).Error)

	recipe := models.Recipe{
		Title:       "Coriander eggs on toast",
		UserID:      user.ID,
		TimeMinutes: 10,
		Price:       models.Price(500),
		Tags:        []models.Tag{assigned},
	}
	require.NoError(t, db.Create(&recipe).Error)

	w := doJSON(t, engine, "GET", "/recipe/tags/?assigned_only=1", nil, token)

	assert.Equal(t, http.StatusOK, w.Code)

	var body []types.TagResponse
	decodeBody(t, w, &body)
	require.Len(t, body, 1)
	assert.Equal(t, "Breakfast", body[0].Name)
}

func TestListTagsAssignedOnlyDistinct(t *testing.T) {
	engine, db, _ := setupTest(t)
	user, token := createUserAndToken(t, db, "tags@gmail.com", "password123")

	tag := models.Tag{Name: "Breakfast", UserID: user.ID}
	require.NoError(t, db.Create(&tag).Error)

	for _, title := range []string{"Pancakes", "Porridge"} {
		recipe := models.Recipe{
			Title:       title,
			UserID:      user.ID,
			TimeMinutes: 5,
			Price:       models.Price(300),
			Tags:        []models.Tag{tag},
		}
		require.NoError(t, db.Create(&recipe).Error)
	}

	w := doJSON(t, engine, "GET", "/recipe/tags/?assigned_only=1", nil, token)

	var body []types.TagResponse
	decodeBody(t, w, &body)
	assert.Len(t, body, 1)
}
