package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"recipe-app-api/app/server/models"
	"recipe-app-api/app/server/types"
)

func TestAttributeRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	for _, target := range []string{"/tags/", "/ingredients/"} {
		rec := env.do(http.MethodGet, target, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)

		rec = env.do(http.MethodPost, target, "", map[string]string{"name": "Vegan"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)

		rec = env.do(http.MethodGet, target, "not-a-token", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
	}
}

func TestTagListOrderedByNameDesc(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("user@example.com")

	env.createTag(user, "Dessert")
	env.createTag(user, "Vegan")
	env.createTag(user, "Breakfast")

	rec := env.do(http.MethodGet, "/tags/", env.token(user), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	res := decode[[]types.Attribute](t, rec)
	require.Len(t, res, 3)
	assert.Equal(t, "Vegan", res[0].Name)
	assert.Equal(t, "Dessert", res[1].Name)
	assert.Equal(t, "Breakfast", res[2].Name)
}

func TestAttributeListLimitedToCaller(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("user@example.com")
	other := env.createUser("other@example.com")

	env.createTag(other, "Fruity")
	tag := env.createTag(user, "Comfort Food")
	env.createIngredient(other, "Vinegar")
	ingredient := env.createIngredient(user, "Kale")

	rec := env.do(http.MethodGet, "/tags/", env.token(user), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []types.Attribute{{ID: tag.ID, Name: "Comfort Food"}}, decode[[]types.Attribute](t, rec))

	rec = env.do(http.MethodGet, "/ingredients/", env.token(user), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []types.Attribute{{ID: ingredient.ID, Name: "Kale"}}, decode[[]types.Attribute](t, rec))
}

func TestAttributeListEmpty(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("user@example.com")

	rec := env.do(http.MethodGet, "/ingredients/", env.token(user), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestAttributeCreate(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("user@example.com")

	rec := env.do(http.MethodPost, "/tags/", env.token(user), map[string]string{"name": "Simple"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	res := decode[types.Attribute](t, rec)
	assert.Equal(t, "Simple", res.Name)

	var tag models.Tag
	require.NoError(t, env.db.First(&tag, "id = ?", res.ID).Error)
	assert.Equal(t, user.ID, tag.UserID)
	assert.Equal(t, "Simple", tag.Name)

	rec = env.do(http.MethodPost, "/ingredients/", env.token(user), map[string]string{"name": "Cabbage"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var ingredient models.Ingredient
	require.NoError(t, env.db.First(&ingredient, "id = ?", decode[types.Attribute](t, rec).ID).Error)
	assert.Equal(t, user.ID, ingredient.UserID)
}

func TestAttributeCreateInvalid(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("user@example.com")
	token := env.token(user)

	for _, name := range []string{"", "   ", " \t\n", strings.Repeat("a", 51)} {
		rec := env.do(http.MethodPost, "/tags/", token, map[string]string{"name": name})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode[types.FieldErrors](t, rec), "name")

		rec = env.do(http.MethodPost, "/ingredients/", token, map[string]string{"name": name})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	}

	var count int64
	require.NoError(t, env.db.Model(&models.Tag{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, env.db.Model(&models.Ingredient{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAttributeCreateTrimsName(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("user@example.com")

	rec := env.do(http.MethodPost, "/tags/", env.token(user), map[string]string{"name": "  Vegan "})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Vegan", decode[types.Attribute](t, rec).Name)
}
