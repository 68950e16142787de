package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"recipe-app-api/app/server/models"
	"recipe-app-api/app/server/types"
)

func recipeURL(id uint) string {
	return fmt.Sprintf("/recipes/%d/", id)
}

func TestRecipeRequiresAuth(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("user@example.com")
	recipe := env.createRecipe(user, "Sample recipe")

	for _, tc := range []struct {
		method string
		target string
	}{
		{http.MethodGet, "/recipes/"},
		{http.MethodPost, "/recipes/"},
		{http.MethodGet, recipeURL(recipe.ID)},
		{http.MethodPut, recipeURL(recipe.ID)},
		{http.MethodPatch, recipeURL(recipe.ID)},
		{http.MethodDelete, recipeURL(recipe.ID)},
		{http.MethodPost, recipeURL(recipe.ID) + "upload-image/"},
	} {
		rec := env.do(tc.method, tc.target, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, tc.method+" "+tc.target)
	}

	// 没有被匿名请求修改
	var count int64
	require.NoError(t, env.db.Model(&models.Recipe{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRecipeList(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("user@example.com")
	other := env.createUser("other@example.com")

	first := env.createRecipe(user, "First")
	second := env.createRecipe(user, "Second")
	env.createRecipe(other, "Not mine")

	rec := env.do(http.MethodGet, "/recipes/", env.token(user), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	res := decode[[]types.RecipeSummary](t, rec)
	require.Len(t, res, 2)
	assert.Equal(t, second.ID, res[0].ID)
	assert.Equal(t, first.ID, res[1].ID)
	assert.Equal(t, "5.25", res[0].Price)
	assert.Equal(t, 22, res[0].TimeMinutes)
	assert.Empty(t, res[0].Tags)
	assert.NotNil(t, res[0].Tags)
}

func TestRecipeDetail(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("user@example.com")

	recipe := env.createRecipe(user, "Curry")
	tag := env.createTag(user, "Spicy")
	ingredient := env.createIngredient(user, "Rice")
	require.NoError(t, env.db.Model(recipe).Association("Tags").Append(tag))
	require.NoError(t, env.db.Model(recipe).Association("Ingredients").Append(ingredient))

	rec := env.do(http.MethodGet, recipeURL(recipe.ID), env.token(user), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	res := decode[types.RecipeDetail](t, rec)
	assert.Equal(t, "Curry", res.Title)
	assert.Nil(t, res.Image)
	assert.Equal(t, []types.Attribute{{ID: tag.ID, Name: "Spicy"}}, res.Tags)
	assert.Equal(t, []types.Attribute{{ID: ingredient.ID, Name: "Rice"}}, res.Ingredients)
}

func TestRecipeOfOtherUserNotFound(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("user@example.com")
	other := env.createUser("other@example.com")
	recipe := env.createRecipe(other, "Not mine")
	token := env.token(user)

	assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, recipeURL(recipe.ID), token, nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodPatch, recipeURL(recipe.ID), token, map[string]string{"title": "Mine now"}).Code)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodDelete, recipeURL(recipe.ID), token, nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, "/recipes/abc/", token, nil).Code)

	var stored models.Recipe
	require.NoError(t, env.db.First(&stored, "id = ?", recipe.ID).Error)
	assert.Equal(t, "Not mine", stored.Title)
}

func TestRecipeCreate(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("user@example.com")

	rec := env.do(http.MethodPost, "/recipes/", env.token(user), map[string]any{
		"title":        "Chocolate cheesecake",
		"time_minutes": 30,
		"price":        5.99,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	res := decode[types.RecipeSummary](t, rec)
	assert.Equal(t, "5.99", res.Price)
	assert.Equal(t, "", res.Link)

	var recipe models.Recipe
	require.NoError(t, env.db.First(&recipe, "id = ?", res.ID).Error)
	assert.Equal(t, user.ID, recipe.UserID)
	assert.Equal(t, "Chocolate cheesecake", recipe.Title)
	assert.Equal(t, 30, recipe.TimeMinutes)
	assert.Equal(t, "5.99", recipe.Price.StringFixed(2))
}

func TestRecipeCreateWithRelations(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("user@example.com")

	vegan := env.createTag(user, "Vegan")
	dessert := env.createTag(user, "Dessert")
	prawns := env.createIngredient(user, "Prawns")
	ginger := env.createIngredient(user, "Ginger")

	rec := env.do(http.MethodPost, "/recipes/", env.token(user), map[string]any{
		"title":        "Thai prawn red curry",
		"time_minutes": 20,
		"price":        "7.00",
		"tags":         []uint{vegan.ID, dessert.ID},
		"ingredients":  []uint{prawns.ID, ginger.ID},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	res := decode[types.RecipeSummary](t, rec)
	assert.ElementsMatch(t, []uint{vegan.ID, dessert.ID}, res.Tags)
	assert.ElementsMatch(t, []uint{prawns.ID, ginger.ID}, res.Ingredients)

	var recipe models.Recipe
	require.NoError(t, env.db.Preload("Tags").Preload("Ingredients").First(&recipe, "id = ?", res.ID).Error)
	assert.ElementsMatch(t, []uint{vegan.ID, dessert.ID}, recipe.TagIDs())
	assert.ElementsMatch(t, []uint{prawns.ID, ginger.ID}, recipe.IngredientIDs())
}

func TestRecipeCreateRejectsForeignRelations(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("user@example.com")
	other := env.createUser("other@example.com")

	foreignTag := env.createTag(other, "Theirs")
	foreignIngredient := env.createIngredient(other, "Salt")

	rec := env.do(http.MethodPost, "/recipes/", env.token(user), map[string]any{
		"title":        "Sneaky",
		"time_minutes": 5,
		"price":        "1.00",
		"tags":         []uint{foreignTag.ID},
		"ingredients":  []uint{foreignIngredient.ID, 9999},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	fe := decode[types.FieldErrors](t, rec)
	assert.Len(t, fe["tags"], 1)
	assert.Len(t, fe["ingredients"], 2)

	var count int64
	require.NoError(t, env.db.Model(&models.Recipe{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRecipeCreateInvalid(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("user@example.com")
	token := env.token(user)

	for name, tc := range map[string]struct {
		body  map[string]any
		field string
	}{
		"missing title": {map[string]any{"time_minutes": 5, "price": "1.00"}, "title"},
		"blank title":   {map[string]any{"title": "   ", "time_minutes": 5, "price": "1.00"}, "title"},
		"missing time":  {map[string]any{"title": "x", "price": "1.00"}, "time_minutes"},
		"missing price": {map[string]any{"title": "x", "time_minutes": 5}, "price"},
		"price digits":  {map[string]any{"title": "x", "time_minutes": 5, "price": "1000.00"}, "price"},
		"price places":  {map[string]any{"title": "x", "time_minutes": 5, "price": "1.005"}, "price"},
		"wrong type":    {map[string]any{"title": "x", "time_minutes": "soon", "price": "1.00"}, "time_minutes"},
	} {
		t.Run(name, func(t *testing.T) {
			rec := env.do(http.MethodPost, "/recipes/", token, tc.body)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Contains(t, decode[types.FieldErrors](t, rec), tc.field)
		})
	}

	var count int64
	require.NoError(t, env.db.Model(&models.Recipe{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRecipePartialUpdate(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("user@example.com")

	recipe := env.createRecipe(user, "Original")
	oldTag := env.createTag(user, "Old")
	newTag := env.createTag(user, "New")
	ingredient := env.createIngredient(user, "Flour")
	require.NoError(t, env.db.Model(recipe).Association("Tags").Append(oldTag))
	require.NoError(t, env.db.Model(recipe).Association("Ingredients").Append(ingredient))

	rec := env.do(http.MethodPatch, recipeURL(recipe.ID), env.token(user), map[string]any{
		"title": "Renamed",
		"tags":  []uint{newTag.ID},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decode[types.RecipeSummary](t, rec)
	assert.Equal(t, "Renamed", res.Title)
	assert.Equal(t, []uint{newTag.ID}, res.Tags)
	assert.Equal(t, []uint{ingredient.ID}, res.Ingredients)

	var stored models.Recipe
	require.NoError(t, env.db.Preload("Tags").Preload("Ingredients").First(&stored, "id = ?", recipe.ID).Error)
	assert.Equal(t, "Renamed", stored.Title)
	assert.Equal(t, 22, stored.TimeMinutes)
	assert.Equal(t, "5.25", stored.Price.StringFixed(2))
	assert.Equal(t, "http://example.com/recipe.pdf", stored.Link)
	assert.Equal(t, []uint{newTag.ID}, stored.TagIDs())
	assert.Equal(t, []uint{ingredient.ID}, stored.IngredientIDs())

	// 标签本身不会被删除
	var count int64
	require.NoError(t, env.db.Model(&models.Tag{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestRecipeFullUpdateResetsOmittedFields(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("user@example.com")

	recipe := env.createRecipe(user, "Original")
	tag := env.createTag(user, "Tag")
	ingredient := env.createIngredient(user, "Egg")
	require.NoError(t, env.db.Model(recipe).Association("Tags").Append(tag))
	require.NoError(t, env.db.Model(recipe).Association("Ingredients").Append(ingredient))

	rec := env.do(http.MethodPut, recipeURL(recipe.ID), env.token(user), map[string]any{
		"title":        "Spaghetti carbonara",
		"time_minutes": 25,
		"price":        "5.00",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var stored models.Recipe
	require.NoError(t, env.db.Preload("Tags").Preload("Ingredients").First(&stored, "id = ?", recipe.ID).Error)
	assert.Equal(t, "Spaghetti carbonara", stored.Title)
	assert.Equal(t, 25, stored.TimeMinutes)
	assert.Equal(t, "5.00", stored.Price.StringFixed(2))
	assert.Equal(t, "", stored.Link)
	assert.Empty(t, stored.Tags)
	assert.Empty(t, stored.Ingredients)
}

func TestRecipeFullUpdateRequiresFields(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("user@example.com")
	recipe := env.createRecipe(user, "Original")

	rec := env.do(http.MethodPut, recipeURL(recipe.ID), env.token(user), map[string]any{
		"title": "Only title",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	fe := decode[types.FieldErrors](t, rec)
	assert.Contains(t, fe, "time_minutes")
	assert.Contains(t, fe, "price")

	var stored models.Recipe
	require.NoError(t, env.db.First(&stored, "id = ?", recipe.ID).Error)
	assert.Equal(t, "Original", stored.Title)
}

func TestRecipeDelete(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("user@example.com")

	recipe := env.createRecipe(user, "Gone soon")
	tag := env.createTag(user, "Keep me")
	require.NoError(t, env.db.Model(recipe).Association("Tags").Append(tag))

	rec := env.do(http.MethodDelete, recipeURL(recipe.ID), env.token(user), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.Recipe{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, env.db.Table("recipe_tags").Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, env.db.Model(&models.Tag{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRecipePartialUpdateBlankTitle(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("user@example.com")
	recipe := env.createRecipe(user, "Original")

	rec := env.do(http.MethodPatch, recipeURL(recipe.ID), env.token(user), map[string]any{"title": " \t "})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"This field may not be blank."}, decode[types.FieldErrors](t, rec)["title"])

	var stored models.Recipe
	require.NoError(t, env.db.First(&stored, "id = ?", recipe.ID).Error)
	assert.Equal(t, "Original", stored.Title)
}
