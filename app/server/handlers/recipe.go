package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"recipe-app-api/app/server/middlewares"
	"recipe-app-api/app/server/models"
	"recipe-app-api/app/server/types"
	"recipe-app-api/app/server/utils"
)

func (a *App) recipeSummary(recipe *models.Recipe) types.RecipeSummary {
	return types.RecipeSummary{
		ID:          recipe.ID,
		Title:       recipe.Title,
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price.StringFixed(2),
		Link:        recipe.Link,
		Tags:        recipe.TagIDs(),
		Ingredients: recipe.IngredientIDs(),
	}
}

func (a *App) recipeDetail(recipe *models.Recipe) types.RecipeDetail {
	res := types.RecipeDetail{
		ID:          recipe.ID,
		Title:       recipe.Title,
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price.StringFixed(2),
		Link:        recipe.Link,
		Tags:        make([]types.Attribute, 0, len(recipe.Tags)),
		Ingredients: make([]types.Attribute, 0, len(recipe.Ingredients)),
	}
	if recipe.Image != "" {
		res.Image = utils.P(a.media.URL(recipe.Image))
	}
	for i := range recipe.Tags {
		res.Tags = append(res.Tags, attributeView(recipe.Tags[i].Base()))
	}
	for i := range recipe.Ingredients {
		res.Ingredients = append(res.Ingredients, attributeView(recipe.Ingredients[i].Base()))
	}
	return res
}

func preloadOrdered(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

// recipeFind 取出调用者拥有的菜谱及其关联
func (a *App) recipeFind(ctx context.Context, ownerID uint, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := a.db.WithContext(ctx).
		Scopes(models.OwnedBy(ownerID)).
		Preload("Tags", preloadOrdered).
		Preload("Ingredients", preloadOrdered).
		First(&recipe, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// recipeLoad 读取路径中的菜谱，出错时已经写好了响应
func (a *App) recipeLoad(c echo.Context) (*models.User, *models.Recipe, error) {
	caller := middlewares.Caller(c)
	if caller == nil {
		return nil, nil, a.er(c, http.StatusUnauthorized)
	}

	id, ok := parseID(c)
	if !ok {
		return nil, nil, a.er(c, http.StatusNotFound)
	}

	recipe, err := a.recipeFind(c.Request().Context(), caller.ID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, a.er(c, http.StatusNotFound)
		}
		a.l.Error("failed to get recipe", zap.Uint("id", id), zap.Error(err))
		return nil, nil, a.er(c, http.StatusInternalServerError)
	}

	return caller, recipe, nil
}

// recipeMapFields 把已校验的请求写入模型，请求中必须已有全部标量字段
func (a *App) recipeMapFields(req *types.RecipeInput, recipe *models.Recipe) {
	recipe.Title = *req.Title
	recipe.TimeMinutes = *req.TimeMinutes
	recipe.Price = *req.Price
	if req.Link != nil {
		recipe.Link = *req.Link
	} else {
		recipe.Link = ""
	}
}

// recipeTrimSpace 去掉文本字段首尾的空白，只有空白等同于空
func recipeTrimSpace(req *types.RecipeInput) {
	if req.Title != nil {
		req.Title = utils.P(strings.TrimSpace(*req.Title))
	}
	if req.Link != nil {
		req.Link = utils.P(strings.TrimSpace(*req.Link))
	}
}

// recipeFillMissing 用现有值补全部分更新时缺少的字段
func (a *App) recipeFillMissing(req *types.RecipeInput, recipe *models.Recipe) {
	if req.Title == nil {
		req.Title = utils.P(recipe.Title)
	}
	if req.TimeMinutes == nil {
		req.TimeMinutes = utils.P(recipe.TimeMinutes)
	}
	if req.Price == nil {
		req.Price = utils.P(recipe.Price)
	}
	if req.Link == nil {
		req.Link = utils.P(recipe.Link)
	}
}

// recipeRelations 校验标签和原料 id ，nil 表示不修改对应的关联
func (a *App) recipeRelations(ctx context.Context, ownerID uint, req *types.RecipeInput, fe types.FieldErrors) (tags []models.Tag, ingredients []models.Ingredient, err error) {
	if req.Tags != nil {
		var missing []uint
		if tags, missing, err = ownedByIDs[models.Tag](ctx, a, ownerID, *req.Tags); err != nil {
			return nil, nil, err
		}
		for _, id := range missing {
			fe.Add("tags", invalidPKMessage(id))
		}
	}

	if req.Ingredients != nil {
		var missing []uint
		if ingredients, missing, err = ownedByIDs[models.Ingredient](ctx, a, ownerID, *req.Ingredients); err != nil {
			return nil, nil, err
		}
		for _, id := range missing {
			fe.Add("ingredients", invalidPKMessage(id))
		}
	}

	return tags, ingredients, nil
}

// replaceAssociation 替换多对多关联，空列表表示清空
func replaceAssociation[M attribute](tx *gorm.DB, recipe *models.Recipe, name string, values []M) error {
	association := tx.Model(recipe).Association(name)
	if len(values) == 0 {
		return association.Clear()
	}
	return association.Replace(values)
}

func (a *App) RecipeList(c echo.Context) error {
	caller := middlewares.Caller(c)
	if caller == nil {
		return a.er(c, http.StatusUnauthorized)
	}

	rctx := c.Request().Context()

	var recipes []models.Recipe
	if err := a.db.WithContext(rctx).
		Scopes(models.OwnedBy(caller.ID)).
		Preload("Tags", preloadOrdered).
		Preload("Ingredients", preloadOrdered).
		Order("id DESC").
		Find(&recipes).Error; err != nil {
		a.l.Error("failed to get recipe list", zap.Uint("user", caller.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	res := make([]types.RecipeSummary, 0, len(recipes))
	for i := range recipes {
		res = append(res, a.recipeSummary(&recipes[i]))
	}

	return c.JSON(http.StatusOK, res)
}

func (a *App) RecipeInfoGet(c echo.Context) error {
	_, recipe, err := a.recipeLoad(c)
	if recipe == nil {
		return err
	}

	return c.JSON(http.StatusOK, a.recipeDetail(recipe))
}

func (a *App) RecipeCreate(c echo.Context) error {
	caller := middlewares.Caller(c)
	if caller == nil {
		return a.er(c, http.StatusUnauthorized)
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var req types.RecipeInput
	if err := c.Bind(&req); err != nil {
		return a.erFields(c, bindErrorFields(err))
	}
	recipeTrimSpace(&req)
	fe := a.validate(&req)
	if fe == nil {
		fe = types.FieldErrors{}
	}

	// 检查关联，不会隐式创建标签或原料
	tags, ingredients, err := a.recipeRelations(rctx, caller.ID, &req, fe)
	if err != nil {
		a.l.Error("failed to validate recipe relations", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	if len(fe) > 0 {
		return a.erFields(c, fe)
	}

	// 创建
	recipe := models.Recipe{
		UserID:      caller.ID,
		Tags:        tags,
		Ingredients: ingredients,
	}
	a.recipeMapFields(&req, &recipe)

	if err = a.db.WithContext(rctx).Create(&recipe).Error; err != nil {
		a.l.Error("failed to create recipe", zap.Uint("user", caller.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusCreated, a.recipeSummary(&recipe))
}

// recipeSave 处理 PUT 和 PATCH
func (a *App) recipeSave(c echo.Context, partial bool) error {
	caller, recipe, err := a.recipeLoad(c)
	if recipe == nil {
		return err
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var req types.RecipeInput
	if err = c.Bind(&req); err != nil {
		return a.erFields(c, bindErrorFields(err))
	}
	recipeTrimSpace(&req)

	if partial {
		a.recipeFillMissing(&req, recipe)
	} else {
		// 完整更新时，没有提交的关联视为清空
		if req.Tags == nil {
			req.Tags = &[]uint{}
		}
		if req.Ingredients == nil {
			req.Ingredients = &[]uint{}
		}
	}

	fe := a.validate(&req)
	if fe == nil {
		fe = types.FieldErrors{}
	}

	tags, ingredients, err := a.recipeRelations(rctx, caller.ID, &req, fe)
	if err != nil {
		a.l.Error("failed to validate recipe relations", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	if len(fe) > 0 {
		return a.erFields(c, fe)
	}

	a.recipeMapFields(&req, recipe)

	// 更新字段和关联放在同一个事务里
	if err = a.db.WithContext(rctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(recipe).Updates(map[string]any{
			"title":        recipe.Title,
			"time_minutes": recipe.TimeMinutes,
			"price":        recipe.Price,
			"link":         recipe.Link,
		}).Error; err != nil {
			return fmt.Errorf("update recipe: %w", err)
		}

		if req.Tags != nil {
			if err := replaceAssociation(tx, recipe, "Tags", tags); err != nil {
				return fmt.Errorf("replace tags: %w", err)
			}
		}
		if req.Ingredients != nil {
			if err := replaceAssociation(tx, recipe, "Ingredients", ingredients); err != nil {
				return fmt.Errorf("replace ingredients: %w", err)
			}
		}

		return nil
	}); err != nil {
		a.l.Error("failed to update recipe", zap.Uint("id", recipe.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 重新读取，保证返回的是数据库中的状态
	if recipe, err = a.recipeFind(rctx, caller.ID, recipe.ID); err != nil {
		a.l.Error("failed to reload recipe", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, a.recipeSummary(recipe))
}

func (a *App) RecipeUpdate(c echo.Context) error {
	return a.recipeSave(c, false)
}

func (a *App) RecipePartialUpdate(c echo.Context) error {
	return a.recipeSave(c, true)
}

func (a *App) RecipeDelete(c echo.Context) error {
	_, recipe, err := a.recipeLoad(c)
	if recipe == nil {
		return err
	}

	rctx := c.Request().Context()

	// 只删除关联关系，标签和原料保留
	if err = a.db.WithContext(rctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(recipe).Association("Tags").Clear(); err != nil {
			return fmt.Errorf("clear tags: %w", err)
		}
		if err := tx.Model(recipe).Association("Ingredients").Clear(); err != nil {
			return fmt.Errorf("clear ingredients: %w", err)
		}
		if err := tx.Delete(recipe).Error; err != nil {
			return fmt.Errorf("delete recipe: %w", err)
		}
		return nil
	}); err != nil {
		a.l.Error("failed to delete recipe", zap.Uint("id", recipe.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	a.removeMediaFile(recipe.Image)

	return c.NoContent(http.StatusNoContent)
}

// removeMediaFile 清理不再被引用的文件，失败只记录日志
func (a *App) removeMediaFile(rel string) {
	if rel == "" {
		return
	}
	if err := a.media.Remove(rel); err != nil {
		a.l.Error("failed to remove media file", zap.String("path", rel), zap.Error(err))
	}
}
