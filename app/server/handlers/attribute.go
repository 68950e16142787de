package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"recipe-app-api/app/server/middlewares"
	"recipe-app-api/app/server/models"
	"recipe-app-api/app/server/types"
)

// 标签和原料的接口完全相同，只有列表和创建

func attributeView(base *models.Attribute) types.Attribute {
	return types.Attribute{
		ID:   base.ID,
		Name: base.Name,
	}
}

func attributeList[M attribute, P attributePtr[M]](a *App, c echo.Context) error {
	caller := middlewares.Caller(c)
	if caller == nil {
		return a.er(c, http.StatusUnauthorized)
	}

	rctx := c.Request().Context()

	var items []M
	if err := a.db.WithContext(rctx).
		Scopes(models.OwnedBy(caller.ID)).
		Order("name DESC").
		Find(&items).Error; err != nil {
		a.l.Error("failed to get attribute list", zap.Uint("user", caller.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	res := make([]types.Attribute, 0, len(items))
	for i := range items {
		res = append(res, attributeView(P(&items[i]).Base()))
	}

	return c.JSON(http.StatusOK, res)
}

func attributeCreate[M attribute, P attributePtr[M]](a *App, c echo.Context, build func(name string, userID uint) P) error {
	caller := middlewares.Caller(c)
	if caller == nil {
		return a.er(c, http.StatusUnauthorized)
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var req types.AttributeInput
	if err := c.Bind(&req); err != nil {
		return a.erFields(c, bindErrorFields(err))
	}
	req.Name = strings.TrimSpace(req.Name)
	if fe := a.validate(&req); fe != nil {
		return a.erFields(c, fe)
	}

	// 创建
	item := build(req.Name, caller.ID)
	if err := a.db.WithContext(rctx).Create(item).Error; err != nil {
		a.l.Error("failed to create attribute", zap.Uint("user", caller.ID), zap.String("name", req.Name), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusCreated, attributeView(item.Base()))
}

func (a *App) TagList(c echo.Context) error {
	return attributeList[models.Tag](a, c)
}

func (a *App) TagCreate(c echo.Context) error {
	return attributeCreate[models.Tag](a, c, models.NewTag)
}

func (a *App) IngredientList(c echo.Context) error {
	return attributeList[models.Ingredient](a, c)
}

func (a *App) IngredientCreate(c echo.Context) error {
	return attributeCreate[models.Ingredient](a, c, models.NewIngredient)
}
