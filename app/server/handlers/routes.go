package handlers

import (
	"github.com/labstack/echo/v4"
	"recipe-app-api/app/server/middlewares"
)

func (a *App) Register(e *echo.Echo) {
	e.GET("/healthz", a.HealthCheck)

	// 上传的文件
	e.Static(a.media.URLPrefix(), a.media.Root())

	// 不需要认证
	e.POST("/users/", a.UserCreate)
	e.POST("/users/token/", a.UserToken)

	// 以下都需要认证
	authed := []echo.MiddlewareFunc{
		middlewares.TokenAuth(a.jwt),
		middlewares.UserAuth(a.db, a.rdb, a.l),
	}

	e.GET("/users/me/", a.UserInfoGetSelf, authed...)
	e.PATCH("/users/me/", a.UserInfoUpdateSelf, authed...)
	e.DELETE("/users/me/", a.UserDeleteSelf, authed...)
	e.POST("/users/:id/promote/", a.UserPromote, authed...)

	e.GET("/tags/", a.TagList, authed...)
	e.POST("/tags/", a.TagCreate, authed...)

	e.GET("/ingredients/", a.IngredientList, authed...)
	e.POST("/ingredients/", a.IngredientCreate, authed...)

	e.GET("/recipes/", a.RecipeList, authed...)
	e.POST("/recipes/", a.RecipeCreate, authed...)
	e.GET("/recipes/:id/", a.RecipeInfoGet, authed...)
	e.PUT("/recipes/:id/", a.RecipeUpdate, authed...)
	e.PATCH("/recipes/:id/", a.RecipePartialUpdate, authed...)
	e.DELETE("/recipes/:id/", a.RecipeDelete, authed...)
	e.POST("/recipes/:id/upload-image/", a.RecipeUploadImage, authed...)
}
