package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"recipe-app-api/app/server/constants"
	"recipe-app-api/app/server/identity"
	"recipe-app-api/app/server/middlewares"
	"recipe-app-api/app/server/models"
	"recipe-app-api/app/server/types"
)

func userInfo(user *models.User) *types.UserInfo {
	return &types.UserInfo{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		IsStaff:     user.IsStaff,
		IsSuperuser: user.IsSuperuser,
	}
}

// userClearAuthCache 用户信息变化后清理认证缓存
func (a *App) userClearAuthCache(ctx context.Context, id uint) {
	if a.rdb == nil {
		return
	}
	if err := a.rdb.Del(ctx, fmt.Sprintf(constants.CacheKeyUserAuth, id)).Err(); err != nil {
		a.l.Error("failed to clear user auth cache", zap.Uint("id", id), zap.Error(err))
	}
}

// userErrorFields 把身份存储的校验错误转换为字段错误，不是校验错误时返回 nil
func userErrorFields(err error) types.FieldErrors {
	switch {
	case errors.Is(err, identity.ErrEmailRequired):
		return types.FieldErrors{"email": {"This field may not be blank."}}
	case errors.Is(err, identity.ErrEmailTaken):
		return types.FieldErrors{"email": {"user with this email already exists."}}
	default:
		return nil
	}
}

func (a *App) UserCreate(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req types.UserCreateInput
	if err := c.Bind(&req); err != nil {
		return a.erFields(c, bindErrorFields(err))
	}
	if fe := a.validate(&req); fe != nil {
		return a.erFields(c, fe)
	}

	// 创建用户
	user, err := a.users.CreateUser(rctx, req.Email, req.Password, identity.Fields{
		Name: req.Name,
	})
	if err != nil {
		if fe := userErrorFields(err); fe != nil {
			return a.erFields(c, fe)
		}
		a.l.Error("failed to create user", zap.String("email", req.Email), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusCreated, userInfo(user))
}

func (a *App) UserInfoGetSelf(c echo.Context) error {
	caller := middlewares.Caller(c)
	if caller == nil {
		return a.er(c, http.StatusUnauthorized)
	}

	// 认证信息可能来自缓存，这里读取最新的数据
	user, err := a.users.Get(c.Request().Context(), caller.ID)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			return a.er(c, http.StatusNotFound)
		}
		a.l.Error("failed to get user", zap.Uint("id", caller.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, userInfo(user))
}

func (a *App) UserInfoUpdateSelf(c echo.Context) error {
	caller := middlewares.Caller(c)
	if caller == nil {
		return a.er(c, http.StatusUnauthorized)
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var req types.UserUpdateInput
	if err := c.Bind(&req); err != nil {
		return a.erFields(c, bindErrorFields(err))
	}
	if fe := a.validate(&req); fe != nil {
		return a.erFields(c, fe)
	}

	user, err := a.users.Get(rctx, caller.ID)
	if err != nil {
		a.l.Error("failed to get user", zap.Uint("id", caller.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 更新用户信息
	if err = a.users.UpdateProfile(rctx, user, identity.ProfileUpdate{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	}); err != nil {
		if fe := userErrorFields(err); fe != nil {
			return a.erFields(c, fe)
		}
		a.l.Error("failed to update user", zap.Uint("id", caller.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	a.userClearAuthCache(rctx, caller.ID)

	if user, err = a.users.Get(rctx, caller.ID); err != nil {
		a.l.Error("failed to reload user", zap.Uint("id", caller.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, userInfo(user))
}

func (a *App) UserDeleteSelf(c echo.Context) error {
	caller := middlewares.Caller(c)
	if caller == nil {
		return a.er(c, http.StatusUnauthorized)
	}

	rctx := c.Request().Context()

	// 删除用户及其全部数据
	images, err := a.users.DeleteUser(rctx, caller.ID)
	if err != nil {
		a.l.Error("failed to delete user", zap.Uint("id", caller.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	a.userClearAuthCache(rctx, caller.ID)

	for _, image := range images {
		a.removeMediaFile(image)
	}

	return c.NoContent(http.StatusNoContent)
}

func (a *App) UserPromote(c echo.Context) error {
	caller := middlewares.Caller(c)
	if caller == nil {
		return a.er(c, http.StatusUnauthorized)
	}

	// 只有超级管理员可以提升其他用户
	if !caller.IsSuperuser {
		return a.er(c, http.StatusForbidden)
	}

	id, ok := parseID(c)
	if !ok {
		return a.er(c, http.StatusNotFound)
	}

	rctx := c.Request().Context()

	user, err := a.users.Promote(rctx, id)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			return a.er(c, http.StatusNotFound)
		}
		a.l.Error("failed to promote user", zap.Uint("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	a.userClearAuthCache(rctx, id)

	return c.JSON(http.StatusOK, userInfo(user))
}
