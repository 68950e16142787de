package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"recipe-app-api/app/server/constants"
	"recipe-app-api/app/server/identity"
	"recipe-app-api/app/server/jwt"
	"recipe-app-api/app/server/types"
)

func (a *App) UserToken(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req types.LoginInput
	if err := c.Bind(&req); err != nil {
		return a.erFields(c, bindErrorFields(err))
	}

	// 没有写邮箱或密码
	if fe := a.validate(&req); fe != nil {
		return a.erFields(c, fe)
	}

	// 校验邮箱和密码
	user, err := a.users.Authenticate(rctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			return a.er(c, http.StatusUnauthorized)
		}
		a.l.Error("failed to authenticate user", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 签出 JWT
	expires := time.Now().Add(constants.AuthTokenDuration)
	token, err := a.jwt.SignToken(&jwt.User{
		ID:      user.ID,
		Key:     user.TokenKey,
		Expires: expires.Unix(),
	})
	if err != nil {
		a.l.Error("failed to sign token", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 返回
	return c.JSON(http.StatusOK, &types.LoginToken{
		Token:   token,
		Expires: expires.Unix(),
	})
}
