package middlewares

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"recipe-app-api/app/server/constants"
	"recipe-app-api/app/server/jwt"
	"recipe-app-api/app/server/models"
	"recipe-app-api/app/server/types"
)

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, &types.ErrorMessage{
		Message: http.StatusText(http.StatusUnauthorized),
	})
}

// TokenAuth 从 Authorization: Bearer 头中解析 token ，任何问题都按 401 处理
func TokenAuth(j *jwt.JWT) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: constants.ContextKeyToken,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return j.ParseUser(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return unauthorized(c)
		},
	})
}

// UserAuth 把 token 对应到一个启用状态的用户，需要放在 TokenAuth 之后
func UserAuth(db *gorm.DB, rdb *redis.Client, l *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			jwtUser, ok := c.Get(constants.ContextKeyToken).(*jwt.User)
			if !ok {
				return unauthorized(c)
			}

			rctx := c.Request().Context()
			cacheKey := fmt.Sprintf(constants.CacheKeyUserAuth, jwtUser.ID)

			var user models.User
			cached := false

			// 查询缓存
			if rdb != nil {
				if cacheBytes, err := rdb.Get(rctx, cacheKey).Bytes(); err != nil {
					if !errors.Is(err, redis.Nil) {
						l.Error("failed to query cache for user info", zap.Uint("id", jwtUser.ID), zap.Error(err))
					}
				} else if err = json.Unmarshal(cacheBytes, &user); err != nil {
					l.Error("failed to unmarshal user info", zap.Uint("id", jwtUser.ID), zap.ByteString("cacheBytes", cacheBytes), zap.Error(err))
					// 可能是无效的缓存，清理掉
					if err = rdb.Del(rctx, cacheKey).Err(); err != nil {
						l.Error("failed to clear invalid user cache", zap.Uint("id", jwtUser.ID), zap.Error(err))
					}
				} else {
					cached = true
				}
			}

			// 查询数据库
			if !cached {
				if err := db.WithContext(rctx).First(&user, "id = ?", jwtUser.ID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return unauthorized(c)
					}
					l.Error("failed to get user", zap.Uint("id", jwtUser.ID), zap.Error(err))
					return c.JSON(http.StatusInternalServerError, &types.ErrorMessage{
						Message: http.StatusText(http.StatusInternalServerError),
					})
				}

				// 不缓存密码
				user.Password = ""

				// 格式化并加入缓存，方便下一次查询
				if rdb != nil {
					if cacheBytes, err := json.Marshal(&user); err != nil {
						l.Error("failed to marshal user info", zap.Uint("id", jwtUser.ID), zap.Error(err))
					} else if err = rdb.Set(rctx, cacheKey, cacheBytes, constants.CacheExpireUserAuth).Err(); err != nil {
						l.Error("failed to cache user info", zap.Uint("id", jwtUser.ID), zap.Error(err))
					}
				}
			}

			// 停用的用户，或者 token 已被吊销
			if !user.IsActive || user.TokenKey != jwtUser.Key {
				return unauthorized(c)
			}

			// 设置 context
			c.Set(constants.ContextKeyCaller, &user)

			// 继续处理
			return next(c)
		}
	}
}

// Caller 返回当前请求已认证的用户，没有经过认证时返回 nil
func Caller(c echo.Context) *models.User {
	user, _ := c.Get(constants.ContextKeyCaller).(*models.User)
	return user
}
