package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"recipe-app-api/app/server/identity"
	"recipe-app-api/app/server/jwt"
	"recipe-app-api/app/server/media"
)

type App struct {
	l     *zap.Logger         // 日志
	db    *gorm.DB            // 数据库
	rdb   *redis.Client       // Redis ，可以为 nil
	jwt   *jwt.JWT            // JWT ，用于无状态验证
	v     *validator.Validate // 请求体校验
	users *identity.Store     // 用户
	media *media.Store        // 上传文件
}

func NewApp(l *zap.Logger, db *gorm.DB, rdb *redis.Client, j *jwt.JWT, v *validator.Validate, m *media.Store) *App {
	return &App{
		l:     l,
		db:    db,
		rdb:   rdb,
		jwt:   j,
		v:     v,
		users: identity.New(db),
		media: m,
	}
}
