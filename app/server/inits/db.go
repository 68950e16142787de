package inits

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"recipe-app-api/app/server/identity"
	"recipe-app-api/app/server/models"
)

func DB(conn string) (db *gorm.DB, err error) {
	// 打开连接
	if db, err = gorm.Open(postgres.Open(conn), &gorm.Config{
		TranslateError: true,
	}); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// 迁移
	if err = Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// 返回
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
	)
}

// InitAdmin 在没有任何用户时创建初始超级管理员
func InitAdmin(ctx context.Context, db *gorm.DB, email string, password string) (created bool, err error) {
	if email == "" {
		return false, nil
	}

	// 查询现有记录数量
	var counter int64
	if err = db.WithContext(ctx).Model(&models.User{}).Count(&counter).Error; err != nil {
		return false, fmt.Errorf("failed to get user count: %w", err)
	} else if counter > 0 {
		return false, nil
	}

	if _, err = identity.New(db).CreateSuperuser(ctx, email, password); err != nil {
		return false, fmt.Errorf("failed to create admin user: %w", err)
	}

	return true, nil
}
