package models

import (
	"fmt"

	"github.com/alexedwards/argon2id"
)

type User struct {
	Model

	// 基础信息
	Email string `gorm:"column:email;size:255;uniqueIndex"` // 邮箱，全局唯一，写入时统一为小写
	Name  string `gorm:"column:name;size:255"`              // 显示名称

	// 状态与权限
	IsActive    bool `gorm:"column:is_active;default:true"` // 停用的用户无法登录，也无法使用已签发的 token
	IsStaff     bool `gorm:"column:is_staff"`
	IsSuperuser bool `gorm:"column:is_superuser"`

	// 登录与授权认证相关
	Password string `gorm:"column:password"`  // 密码，使用 argon2id 储存
	TokenKey string `gorm:"column:token_key"` // 写入 JWT 的随机值，更换后旧 token 全部失效

	// 删除用户时级联删除其拥有的数据
	Tags        []Tag        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Ingredients []Ingredient `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipes     []Recipe     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (u *User) SetPassword(password string) error {
	hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	u.Password = hash
	return nil
}

func (u *User) CheckPassword(password string) (bool, error) {
	if u.Password == "" {
		return false, nil
	}

	match, _, err := argon2id.CheckHash(password, u.Password)
	if err != nil {
		return false, fmt.Errorf("check password: %w", err)
	}

	return match, nil
}
