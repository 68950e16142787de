package models

import "gorm.io/gorm"

// OwnedBy 限定查询只能看到指定用户的数据
func OwnedBy(userID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}
