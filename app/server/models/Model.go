package models

import "time"

// Model 与 gorm.Model 相同，但不使用软删除：删除用户时需要真正级联删除关联数据
type Model struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}
