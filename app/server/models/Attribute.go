package models

// Attribute 是标签和原料共用的字段：一个名称，属于一个用户
type Attribute struct {
	Model

	Name   string `gorm:"column:name;size:50"`
	UserID uint   `gorm:"column:user_id;index"` // 所属用户
}

func (a *Attribute) Base() *Attribute {
	return a
}
