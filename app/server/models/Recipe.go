package models

import "github.com/shopspring/decimal"

type Recipe struct {
	Model

	UserID uint `gorm:"column:user_id;index"` // 所属用户

	// 菜谱基础信息
	Title       string          `gorm:"column:title;size:255"`
	TimeMinutes int             `gorm:"column:time_minutes"`
	Price       decimal.Decimal `gorm:"column:price;type:decimal(5,2)"`
	Link        string          `gorm:"column:link;size:255"`
	Image       string          `gorm:"column:image;size:255"` // 相对于媒体根目录的图片路径，空表示没有图片

	// 关联的标签和原料，只删除关联关系，不删除标签和原料本身
	Tags        []Tag        `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
	Ingredients []Ingredient `gorm:"many2many:recipe_ingredients;constraint:OnDelete:CASCADE"`
}

func (r *Recipe) TagIDs() []uint {
	ids := make([]uint, 0, len(r.Tags))
	for _, tag := range r.Tags {
		ids = append(ids, tag.ID)
	}
	return ids
}

func (r *Recipe) IngredientIDs() []uint {
	ids := make([]uint, 0, len(r.Ingredients))
	for _, ingredient := range r.Ingredients {
		ids = append(ids, ingredient.ID)
	}
	return ids
}
