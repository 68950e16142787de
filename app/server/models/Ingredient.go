package models

// Ingredient 原料，例如“盐”、“鸡蛋”
type Ingredient struct {
	Attribute
}

func NewIngredient(name string, userID uint) *Ingredient {
	return &Ingredient{Attribute{Name: name, UserID: userID}}
}
