package models

// Tag 标签，例如“素食”、“早餐”
type Tag struct {
	Attribute
}

func NewTag(name string, userID uint) *Tag {
	return &Tag{Attribute{Name: name, UserID: userID}}
}
