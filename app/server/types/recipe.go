package types

import "github.com/shopspring/decimal"

// RecipeInput 用于创建和更新菜谱，nil 字段表示请求中没有该字段
type RecipeInput struct {
	Title       *string          `json:"title" validate:"required,min=1,max=255"`
	TimeMinutes *int             `json:"time_minutes" validate:"required"`
	Price       *decimal.Decimal `json:"price" validate:"required,price"`
	Link        *string          `json:"link" validate:"omitempty,max=255"`
	Tags        *[]uint          `json:"tags"`
	Ingredients *[]uint          `json:"ingredients"`
}

// RecipeSummary 用于列表和写入操作的响应，关联对象只返回 id
type RecipeSummary struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	TimeMinutes int    `json:"time_minutes"`
	Price       string `json:"price"`
	Link        string `json:"link"`
	Tags        []uint `json:"tags"`
	Ingredients []uint `json:"ingredients"`
}

// RecipeDetail 用于单个菜谱的详情，关联对象展开
type RecipeDetail struct {
	ID          uint        `json:"id"`
	Title       string      `json:"title"`
	TimeMinutes int         `json:"time_minutes"`
	Price       string      `json:"price"`
	Link        string      `json:"link"`
	Image       *string     `json:"image"`
	Tags        []Attribute `json:"tags"`
	Ingredients []Attribute `json:"ingredients"`
}

type RecipeImage struct {
	ID    uint   `json:"id"`
	Image string `json:"image"`
}
