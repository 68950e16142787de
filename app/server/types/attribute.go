package types

// AttributeInput 是标签和原料共用的创建请求
type AttributeInput struct {
	Name string `json:"name" validate:"required,max=50"`
}

// Attribute 是标签和原料共用的响应
type Attribute struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
