package types

// ErrorMessage 用于 4xx/5xx 的通用错误响应
type ErrorMessage struct {
	Message string `json:"message"`
}

// FieldErrors 是校验失败时按字段返回的错误信息
type FieldErrors map[string][]string

const NonFieldErrors = "non_field_errors"

func (fe FieldErrors) Add(field string, message string) {
	fe[field] = append(fe[field], message)
}
