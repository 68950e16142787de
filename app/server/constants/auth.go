package constants

import "time"

const (
	AuthTokenDuration = 7 * 24 * time.Hour
)

// echo context 中保存的认证信息
const (
	ContextKeyToken  = "token"
	ContextKeyCaller = "caller"
)
