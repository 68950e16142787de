package constants

import "time"

const (
	CacheKeyUserAuth = "recipe:user:auth:%d" // %d -> user id
)

const (
	CacheExpireUserAuth = 10 * time.Minute
)
