package config

type Config struct {
	System struct {
		IsProd                bool   // 是否为生产环境
		Listen                string // 监听地址
		DBConnectionString    string // Postgres 数据库的连接字符串
		RedisConnectionString string // Redis 数据库的连接字符串，留空则不缓存认证信息
	}
	Security struct {
		SignatureSecretKey string // 签名密钥，用于签发 JWT ，更新会导致旧有会话失效
	}
	Media struct {
		Root          string // 上传文件的存储根目录
		URLPrefix     string // 对外访问上传文件的 URL 前缀
		MaxUploadSize string // 上传请求体的大小限制，例如 10M
	}
	Admin struct {
		Email    string // 初始超级管理员邮箱，数据库中没有用户时创建
		Password string // 初始超级管理员密码
	}
}
