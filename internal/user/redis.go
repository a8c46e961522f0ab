package user

// 定义与用户相关的Redis键名
const (
	// KnownUsersKey 是一个Set，用于快速判断一个用户ID是否存在。
	// Key: user:known
	// Member: 用户ID的十进制字符串 (e.g., "42")
	KnownUsersKey = "user:known"
)
