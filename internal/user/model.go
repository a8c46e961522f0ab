package user

import (
	"time"
)

// User 定义了用户在数据库中的持久化模型。
// 字段沿用通用身份子系统的约定，本服务只通过 ID 引用它。
type User struct {
	ID uint `gorm:"primarykey"`

	// Password 存储的是bcrypt哈希，而不是明文
	Password  string `gorm:"size:128;not null"`
	LastLogin *time.Time

	IsSuperuser bool `gorm:"not null"`

	Username  string `gorm:"size:150;uniqueIndex;not null"`
	FirstName string `gorm:"size:150;not null"`
	LastName  string `gorm:"size:150;not null"`
	Email     string `gorm:"size:254;not null"`

	// 布尔字段不使用gorm的default标签，否则显式传入的false会被数据库默认值覆盖
	IsStaff  bool `gorm:"not null"`
	IsActive bool `gorm:"not null"`

	DateJoined time.Time `gorm:"not null"`
}

func (User) TableName() string { return "users" }
