package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/SlpAus/reaction-records-backend/internal/platform/database"
	"github.com/SlpAus/reaction-records-backend/internal/platform/serializer"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrUserNotFound 表示要删除的用户不存在
var ErrUserNotFound = errors.New("用户不存在")

// List 返回所有用户，按ID升序
func List(ctx context.Context) ([]User, error) {
	var users []User
	if err := database.DB.WithContext(ctx).Order("id asc").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("无法读取用户列表: %w", err)
	}
	return users, nil
}

// Create 校验输入并持久化一个新用户。
// 校验失败时返回字段错误且不写入任何数据；error 只用于存储层故障。
func Create(ctx context.Context, data serializer.Data) (*User, serializer.Errors, error) {
	in, errs, err := readCreateInput(ctx, data)
	if err != nil {
		return nil, nil, err
	}
	if !errs.Empty() {
		return nil, errs, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("无法生成密码哈希: %w", err)
	}

	newUser := User{
		Password:    string(hash),
		LastLogin:   in.LastLogin,
		IsSuperuser: in.IsSuperuser,
		Username:    in.Username,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		IsStaff:     in.IsStaff,
		IsActive:    in.IsActive,
		DateJoined:  in.DateJoined,
	}
	if err := database.DB.WithContext(ctx).Create(&newUser).Error; err != nil {
		// 并发创建同名用户时，唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, serializer.Errors{"username": {MsgUsernameTaken}}, nil
		}
		return nil, nil, fmt.Errorf("无法在数据库中创建新用户: %w", err)
	}

	rememberUser(ctx, newUser.ID)
	return &newUser, nil, nil
}

// Exists 判断用户是否存在。Redis目录命中即返回，否则以数据库为准。
func Exists(ctx context.Context, id int64) (bool, error) {
	if isKnownUser(ctx, id) {
		return true, nil
	}
	var count int64
	if err := database.DB.WithContext(ctx).Model(&User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("无法检查用户 %d 是否存在: %w", id, err)
	}
	return count > 0, nil
}

// Delete 删除一个用户，数据库的外键约束会级联删除其所有游戏记录。
// HTTP接口不暴露删除操作，它只供管理命令使用。
func Delete(ctx context.Context, id uint) error {
	result := database.DB.WithContext(ctx).Delete(&User{}, id)
	if result.Error != nil {
		return fmt.Errorf("无法删除用户 %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	forgetUser(ctx, id)
	return nil
}
