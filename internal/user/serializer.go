package user

import (
	"context"
	"fmt"
	"time"

	"github.com/SlpAus/reaction-records-backend/internal/platform/database"
	"github.com/SlpAus/reaction-records-backend/internal/platform/serializer"
)

const (
	MsgUsernameTaken   = "A user with that username already exists."
	MsgPasswordTooLong = "Ensure this field has no more than 72 bytes."

	// bcrypt只使用前72个字节
	maxPasswordBytes = 72
)

// createInput 是创建用户时经过类型转换后的输入
type createInput struct {
	Username    string     `json:"username" validate:"max=150,username"`
	Password    string     `json:"password" validate:"max=128"`
	Email       string     `json:"email" validate:"omitempty,max=254,email"`
	FirstName   string     `json:"first_name" validate:"max=150"`
	LastName    string     `json:"last_name" validate:"max=150"`
	IsSuperuser bool       `json:"is_superuser"`
	IsStaff     bool       `json:"is_staff"`
	IsActive    bool       `json:"is_active"`
	LastLogin   *time.Time `json:"last_login"`
	DateJoined  time.Time  `json:"date_joined"`
}

// readCreateInput 转换并校验创建用户的输入；id 是只读字段，会被忽略
func readCreateInput(ctx context.Context, data serializer.Data) (createInput, serializer.Errors, error) {
	r := serializer.NewReader(data)
	in := createInput{IsActive: true, DateJoined: time.Now().UTC()}

	in.Username, _ = r.String("username", serializer.Options{Required: true})
	in.Password, _ = r.String("password", serializer.Options{Required: true})
	in.Email, _ = r.String("email", serializer.Options{AllowBlank: true})
	in.FirstName, _ = r.String("first_name", serializer.Options{AllowBlank: true})
	in.LastName, _ = r.String("last_name", serializer.Options{AllowBlank: true})

	if v, ok := r.Bool("is_superuser", serializer.Options{}); ok {
		in.IsSuperuser = v
	}
	if v, ok := r.Bool("is_staff", serializer.Options{}); ok {
		in.IsStaff = v
	}
	if v, ok := r.Bool("is_active", serializer.Options{}); ok {
		in.IsActive = v
	}
	if t, ok := r.Time("last_login", serializer.Options{AllowNull: true}); ok {
		in.LastLogin = &t
	}
	if t, ok := r.Time("date_joined", serializer.Options{}); ok {
		in.DateJoined = t
	}

	errs := r.Errors()
	if err := serializer.Validate(errs, &in); err != nil {
		return in, nil, err
	}

	if !errs.Has("password") && len(in.Password) > maxPasswordBytes {
		errs.Add("password", MsgPasswordTooLong)
	}

	if !errs.Has("username") {
		taken, err := usernameTaken(ctx, in.Username)
		if err != nil {
			return in, nil, err
		}
		if taken {
			errs.Add("username", MsgUsernameTaken)
		}
	}

	return in, errs, nil
}

func usernameTaken(ctx context.Context, username string) (bool, error) {
	var count int64
	err := database.DB.WithContext(ctx).Model(&User{}).Where("username = ?", username).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("无法检查用户名是否已存在: %w", err)
	}
	return count > 0, nil
}

// Response 是用户记录对外的字段映射，字段顺序固定
type Response struct {
	ID          uint    `json:"id"`
	Password    string  `json:"password"`
	LastLogin   *string `json:"last_login"`
	IsSuperuser bool    `json:"is_superuser"`
	Username    string  `json:"username"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       string  `json:"email"`
	IsStaff     bool    `json:"is_staff"`
	IsActive    bool    `json:"is_active"`
	DateJoined  string  `json:"date_joined"`
	// 没有权限子系统，这两个多对多字段总是空列表
	Groups          []uint `json:"groups"`
	UserPermissions []uint `json:"user_permissions"`
}

// ToResponse 把持久化模型转换为对外的字段映射
func ToResponse(u User) Response {
	return Response{
		ID:          u.ID,
		Password:    u.Password,
		LastLogin:   serializer.FormatOptionalTime(u.LastLogin),
		IsSuperuser: u.IsSuperuser,
		Username:    u.Username,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		IsStaff:     u.IsStaff,
		IsActive:    u.IsActive,
		DateJoined:  serializer.FormatTime(u.DateJoined),

		Groups:          []uint{},
		UserPermissions: []uint{},
	}
}
