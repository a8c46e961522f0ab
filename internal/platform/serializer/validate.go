package serializer

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// usernamePattern 允许字母、数字以及 @ . + - _
var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)

func engine() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// 错误里使用json字段名，而不是Go结构体字段名
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernamePattern.MatchString(fl.Field().String())
		})
	})
	return validate
}

// Validate 按结构体上的 validate 标签检查已转换好的输入，并把失败翻译成字段错误。
// 已经在类型转换阶段失败的字段不会再追加规则错误。
func Validate(errs Errors, v any) error {
	skip := make(map[string]bool, len(errs))
	for field := range errs {
		skip[field] = true
	}

	err := engine().Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("无法校验 %T: %w", v, err)
	}

	for _, fe := range fieldErrs {
		if skip[fe.Field()] {
			continue
		}
		errs.Add(fe.Field(), translate(fe))
	}
	return nil
}

func translate(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return MsgRequired
	case "max":
		if isString {
			return fmt.Sprintf(MsgMaxLength, fe.Param())
		}
		return fmt.Sprintf(MsgMaxValue, fe.Param())
	case "min":
		if isString {
			return fmt.Sprintf(MsgMinLength, fe.Param())
		}
		return fmt.Sprintf(MsgMinValue, fe.Param())
	case "email":
		return MsgInvalidEmail
	case "username":
		return MsgInvalidUsername
	default:
		return fmt.Sprintf("Failed the %q rule.", fe.Tag())
	}
}
