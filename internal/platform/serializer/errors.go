package serializer

// NonFieldErrorsKey 是不属于任何单个字段的错误所使用的键
const NonFieldErrorsKey = "non_field_errors"

// 字段级错误信息，与客户端已经依赖的REST框架措辞保持一致
const (
	MsgRequired          = "This field is required."
	MsgNull              = "This field may not be null."
	MsgBlank             = "This field may not be blank."
	MsgInvalidString     = "Not a valid string."
	MsgInvalidInteger    = "A valid integer is required."
	MsgInvalidNumber     = "A valid number is required."
	MsgInvalidBoolean    = "Must be a valid boolean."
	MsgStringTooLarge    = "String value too large."
	MsgInvalidDateTime   = "Datetime has wrong format. Use one of these formats instead: YYYY-MM-DDThh:mm[:ss[.uuuuuu]][+HH:MM|-HH:MM|Z]."
	MsgIncorrectPKType   = "Incorrect type. Expected pk value, received %s."
	MsgDoesNotExist      = "Invalid pk \"%s\" - object does not exist."
	MsgInvalidEmail      = "Enter a valid email address."
	MsgInvalidUsername   = "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	MsgMaxLength         = "Ensure this field has no more than %s characters."
	MsgMinLength         = "Ensure this field has at least %s characters."
	MsgMaxValue          = "Ensure this value is less than or equal to %s."
	MsgMinValue          = "Ensure this value is greater than or equal to %s."
	MsgInvalidDictionary = "Invalid data. Expected a dictionary, but got %s."
	MsgNoData            = "No data provided"
	MsgServerError       = "A server error occurred."
)

// Errors 按字段收集校验错误，序列化为 {"field": ["msg", ...]}
type Errors map[string][]string

// Add 为字段追加一条错误信息
func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Has 报告字段是否已有错误
func (e Errors) Has(field string) bool {
	return len(e[field]) > 0
}

// Empty 报告是否没有任何错误
func (e Errors) Empty() bool {
	return len(e) == 0
}
