package serializer

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// maxStringNumberLength 限制以字符串提交的数字长度
const maxStringNumberLength = 1000

var decimalSuffix = regexp.MustCompile(`\.0*$`)

var trueValues = map[string]bool{
	"t": true, "T": true, "y": true, "Y": true, "yes": true, "Yes": true, "YES": true,
	"true": true, "True": true, "TRUE": true, "on": true, "On": true, "ON": true, "1": true,
}

var falseValues = map[string]bool{
	"f": true, "F": true, "n": true, "N": true, "no": true, "No": true, "NO": true,
	"false": true, "False": true, "FALSE": true, "off": true, "Off": true, "OFF": true, "0": true,
}

// 无时区的输入按UTC处理
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
}

// Options 描述单个字段的存在性规则
type Options struct {
	Required   bool
	AllowNull  bool
	AllowBlank bool
}

// Reader 逐字段从 Data 中取值并做类型转换，失败时把错误记录到 Errors。
// 每个取值方法的第二个返回值只有在字段存在、非空且转换成功时才为 true。
type Reader struct {
	data   Data
	errors Errors
}

func NewReader(data Data) *Reader {
	return &Reader{data: data, errors: Errors{}}
}

// Errors 返回目前为止收集到的所有错误
func (r *Reader) Errors() Errors {
	return r.errors
}

// Fail 为字段记录一条额外的错误，例如外键不存在
func (r *Reader) Fail(name, msg string) {
	r.errors.Add(name, msg)
}

// Raw 返回字段的原始文本表示
func (r *Reader) Raw(name string) string {
	return fmt.Sprint(r.data[name])
}

func (r *Reader) lookup(name string, opts Options) (any, bool) {
	v, ok := r.data[name]
	if !ok {
		if opts.Required {
			r.errors.Add(name, MsgRequired)
		}
		return nil, false
	}
	if v == nil {
		if !opts.AllowNull {
			r.errors.Add(name, MsgNull)
		}
		return nil, false
	}
	return v, true
}

// String 读取字符串字段，去掉首尾空白
func (r *Reader) String(name string, opts Options) (string, bool) {
	v, ok := r.lookup(name, opts)
	if !ok {
		return "", false
	}

	var s string
	switch t := v.(type) {
	case string:
		s = t
	case json.Number:
		s = t.String()
	default:
		r.errors.Add(name, MsgInvalidString)
		return "", false
	}

	s = strings.TrimSpace(s)
	if s == "" {
		if !opts.AllowBlank {
			r.errors.Add(name, MsgBlank)
			return "", false
		}
	}
	return s, true
}

// Int 读取整数字段，接受 "5"、"5.0" 以及没有小数部分的数字
func (r *Reader) Int(name string, opts Options) (int64, bool) {
	v, ok := r.lookup(name, opts)
	if !ok {
		return 0, false
	}

	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, true
		}
		if n, ok := integralFloat(t.String()); ok {
			return n, true
		}
	case string:
		if len(t) > maxStringNumberLength {
			r.errors.Add(name, MsgStringTooLarge)
			return 0, false
		}
		s := decimalSuffix.ReplaceAllString(strings.TrimSpace(t), "")
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, true
		}
		if n, ok := integralFloat(s); ok {
			return n, true
		}
	}

	r.errors.Add(name, MsgInvalidInteger)
	return 0, false
}

// integralFloat 解析没有小数部分的数字。超出int64的值截断到边界，
// 交给范围校验报告正确方向的错误。
func integralFloat(s string) (int64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	switch {
	case f >= 1<<63:
		return math.MaxInt64, true
	case f < -(1 << 63):
		return math.MinInt64, true
	}
	return int64(f), true
}

// Float 读取浮点字段，拒绝 NaN 和无穷大
func (r *Reader) Float(name string, opts Options) (float64, bool) {
	v, ok := r.lookup(name, opts)
	if !ok {
		return 0, false
	}

	var s string
	switch t := v.(type) {
	case json.Number:
		s = t.String()
	case string:
		if len(t) > maxStringNumberLength {
			r.errors.Add(name, MsgStringTooLarge)
			return 0, false
		}
		s = strings.TrimSpace(t)
	default:
		r.errors.Add(name, MsgInvalidNumber)
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		r.errors.Add(name, MsgInvalidNumber)
		return 0, false
	}
	return f, true
}

// Bool 读取布尔字段，接受 true/false 以及常见的字符串写法
func (r *Reader) Bool(name string, opts Options) (bool, bool) {
	v, ok := r.lookup(name, opts)
	if !ok {
		return false, false
	}

	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		if trueValues[t] {
			return true, true
		}
		if falseValues[t] {
			return false, true
		}
	case json.Number:
		if f, err := t.Float64(); err == nil {
			switch f {
			case 1:
				return true, true
			case 0:
				return false, true
			}
		}
	}

	r.errors.Add(name, MsgInvalidBoolean)
	return false, false
}

// Time 读取ISO-8601时间字段，结果统一为UTC
func (r *Reader) Time(name string, opts Options) (time.Time, bool) {
	v, ok := r.lookup(name, opts)
	if !ok {
		return time.Time{}, false
	}

	if s, isString := v.(string); isString {
		s = strings.TrimSpace(s)
		for _, layout := range dateTimeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC(), true
			}
		}
	}

	r.errors.Add(name, MsgInvalidDateTime)
	return time.Time{}, false
}

// PrimaryKey 读取外键字段，只检查类型；记录是否存在由调用方确认
func (r *Reader) PrimaryKey(name string, opts Options) (int64, bool) {
	v, ok := r.lookup(name, opts)
	if !ok {
		return 0, false
	}

	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, true
		}
		// 1.0 这样的整数值浮点数按主键处理
		if n, ok := integralFloat(t.String()); ok {
			return n, true
		}
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64); err == nil {
			return n, true
		}
	}

	r.errors.Add(name, fmt.Sprintf(MsgIncorrectPKType, typeName(v)))
	return 0, false
}
