package serializer

import "time"

// FormatTime 把时间渲染为UTC的ISO-8601字符串，有微秒时保留6位小数
func FormatTime(t time.Time) string {
	t = t.UTC()
	if t.Nanosecond()/int(time.Microsecond) == 0 {
		return t.Format("2006-01-02T15:04:05Z07:00")
	}
	return t.Format("2006-01-02T15:04:05.000000Z07:00")
}

// FormatOptionalTime 对nil返回nil，在JSON中输出为null
func FormatOptionalTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatTime(*t)
	return &s
}
