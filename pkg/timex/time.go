// Package timex 提供可直接用于 gorm 列与 JSON 的时间类型
package timex

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Time 在 JSON 中序列化为 RFC 3339，在数据库中存为 datetime
type Time time.Time

var parseLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	time.DateTime,
}

func Now() Time {
	return Time(time.Now())
}

func (t Time) Time() time.Time {
	return time.Time(t)
}

func (t Time) IsZero() bool {
	return time.Time(t).IsZero()
}

func (t Time) Unix() int64 {
	return time.Time(t).Unix()
}

func (t Time) UnixMilli() int64 {
	return time.Time(t).UnixMilli()
}

func (t Time) UnixMicro() int64 {
	return time.Time(t).UnixMicro()
}

func (t Time) UnixNano() int64 {
	return time.Time(t).UnixNano()
}

func (t Time) Before(u Time) bool {
	return time.Time(t).Before(time.Time(u))
}

func (t Time) String() string {
	return time.Time(t).Format(time.RFC3339)
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + time.Time(t).Format(time.RFC3339) + `"`), nil
}

func (t *Time) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*t = Time{}
		return nil
	}
	parsed, err := parse(s)
	if err != nil {
		return err
	}
	*t = Time(parsed)
	return nil
}

// Value 实现 driver.Valuer
func (t Time) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return time.Time(t), nil
}

// Scan 实现 sql.Scanner，兼容驱动返回的 time.Time、字符串与字节
func (t *Time) Scan(v interface{}) error {
	switch val := v.(type) {
	case nil:
		*t = Time{}
	case time.Time:
		*t = Time(val)
	case string:
		parsed, err := parse(val)
		if err != nil {
			return err
		}
		*t = Time(parsed)
	case []byte:
		parsed, err := parse(string(val))
		if err != nil {
			return err
		}
		*t = Time(parsed)
	default:
		return fmt.Errorf("timex: cannot scan %T", v)
	}
	return nil
}

func parse(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range parseLayouts {
		parsed, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return parsed, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// GormDataType 通用数据类型
func (Time) GormDataType() string {
	return "time"
}

// GormDBDataType 按方言返回列类型
func (Time) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	switch db.Dialector.Name() {
	case "postgres":
		return "timestamptz"
	default:
		return "datetime"
	}
}
