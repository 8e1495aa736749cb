package config

import "fmt"

const (
	sectionGlobal      = "Global"
	sectionObjectCache = "ObjectCache"
)

// FieldError 指出出错的配置项；Value 非空时附带实际解析出的值，
// 例如相对 CachePath 解析后的绝对路径。
type FieldError struct {
	Field  string
	Value  string
	Reason string
}

func (e FieldError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s=%q: %s", e.Field, e.Value, e.Reason)
}

func globalFieldError(key, reason string) error {
	return FieldError{Field: sectionGlobal + "." + key, Reason: reason}
}

func objectCacheFieldError(key, reason string) error {
	return FieldError{Field: sectionObjectCache + "." + key, Reason: reason}
}
