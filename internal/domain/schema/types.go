package schema

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// TypeTag is the declared type of a column
type TypeTag string

const (
	TypeString TypeTag = "string"
	TypeInt    TypeTag = "int"
	TypeFloat  TypeTag = "float"
	TypeBool   TypeTag = "bool"
	TypeDate   TypeTag = "date"
)

// DateLayout is the ISO-8601 calendar date format date values are stored in
const DateLayout = "2006-01-02"

var allTags = []TypeTag{TypeString, TypeInt, TypeFloat, TypeBool, TypeDate}

var tagAliases = map[string]TypeTag{
	"str":     TypeString,
	"text":    TypeString,
	"integer": TypeInt,
	"double":  TypeFloat,
	"boolean": TypeBool,
}

// ParseTypeTag resolves a canonical type name or one of its aliases
func ParseTypeTag(name string) (TypeTag, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if tag := TypeTag(n); tag.Valid() {
		return tag, nil
	}
	if tag, ok := tagAliases[n]; ok {
		return tag, nil
	}
	return "", fmt.Errorf("unknown column type %q", name)
}

func (t TypeTag) Valid() bool {
	for _, tag := range allTags {
		if t == tag {
			return true
		}
	}
	return false
}

func (t TypeTag) String() string {
	return string(t)
}

// Accepts reports whether v structurally satisfies the tag.
// nil never does, and neither do NaN or the infinities.
func (t TypeTag) Accepts(v any) bool {
	switch t {
	case TypeString:
		_, ok := v.(string)
		return ok
	case TypeInt:
		return isInteger(v)
	case TypeFloat:
		f, ok := toFloat64(v)
		return ok && !math.IsNaN(f) && !math.IsInf(f, 0)
	case TypeBool:
		_, ok := v.(bool)
		return ok
	case TypeDate:
		_, ok := v.(time.Time)
		return ok
	}
	return false
}

// TypeName names the kind of a Go value in TypeTag terms, for error messages
func TypeName(v any) string {
	if v == nil {
		return "nil"
	}
	if f, ok := toFloat64(v); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return "non-finite float"
	}
	for _, tag := range allTags {
		if tag.Accepts(v) {
			return string(tag)
		}
	}
	return fmt.Sprintf("%T", v)
}

// Canonical converts a value to the form it is stored and compared in:
// integers become int64, floats float64, time.Time an ISO date string.
// Anything else is returned unchanged.
func Canonical(v any) any {
	if n, ok := toInt64(v); ok {
		return n
	}
	switch x := v.(type) {
	case float32:
		return float64(x)
	case time.Time:
		return x.Format(DateLayout)
	}
	return v
}

func toFloat64(v any) (float64, bool) {
	switch f := v.(type) {
	case float32:
		return float64(f), true
	case float64:
		return f, true
	}
	return 0, false
}

func isInteger(v any) bool {
	_, ok := toInt64(v)
	return ok
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint:
		if uint64(n) <= math.MaxInt64 {
			return int64(n), true
		}
	case uint64:
		if n <= math.MaxInt64 {
			return int64(n), true
		}
	}
	return 0, false
}
