// Tagged parameter value union
package params

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value is a tagged union over the four parameter categories. The tag is
// fixed when the value is created; a leaf's tag only ever changes through
// a successful validated edit.
type Value struct {
	cat Category
	i   int64
	f   float64
	b   bool
	s   string
}

func IntValue(v int64) Value     { return Value{cat: CategoryInt, i: v} }
func FloatValue(v float64) Value { return Value{cat: CategoryFloat, f: v} }
func BoolValue(v bool) Value     { return Value{cat: CategoryBool, b: v} }
func StringValue(v string) Value { return Value{cat: CategoryStr, s: v} }

func (v Value) Category() Category { return v.cat }

func (v Value) Int() int64     { return v.i }
func (v Value) Float() float64 { return v.f }
func (v Value) Bool() bool     { return v.b }
func (v Value) Str() string    { return v.s }

// Interface returns the value as a plain Go scalar, typed per the tag.
func (v Value) Interface() interface{} {
	switch v.cat {
	case CategoryInt:
		return v.i
	case CategoryFloat:
		return v.f
	case CategoryBool:
		return v.b
	default:
		return v.s
	}
}

// Display renders the canonical on-screen string form. Floats within
// the editors' working range print in plain decimal form; only extreme
// magnitudes fall back to exponent notation.
func (v Value) Display() string {
	switch v.cat {
	case CategoryInt:
		return strconv.FormatInt(v.i, 10)
	case CategoryFloat:
		if abs := math.Abs(v.f); v.f == 0 || (abs >= 1e-4 && abs < 1e15) {
			return strconv.FormatFloat(v.f, 'f', -1, 64)
		}
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case CategoryBool:
		return strconv.FormatBool(v.b)
	default:
		return v.s
	}
}

// FromRaw derives a Value from a raw scalar's runtime type. Used in file
// mode where no explicit type label accompanies the entry.
func FromRaw(raw interface{}) Value {
	switch t := raw.(type) {
	case int:
		return IntValue(int64(t))
	case int32:
		return IntValue(int64(t))
	case int64:
		return IntValue(t)
	case float32:
		return FloatValue(float64(t))
	case float64:
		return FloatValue(t)
	case bool:
		return BoolValue(t)
	case string:
		return StringValue(t)
	default:
		return StringValue(fmt.Sprintf("%v", t))
	}
}

// Coerce converts a raw scalar into a Value of the given category, falling
// back to the raw string form when the scalar does not fit the category.
func Coerce(raw interface{}, cat Category) Value {
	v := FromRaw(raw)
	if v.cat == cat {
		return v
	}
	// int supplied where float expected is the common live-node case
	if cat == CategoryFloat && v.cat == CategoryInt {
		return FloatValue(float64(v.i))
	}
	parsed, err := ParseInCategory(v.Display(), cat)
	if err != nil {
		return StringValue(v.Display())
	}
	return parsed
}

// ParseInCategory parses user-entered text into a Value of the given
// category. Integer and float use direct numeric parses; booleans accept
// the token sets true/1/yes/on and false/0/no/off, case-insensitively;
// strings never fail.
func ParseInCategory(text string, cat Category) (Value, error) {
	switch cat {
	case CategoryInt:
		n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q is not an integer", ErrParse, text)
		}
		return IntValue(n), nil
	case CategoryFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q is not a number", ErrParse, text)
		}
		return FloatValue(f), nil
	case CategoryBool:
		switch strings.ToLower(strings.TrimSpace(text)) {
		case "true", "1", "yes", "on":
			return BoolValue(true), nil
		case "false", "0", "no", "off":
			return BoolValue(false), nil
		}
		return Value{}, fmt.Errorf("%w: %q is not a boolean", ErrParse, text)
	default:
		return StringValue(text), nil
	}
}
