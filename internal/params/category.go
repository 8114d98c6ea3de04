// Parameter type normalization
package params

import "strings"

// Category is the normalized kind of a parameter value. Every free-form
// type label maps to exactly one category; unrecognized labels are strings.
type Category int

const (
	CategoryStr Category = iota
	CategoryInt
	CategoryFloat
	CategoryBool
)

func (c Category) String() string {
	switch c {
	case CategoryInt:
		return "int"
	case CategoryFloat:
		return "float"
	case CategoryBool:
		return "bool"
	default:
		return "str"
	}
}

// Categorize normalizes a free-form type label to a Category. It is
// case-insensitive and total: anything unrecognized is CategoryStr.
func Categorize(label string) Category {
	switch strings.ToLower(label) {
	case "int", "integer", "int64":
		return CategoryInt
	case "float", "double":
		return CategoryFloat
	case "bool", "boolean":
		return CategoryBool
	}
	return CategoryStr
}
