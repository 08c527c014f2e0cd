package style

import (
	"regexp"
	"strconv"
	"strings"
)

// Transform function names understood by ParseTransform
const (
	Scale      = "scale"
	TranslateX = "translateX"
	TranslateY = "translateY"
	TranslateZ = "translateZ"
	Rotate     = "rotate"
)

// TransformFuncs lists the supported transform functions
var TransformFuncs = []string{Scale, TranslateX, TranslateY, TranslateZ, Rotate}

var transformRe = regexp.MustCompile(`\b(scale|translateX|translateY|translateZ|rotate)\(([^)]+)\)`)

// Transform maps a transform function name to its raw argument.
// rotate is stored without its "deg" suffix.
type Transform map[string]string

// Get returns the raw argument of fn and whether it was present
func (t Transform) Get(fn string) (string, bool) {
	v, ok := t[fn]
	return v, ok
}

// Float returns the argument of fn as a number
func (t Transform) Float(fn string) (float64, bool) {
	v, ok := t[fn]
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ParseTransform extracts the supported functions from a transform string.
// Unknown functions are dropped. When a function repeats, the last one wins.
func ParseTransform(s string) Transform {
	t := Transform{}
	for _, m := range transformRe.FindAllStringSubmatch(s, -1) {
		fn, value := m[1], m[2]
		if fn == Rotate {
			value = strings.Replace(value, "deg", "", 1)
		}
		t[fn] = value
	}
	return t
}

// UpdateTransform replaces the argument of the first fn(...) in s with
// value. rotate gets a "deg" suffix. If fn does not occur in s the string
// is returned unchanged: components are never inserted.
func UpdateTransform(s, fn, value string) string {
	re, err := regexp.Compile(`\b` + regexp.QuoteMeta(fn) + `\([^)]+\)`)
	if err != nil {
		return s
	}
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	if fn == Rotate {
		value = strings.TrimSuffix(value, "deg") + "deg"
	}
	return s[:loc[0]] + fn + "(" + value + ")" + s[loc[1]:]
}

// UpdateTransformFloat is UpdateTransform with a numeric value, formatted
// without trailing zeros (0.5, 45, 1).
func UpdateTransformFloat(s, fn string, value float64) string {
	return UpdateTransform(s, fn, FormatNumber(value))
}

// FormatNumber renders v in its shortest form
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
