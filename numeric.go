package objcache

import (
	"math"
	"strconv"
	"strings"
)

// normalizeNumeric turns numeric results into int64 (exact integers) or
// float64. It only applies when the value's static type V can hold the
// converted value, i.e. when V is an interface type such as any.
func normalizeNumeric[V any](v V) V {
	n, ok := numericValue(any(v))
	if !ok {
		return v
	}
	if out, ok := n.(V); ok {
		return out
	}
	return v
}

// numericValue reports the canonical numeric form of v.
func numericValue(v any) (any, bool) {
	switch x := v.(type) {
	case string:
		return parseNumeric(x)
	case float64:
		return floatToNumber(x), true
	case float32:
		return floatToNumber(float64(x)), true
	case int64:
		return x, true
	}
	if n, ok := asInt64(v); ok {
		return n, true
	}
	return nil, false
}

// parseNumeric accepts decimal numbers with optional sign, fraction and
// exponent, surrounded by optional whitespace. Hex, "inf" and "nan" are
// not numeric.
func parseNumeric(s string) (any, bool) {
	t := strings.TrimSpace(s)
	if !isDecimal(t) {
		return nil, false
	}
	if i, err := strconv.ParseInt(t, 10, 64); err == nil {
		return i, true
	}
	f, err := strconv.ParseFloat(t, 64)
	if err != nil && !math.IsInf(f, 0) {
		return nil, false
	}
	return floatToNumber(f), true
}

func floatToNumber(f float64) any {
	if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
		return int64(f)
	}
	return f
}

// isDecimal matches [+-]? (digits [. digits?] | . digits) ([eE] [+-]? digits)?
func isDecimal(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	intDigits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		intDigits++
	}
	fracDigits := 0
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			fracDigits++
		}
	}
	if intDigits+fracDigits == 0 {
		return false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		expDigits := 0
		for i < len(s) && isDigit(s[i]) {
			i++
			expDigits++
		}
		if expDigits == 0 {
			return false
		}
	}
	return i == len(s)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint:
		if uint64(x) > math.MaxInt64 {
			return 0, false
		}
		return int64(x), true
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint64:
		if x > math.MaxInt64 {
			return 0, false
		}
		return int64(x), true
	}
	return 0, false
}

func asFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float32:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}
