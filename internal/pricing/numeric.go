package pricing

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseFloatOrDefault reads raw the way a browser's parseFloat does: the value
// is turned into text, leading whitespace is skipped and the longest decimal
// prefix is used ("2.50" -> 2.5, "3kg" -> 3). A value with no numeric prefix,
// or one that reads as zero, yields def.
func ParseFloatOrDefault(raw interface{}, def float64) float64 {
	f, ok := parseFloatPrefix(jsString(raw))
	if !ok || f == 0 {
		return def
	}
	return f
}

// ParseIntOrDefault is the base-10 parseInt counterpart: only the leading run
// of digits counts ("3.9" -> 3, "0x1A" -> 0). Zero and unparsable values yield
// def. The result is integral but returned as float64 so it multiplies with a
// price without conversion and never overflows.
func ParseIntOrDefault(raw interface{}, def float64) float64 {
	n, ok := parseIntPrefix(jsString(raw))
	if !ok || n == 0 {
		return def
	}
	return n
}

func parseFloatPrefix(s string) (float64, bool) {
	s = strings.TrimLeftFunc(s, isJSSpace)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	if strings.HasPrefix(s[end:], "Infinity") {
		if s[0] == '-' {
			return math.Inf(-1), true
		}
		return math.Inf(1), true
	}

	digits := 0
	for end < len(s) && isDigit(s[end]) {
		end++
		digits++
	}
	if end < len(s) && s[end] == '.' {
		end++
		for end < len(s) && isDigit(s[end]) {
			end++
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}

	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		exp := end + 1
		if exp < len(s) && (s[exp] == '+' || s[exp] == '-') {
			exp++
		}
		expDigits := exp
		for expDigits < len(s) && isDigit(s[expDigits]) {
			expDigits++
		}
		if expDigits > exp {
			end = expDigits
		}
	}

	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return f, true
		}
		return 0, false
	}
	return f, true
}

func parseIntPrefix(s string) (float64, bool) {
	s = strings.TrimLeftFunc(s, isJSSpace)

	start := 0
	negative := false
	if start < len(s) && (s[start] == '+' || s[start] == '-') {
		negative = s[start] == '-'
		start++
	}
	end := start
	for end < len(s) && isDigit(s[end]) {
		end++
	}
	if end == start {
		return 0, false
	}

	// Digit runs past the float64 range come back as +Inf with ErrRange.
	n, err := strconv.ParseFloat(s[start:end], 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	if negative {
		n = -n
	}
	return n, true
}

// jsString renders raw the way String(value) would for the shapes a JSON
// decoder produces.
func jsString(raw interface{}) string {
	switch v := raw.(type) {
	case nil:
		return "undefined"
	case string:
		return v
	case float64:
		return jsNumberString(v)
	case float32:
		return jsNumberString(float64(v))
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case interface{ String() string }:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case []interface{}:
		parts := make([]string, len(v))
		for i, elem := range v {
			if elem != nil {
				parts[i] = jsString(elem)
			}
		}
		return strings.Join(parts, ",")
	default:
		return "[object Object]"
	}
}

func jsNumberString(f float64) string {
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isJSSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\ufeff'
}
