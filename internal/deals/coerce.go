package deals

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// CoerceNumber converts a loosely formatted value into a finite number.
//
// Native numerics are returned as-is. Strings keep only digits, '.' and a
// leading '-' ("1,234,000원" -> 1234000). Anything else, including nil,
// NaN and ±Inf, yields 0.
func CoerceNumber(v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		return finite(x)
	case float32:
		return finite(float64(x))
	case int:
		return float64(x)
	case int8:
		return float64(x)
	case int16:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case uint:
		return float64(x)
	case uint8:
		return float64(x)
	case uint16:
		return float64(x)
	case uint32:
		return float64(x)
	case uint64:
		return float64(x)
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return finite(f)
		}
		return parseLoose(x.String())
	case string:
		return parseLoose(x)
	default:
		return 0
	}
}

// parseLoose strips every rune except digits, '.' and a sign in front of the number
func parseLoose(s string) float64 {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		case r == '-' && b.Len() == 0:
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	if cleaned == "" || cleaned == "-" {
		return 0
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return finite(f)
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
