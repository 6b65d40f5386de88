package deals

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// sqmPerPyeong converts ㎡ to 평
const sqmPerPyeong = 3.3058

// FormatKoreanPrice renders won as 억/만 units, e.g. 975000000 -> "9억 7500만 원"
func FormatKoreanPrice(won float64) string {
	totalMan := int64(math.Round(math.Round(won) / manWon))
	if totalMan == 0 {
		return "0원"
	}

	sign := ""
	if totalMan < 0 {
		sign = "-"
		totalMan = -totalMan
	}
	eok := totalMan / 10_000
	man := totalMan % 10_000

	parts := make([]string, 0, 2)
	if eok > 0 {
		parts = append(parts, fmt.Sprintf("%d억", eok))
	}
	if man > 0 {
		parts = append(parts, fmt.Sprintf("%d만", man))
	}
	return sign + strings.Join(parts, " ") + " 원"
}

// FormatOptionalPrice renders "-" for a missing price
func FormatOptionalPrice(won *int64) string {
	if won == nil {
		return "-"
	}
	return FormatKoreanPrice(float64(*won))
}

// FormatArea renders ㎡ with the 평 equivalent
func FormatArea(sqm float64) string {
	return fmt.Sprintf("%.1f㎡ (약 %.1f평)", sqm, sqm/sqmPerPyeong)
}

// PercentLabel renders a signed percentage with one decimal
func PercentLabel(ratio float64) string {
	if ratio > 0 {
		return fmt.Sprintf("+%.1f%%", ratio)
	}
	return fmt.Sprintf("%.1f%%", ratio)
}

// FormatNumber renders an integer with thousands separators
func FormatNumber(v float64) string {
	n := int64(math.Round(v))
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
