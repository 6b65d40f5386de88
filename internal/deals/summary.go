package deals

import (
	"sort"
	"time"

	"github.com/wonny/homeboard/backend/internal/contracts"
)

// Summarize computes descriptive statistics over deals.
// It works on its own sorted copy; the caller's slice is never reordered.
// Empty and single-element inputs are well-defined (no NaN, no panic).
func Summarize(deals []contracts.Deal, now time.Time) contracts.DealsSummary {
	sorted := make([]contracts.Deal, len(deals))
	copy(sorted, deals)
	SortByContractDateDesc(sorted)

	summary := contracts.DealsSummary{
		TotalDeals:    len(sorted),
		MonthlySeries: monthlySeries(sorted),
		UpdatedAt:     now,
	}

	prices := make([]float64, len(sorted))
	var sum float64
	for i, d := range sorted {
		prices[i] = float64(d.Price)
		sum += float64(d.Price)
	}
	summary.AveragePrice = sum / float64(max(len(prices), 1))
	summary.MedianPrice = median(prices)

	if len(sorted) > 0 {
		latest := sorted[0].Price
		summary.LatestPrice = &latest
	}
	if len(sorted) > 1 {
		previous := sorted[1].Price
		summary.PreviousPrice = &previous
	}
	summary.ChangeRatio = ChangeRatio(summary.LatestPrice, summary.PreviousPrice)
	summary.AreaRange = areaRange(sorted)

	return summary
}

// ChangeRatio is the percent change from previous to latest; 0 when either is missing or zero
func ChangeRatio(latest, previous *int64) float64 {
	if latest == nil || previous == nil || *latest == 0 || *previous == 0 {
		return 0
	}
	return float64(*latest-*previous) / float64(*previous) * 100
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func areaRange(deals []contracts.Deal) [2]float64 {
	if len(deals) == 0 {
		return [2]float64{0, 0}
	}
	lo, hi := deals[0].Area, deals[0].Area
	for _, d := range deals[1:] {
		lo = min(lo, d.Area)
		hi = max(hi, d.Area)
	}
	return [2]float64{lo, hi}
}

// monthlySeries groups by YYYY-MM and averages each month, ascending by label
func monthlySeries(deals []contracts.Deal) []contracts.PricePoint {
	type bucket struct {
		sum   float64
		count int
	}
	buckets := make(map[string]*bucket)
	for _, d := range deals {
		key := d.YearMonth()
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.sum += float64(d.Price)
		b.count++
	}

	series := make([]contracts.PricePoint, 0, len(buckets))
	for label, b := range buckets {
		series = append(series, contracts.PricePoint{
			Label: label,
			Value: b.sum / float64(max(b.count, 1)),
		})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Label < series[j].Label
	})
	return series
}
