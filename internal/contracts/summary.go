package contracts

import "time"

// PricePoint is one point of the monthly price series
type PricePoint struct {
	Label string  `json:"label"` // YYYY-MM
	Value float64 `json:"value"` // 월 평균 거래가 (원)
}

// DealsSummary aggregates a deal set
// ⭐ SSOT: 실거래 요약 통계
type DealsSummary struct {
	AveragePrice  float64      `json:"average_price"`
	MedianPrice   float64      `json:"median_price"`
	LatestPrice   *int64       `json:"latest_price,omitempty"`
	PreviousPrice *int64       `json:"previous_price,omitempty"`
	ChangeRatio   float64      `json:"change_ratio"` // 직전 거래 대비 변동률 (%)
	TotalDeals    int          `json:"total_deals"`
	AreaRange     [2]float64   `json:"area_range"`
	MonthlySeries []PricePoint `json:"monthly_series"`
	UpdatedAt     time.Time    `json:"updated_at"`
}
