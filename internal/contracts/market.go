package contracts

import "time"

// Indicator is one labelled market figure
type Indicator struct {
	Label  string  `json:"label"`
	Value  float64 `json:"value"`
	Source string  `json:"source"`
}

// BaseRates holds the Korean and US policy rates
type BaseRates struct {
	Korea Indicator `json:"korea"`
	US    Indicator `json:"us"`
}

// MarketIndicators is the market snapshot shown next to deals
type MarketIndicators struct {
	UpdatedAt time.Time `json:"updated_at"`
	BaseRates BaseRates `json:"base_rates"`
	USDKRW    Indicator `json:"usd_krw"`
}
