package contracts

import (
	"fmt"
	"regexp"
	"time"
)

var (
	regionCodePattern = regexp.MustCompile(`^\d{5}$`)
	yearMonthPattern  = regexp.MustCompile(`^\d{4}(0[1-9]|1[0-2])$`)
)

// DealQuery identifies one upstream MOLIT request
type DealQuery struct {
	RegionCode   string       `json:"region_code"` // 법정동 시군구 코드 (LAWD_CD)
	YearMonth    string       `json:"year_month"`  // 계약년월 YYYYMM (DEAL_YMD)
	PropertyType PropertyType `json:"property_type"`
}

// Validate checks the query shape
func (q DealQuery) Validate() error {
	if !regionCodePattern.MatchString(q.RegionCode) {
		return fmt.Errorf("%w: region code must be 5 digits, got %q", ErrInvalidQuery, q.RegionCode)
	}
	if !yearMonthPattern.MatchString(q.YearMonth) {
		return fmt.Errorf("%w: year month must be YYYYMM, got %q", ErrInvalidQuery, q.YearMonth)
	}
	if !q.PropertyType.Valid() {
		return fmt.Errorf("%w: unknown property type %q", ErrInvalidQuery, q.PropertyType)
	}
	return nil
}

// String implements fmt.Stringer (로그용)
func (q DealQuery) String() string {
	return fmt.Sprintf("%s/%s/%s", q.RegionCode, q.YearMonth, q.PropertyType)
}

// CurrentYearMonth formats t as YYYYMM
func CurrentYearMonth(t time.Time) string {
	return t.Format("200601")
}

// FilterConfig restricts deals to a neighborhood and a maximum size
type FilterConfig struct {
	MaxAreaSqm           float64  `json:"max_area_sqm"`   // <= 0 이면 면적 조건 해제
	AreaTolerance        float64  `json:"area_tolerance"` // 전용면적 반올림 오차 허용치
	NeighborhoodKeywords []string `json:"neighborhood_keywords"`
}

// Source labels where deals came from
const (
	SourceAPI  = "api"
	SourceMock = "mock"
)

// DealsResult is the output of one fetch
type DealsResult struct {
	Query     DealQuery    `json:"query"`
	Deals     []Deal       `json:"deals"`
	Summary   DealsSummary `json:"summary"`
	Source    string       `json:"source"` // "api" | "mock"
	FetchedAt time.Time    `json:"fetched_at"`
}
