package contracts

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// PropertyType identifies the MOLIT transaction dataset
type PropertyType string

const (
	PropertyApartment PropertyType = "apartment" // 아파트
	PropertyOfficetel PropertyType = "officetel" // 오피스텔
	PropertyHouse     PropertyType = "house"     // 단독/다가구
)

// PropertyTypes lists every supported type in display order
var PropertyTypes = []PropertyType{PropertyApartment, PropertyOfficetel, PropertyHouse}

// ParsePropertyType parses a property type, case-insensitively
func ParsePropertyType(s string) (PropertyType, error) {
	pt := PropertyType(strings.ToLower(strings.TrimSpace(s)))
	if !pt.Valid() {
		return "", fmt.Errorf("%w: unknown property type %q", ErrInvalidQuery, s)
	}
	return pt, nil
}

// Valid reports whether the type is one of the supported datasets
func (p PropertyType) Valid() bool {
	switch p {
	case PropertyApartment, PropertyOfficetel, PropertyHouse:
		return true
	}
	return false
}

// Label returns the Korean display name
func (p PropertyType) Label() string {
	switch p {
	case PropertyApartment:
		return "아파트"
	case PropertyOfficetel:
		return "오피스텔"
	case PropertyHouse:
		return "단독/다가구"
	}
	return string(p)
}

// RawRecord is one upstream transaction row.
// 키는 API 버전/주택유형마다 다르며 (한글 키 포함) 값은 string, json.Number, float64 또는 nil.
type RawRecord map[string]any

// UnknownComplexName is used when upstream omits the complex name
const UnknownComplexName = "미확인"

// Date is a calendar date serialized as YYYY-MM-DD
type Date struct {
	time.Time
}

// NewDate builds a UTC calendar date
func NewDate(year, month, day int) Date {
	return Date{time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// String formats the date as YYYY-MM-DD
func (d Date) String() string {
	return d.Format(time.DateOnly)
}

// MarshalJSON implements json.Marshaler
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// Deal is one normalized real-estate transaction
// ⭐ SSOT: 실거래 정규화 결과는 이 타입으로만 전달
type Deal struct {
	ID           string       `json:"id"` // {lawd_code}-{serial}
	PropertyType PropertyType `json:"property_type"`
	ComplexName  string       `json:"complex_name"`
	Area         float64      `json:"area"` // 전용면적 (㎡)
	FloorLabel   string       `json:"floor_label,omitempty"`
	FloorNumber  *int         `json:"floor_number,omitempty"`
	TotalFloors  *int         `json:"total_floors,omitempty"`
	ContractDate Date         `json:"contract_date"`
	Price        int64        `json:"price"`          // 원
	PricePerArea float64      `json:"price_per_area"` // 원/㎡

	RegionName   string `json:"region_name"`
	Neighborhood string `json:"neighborhood,omitempty"`
	RoadName     string `json:"road_name,omitempty"`
	LawdCode     string `json:"lawd_code"`
	SggCode      string `json:"sgg_code,omitempty"`
	UmdCode      string `json:"umd_code,omitempty"`
	Bonbun       string `json:"bonbun,omitempty"`
	Bubun        string `json:"bubun,omitempty"`

	BuildYear       *int   `json:"build_year,omitempty"`
	Households      *int   `json:"households,omitempty"`       // 단지 메타데이터
	StationDistance string `json:"station_distance,omitempty"` // 단지 메타데이터
	AreaTag         string `json:"area_tag,omitempty"`         // "59" | "84"

	Year  int `json:"year"`
	Month int `json:"month"`
}

// YearMonth returns the YYYY-MM grouping label
func (d Deal) YearMonth() string {
	return fmt.Sprintf("%04d-%02d", d.Year, d.Month)
}

// Location joins every location descriptor for keyword matching
func (d Deal) Location() string {
	return d.RegionName + d.Neighborhood + d.ComplexName + d.RoadName
}
