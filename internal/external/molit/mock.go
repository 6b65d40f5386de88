package molit

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/wonny/homeboard/backend/internal/contracts"
	"github.com/wonny/homeboard/backend/internal/deals"
)

// DefaultMockRows matches one dashboard page of history
const DefaultMockRows = 24

var mockBasePrices = map[contracts.PropertyType]float64{
	contracts.PropertyApartment: 970_000_000,
	contracts.PropertyOfficetel: 520_000_000,
	contracts.PropertyHouse:     780_000_000,
}

var mockComplexes = []string{
	"운정힐스테이트",
	"한화포레나운정",
	"동문굿모닝힐",
	"가람마을14단지 푸르지오파르세나",
	"한라비발디",
	"자이더시티",
	"e편한세상운정",
	"센트럴푸르지오",
}

var mockDongs = []string{"목동동", "야당동", "동패동", "와동동"}

// MockSource produces deterministic raw rows when no API key is configured.
// Rows use the legacy Korean keys so the full normalization path runs.
type MockSource struct {
	now  func() time.Time
	rows int
}

// NewMockSource creates a mock source; now may be nil
func NewMockSource(now func() time.Time) *MockSource {
	if now == nil {
		now = time.Now
	}
	return &MockSource{now: now, rows: DefaultMockRows}
}

// Name implements contracts.DealSource
func (m *MockSource) Name() string {
	return contracts.SourceMock
}

// FetchRecords returns one row every 5 days going back from the end of the
// requested month (or today, whichever is earlier)
func (m *MockSource) FetchRecords(ctx context.Context, q contracts.DealQuery) ([]contracts.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	anchor := m.anchor(q.YearMonth)
	base, ok := mockBasePrices[q.PropertyType]
	if !ok {
		base = mockBasePrices[contracts.PropertyApartment]
	}

	records := make([]contracts.RawRecord, 0, m.rows)
	for i := 0; i < m.rows; i++ {
		dealDate := anchor.AddDate(0, 0, -5*i)
		seasonality := math.Sin(float64(i)/4) * 25_000_000
		noise := math.Sin(float64(i)*2.3+0.7) * 25_000_000
		price := math.Max(200_000_000, base+seasonality+noise)
		area := 74 + float64(i%5)*3

		raw := contracts.RawRecord{
			"거래금액":     deals.FormatNumber(math.Round(price / 10_000)),
			"전용면적":     fmt.Sprintf("%.2f", area),
			"법정동시군구코드": q.RegionCode,
			"년":        fmt.Sprint(dealDate.Year()),
			"월":        fmt.Sprint(int(dealDate.Month())),
			"일":        fmt.Sprint(dealDate.Day()),
			"법정동":      mockDongs[i%len(mockDongs)],
			"일련번호":     fmt.Sprintf("%s-%d", q.PropertyType, i),
			"건축년도":     fmt.Sprint(2015 + i%8),
		}
		if q.PropertyType == contracts.PropertyHouse {
			raw["단지명"] = "전원주택"
		} else {
			raw["아파트"] = mockComplexes[i%len(mockComplexes)]
			raw["층"] = fmt.Sprint(10 + i%15)
			raw["총층수"] = fmt.Sprint(25 + (i%5)*3)
		}
		records = append(records, raw)
	}

	return records, nil
}

func (m *MockSource) anchor(yearMonth string) time.Time {
	now := m.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	start, err := time.Parse("200601", yearMonth)
	if err != nil {
		return today
	}
	monthEnd := start.AddDate(0, 1, -1)
	if monthEnd.Before(today) {
		return monthEnd
	}
	return today
}

var _ contracts.DealSource = (*MockSource)(nil)
