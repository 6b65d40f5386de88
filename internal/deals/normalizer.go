package deals

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wonny/homeboard/backend/internal/contracts"
)

// manWon is the upstream price unit (만원)
const manWon = 10_000

// Standard unit-size classes (전용면적 ㎡)
var areaClasses = []struct {
	tag      string
	min, max float64
}{
	{tag: "59", min: 55, max: 66},
	{tag: "84", min: 80, max: 90},
}

// Normalizer builds canonical deals from raw rows
// ⭐ SSOT: 실거래 정규화 로직
type Normalizer struct {
	meta     contracts.MetadataLookup
	now      func() time.Time
	newToken func() string
}

// Option configures a Normalizer
type Option func(*Normalizer)

// WithClock sets the clock used for missing contract date parts
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) { n.now = now }
}

// WithTokenGenerator sets the generator used when a row has no serial number
func WithTokenGenerator(fn func() string) Option {
	return func(n *Normalizer) { n.newToken = fn }
}

// NewNormalizer creates a normalizer; meta may be nil
func NewNormalizer(meta contracts.MetadataLookup, opts ...Option) *Normalizer {
	n := &Normalizer{
		meta:     meta,
		now:      time.Now,
		newToken: uuid.NewString,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize converts one raw row. It never fails: missing numbers become 0,
// missing strings fall back to sentinels, and missing date parts fall back
// to the normalizer clock.
func (n *Normalizer) Normalize(raw contracts.RawRecord, propertyType contracts.PropertyType) contracts.Deal {
	area := math.Max(PickNumber(raw, Aliases[FieldArea]), 0)
	price := int64(math.Round(math.Max(PickNumber(raw, Aliases[FieldPrice]), 0) * manWon))

	lawdCode, _ := PickField(raw, FieldLawdCode)
	date := n.contractDate(raw)

	complexName, ok := PickField(raw, FieldComplexName)
	if !ok {
		complexName = contracts.UnknownComplexName
	}
	regionName, ok := PickField(raw, FieldRegionName)
	if !ok {
		regionName = lawdCode
	}

	floorLabel, _ := PickField(raw, FieldFloor)
	totalFloors := positiveInt(PickNumber(raw, Aliases[FieldTotalFloors]))
	buildYear := positiveInt(PickNumber(raw, Aliases[FieldBuildYear]))

	// 메타데이터는 Deal 생성 전에 확정 (생성 후 변경 없음)
	var households *int
	var stationDistance string
	var metaTags []string
	if meta, found := n.lookup(complexName); found {
		households = positiveInt(float64(meta.Households))
		stationDistance = meta.StationDistance
		metaTags = meta.AreaTags
		if totalFloors == nil {
			totalFloors = positiveInt(float64(meta.TotalFloors))
		}
		if buildYear == nil {
			buildYear = positiveInt(float64(meta.BuildYear))
		}
	}

	serial, ok := PickField(raw, FieldSerial)
	if !ok {
		serial = n.newToken()
	}

	pricePerArea := float64(price)
	if area > 0 {
		pricePerArea = float64(price) / area
	}

	deal := contracts.Deal{
		ID:              fmt.Sprintf("%s-%s", lawdCode, serial),
		PropertyType:    propertyType,
		ComplexName:     complexName,
		Area:            area,
		FloorLabel:      floorLabel,
		FloorNumber:     parseFloor(floorLabel),
		TotalFloors:     totalFloors,
		ContractDate:    date,
		Price:           price,
		PricePerArea:    pricePerArea,
		RegionName:      regionName,
		LawdCode:        lawdCode,
		BuildYear:       buildYear,
		Households:      households,
		StationDistance: stationDistance,
		AreaTag:         ClassifyAreaTag(area, metaTags),
		Year:            date.Year(),
		Month:           int(date.Month()),
	}
	deal.Neighborhood, _ = PickField(raw, FieldNeighborhood)
	deal.RoadName, _ = PickField(raw, FieldRoadName)
	deal.SggCode, _ = PickField(raw, FieldSggCode)
	deal.UmdCode, _ = PickField(raw, FieldUmdCode)
	deal.Bonbun, _ = PickField(raw, FieldBonbun)
	deal.Bubun, _ = PickField(raw, FieldBubun)

	return deal
}

// NormalizeAll normalizes every row, orders the result by contract date
// (newest first) and suffixes duplicate IDs with -2, -3, ...
func (n *Normalizer) NormalizeAll(records []contracts.RawRecord, propertyType contracts.PropertyType) []contracts.Deal {
	out := make([]contracts.Deal, 0, len(records))
	for _, raw := range records {
		out = append(out, n.Normalize(raw, propertyType))
	}

	SortByContractDateDesc(out)
	ensureUniqueIDs(out)
	return out
}

// SortByContractDateDesc sorts in place, newest first; ties keep input order
func SortByContractDateDesc(deals []contracts.Deal) {
	sort.SliceStable(deals, func(i, j int) bool {
		return deals[i].ContractDate.After(deals[j].ContractDate.Time)
	})
}

func ensureUniqueIDs(deals []contracts.Deal) {
	used := make(map[string]bool, len(deals))
	for i := range deals {
		id := deals[i].ID
		for k := 2; used[id]; k++ {
			id = fmt.Sprintf("%s-%d", deals[i].ID, k)
		}
		deals[i].ID = id
		used[id] = true
	}
}

// contractDate assembles the date; each missing or out-of-range part falls
// back to the clock independently. Day is clamped to the month length.
// NOTE: 계약일 누락을 현재 날짜로 채우는 것은 기존 동작 호환용
func (n *Normalizer) contractDate(raw contracts.RawRecord) contracts.Date {
	now := n.now()

	year := int(PickNumber(raw, Aliases[FieldYear]))
	if year <= 0 {
		year = now.Year()
	}
	month := int(PickNumber(raw, Aliases[FieldMonth]))
	if month < 1 || month > 12 {
		month = int(now.Month())
	}
	day := int(PickNumber(raw, Aliases[FieldDay]))
	if day < 1 {
		day = now.Day()
	}
	if last := daysIn(year, month); day > last {
		day = last
	}

	return contracts.NewDate(year, month, day)
}

func (n *Normalizer) lookup(complexName string) (contracts.ComplexMetadata, bool) {
	if n.meta == nil || complexName == contracts.UnknownComplexName {
		return contracts.ComplexMetadata{}, false
	}
	return n.meta.Lookup(complexName)
}

// ClassifyAreaTag picks the unit-size class for a deal.
// 메타데이터 태그가 하나뿐이면 그것을, 아니면 면적 구간을, 그래도 없으면 메타데이터 첫 태그를 사용.
func ClassifyAreaTag(area float64, metaTags []string) string {
	if len(metaTags) == 1 {
		return metaTags[0]
	}
	for _, c := range areaClasses {
		if area >= c.min && area <= c.max {
			return c.tag
		}
	}
	if len(metaTags) > 0 {
		return metaTags[0]
	}
	return ""
}

// NormalizeComplexName is the metadata key form: no whitespace, lower-case
func NormalizeComplexName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), ""))
}

func parseFloor(label string) *int {
	if !strings.ContainsAny(label, "0123456789") {
		return nil
	}
	f := int(CoerceNumber(label))
	return &f
}

func positiveInt(v float64) *int {
	if v <= 0 {
		return nil
	}
	i := int(v)
	return &i
}

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
