package complexmeta

import (
	"slices"

	"github.com/wonny/homeboard/backend/internal/contracts"
	"github.com/wonny/homeboard/backend/internal/deals"
)

// Table is an immutable complex-metadata dictionary
// ⭐ SSOT: 단지 메타데이터 (세대수/역거리/준공년도/최고층/평형)
type Table struct {
	entries map[string]contracts.ComplexMetadata
}

// builtin is the curated 운정신도시 set
var builtin = map[string]contracts.ComplexMetadata{
	"한빛마을12단지e편한세상운정어반프라임": {
		Households:      1224,
		StationDistance: "GTX 운정역 도보 12분",
		BuildYear:       2021,
		TotalFloors:     29,
		AreaTags:        []string{"84"},
	},
	"가람마을14단지푸르지오파르세나": {
		Households:      596,
		StationDistance: "운정역 버스 7분",
		BuildYear:       2020,
		TotalFloors:     25,
		AreaTags:        []string{"59", "84"},
	},
	"가람마을9단지힐스테이트운정": {
		Households:      930,
		StationDistance: "운정역 도보 15분",
		BuildYear:       2019,
		TotalFloors:     30,
		AreaTags:        []string{"84"},
	},
	"한양수자인리버팰리스아파트": {
		Households:      792,
		StationDistance: "야당역 도보 10분",
		BuildYear:       2018,
		TotalFloors:     29,
		AreaTags:        []string{"59", "84"},
	},
	"우미린11단지현대아이파크": {
		Households:      844,
		StationDistance: "GTX 운정역 도보 10분",
		BuildYear:       2022,
		TotalFloors:     30,
		AreaTags:        []string{"84"},
	},
	"세양에이리": {
		Households:      712,
		StationDistance: "야당역 버스 8분",
		BuildYear:       2017,
		TotalFloors:     25,
		AreaTags:        []string{"59"},
	},
}

// Builtin returns the built-in table
func Builtin() *Table {
	return newTable(builtin, nil)
}

func newTable(base, overrides map[string]contracts.ComplexMetadata) *Table {
	entries := make(map[string]contracts.ComplexMetadata, len(base)+len(overrides))
	for name, meta := range base {
		entries[deals.NormalizeComplexName(name)] = clone(meta)
	}
	for name, meta := range overrides {
		entries[deals.NormalizeComplexName(name)] = clone(meta)
	}
	return &Table{entries: entries}
}

// Lookup finds metadata by complex name (공백 무시, 대소문자 무시).
// The returned value is a copy; callers cannot mutate the table.
func (t *Table) Lookup(complexName string) (contracts.ComplexMetadata, bool) {
	key := deals.NormalizeComplexName(complexName)
	if key == "" {
		return contracts.ComplexMetadata{}, false
	}
	meta, ok := t.entries[key]
	if !ok {
		return contracts.ComplexMetadata{}, false
	}
	return clone(meta), true
}

// Len returns the number of complexes
func (t *Table) Len() int {
	return len(t.entries)
}

func clone(meta contracts.ComplexMetadata) contracts.ComplexMetadata {
	meta.AreaTags = slices.Clone(meta.AreaTags)
	return meta
}
