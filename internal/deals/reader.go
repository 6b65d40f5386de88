// Package deals turns raw MOLIT transaction rows into normalized deals,
// filters them to a neighborhood and size class, and summarizes them.
//
// Everything in this package is pure: no I/O, no shared mutable state.
// 네트워크/캐시는 collector 패키지의 책임.
package deals

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/wonny/homeboard/backend/internal/contracts"
)

// Field is a logical field of a raw transaction row
type Field string

const (
	FieldArea         Field = "area"
	FieldPrice        Field = "price"
	FieldLawdCode     Field = "lawd_code"
	FieldYear         Field = "year"
	FieldMonth        Field = "month"
	FieldDay          Field = "day"
	FieldComplexName  Field = "complex_name"
	FieldRegionName   Field = "region_name"
	FieldNeighborhood Field = "neighborhood"
	FieldFloor        Field = "floor"
	FieldTotalFloors  Field = "total_floors"
	FieldSerial       Field = "serial"
	FieldRoadName     Field = "road_name"
	FieldBuildYear    Field = "build_year"
	FieldSggCode      Field = "sgg_code"
	FieldUmdCode      Field = "umd_code"
	FieldBonbun       Field = "bonbun"
	FieldBubun        Field = "bubun"
)

// Aliases maps each logical field to its raw keys, highest priority first.
// 구 API (한글 키), 신 API (영문 축약 키), 내부 mock 키를 모두 흡수한다.
// ⭐ SSOT: 필드 별칭은 여기서만 정의
var Aliases = map[Field][]string{
	FieldArea:         {"전용면적", "excluUseAr", "exclusiveArea", "area"},
	FieldPrice:        {"거래금액", "dealAmount", "price"},
	FieldLawdCode:     {"법정동시군구코드", "lawdCd", "LAWD_CD", "sggCd", "regionCode"},
	FieldYear:         {"년", "dealYear", "contractYear"},
	FieldMonth:        {"월", "dealMonth", "contractMonth"},
	FieldDay:          {"일", "dealDay", "contractDay"},
	FieldComplexName:  {"아파트", "aptNm", "aptName", "단지명", "단지", "offiNm", "mhouseNm", "연립다세대", "complexName"},
	FieldRegionName:   {"법정동", "umdNm", "region", "regionName"},
	FieldNeighborhood: {"법정동읍면동", "읍면동", "neighborhood", "dong"},
	FieldFloor:        {"층", "floor"},
	FieldTotalFloors:  {"총층수", "totalFloors", "totalFloor"},
	FieldSerial:       {"일련번호", "serialNumber", "aptSeq", "serial"},
	FieldRoadName:     {"도로명", "roadNm", "roadName"},
	FieldBuildYear:    {"건축년도", "buildYear"},
	FieldSggCode:      {"법정동시군구코드", "sggCd", "sggCode"},
	FieldUmdCode:      {"법정동읍면동코드", "umdCd", "umdCode"},
	FieldBonbun:       {"법정동본번코드", "bonbun"},
	FieldBubun:        {"법정동부번코드", "bubun"},
}

// PickValue returns the first usable value among keys.
// A value is usable when present, non-nil, and (for strings) non-blank.
// Absence is reported as (nil, false); PickValue never panics.
func PickValue(record contracts.RawRecord, keys []string) (any, bool) {
	for _, key := range keys {
		v, ok := record[key]
		if !ok || v == nil {
			continue
		}
		switch s := v.(type) {
		case string:
			if strings.TrimSpace(s) == "" {
				continue
			}
		case json.Number:
			if strings.TrimSpace(s.String()) == "" {
				continue
			}
		}
		return v, true
	}
	return nil, false
}

// PickString picks a value and renders it as a trimmed string
func PickString(record contracts.RawRecord, keys []string) (string, bool) {
	v, ok := PickValue(record, keys)
	if !ok {
		return "", false
	}
	s := strings.TrimSpace(stringify(v))
	return s, s != ""
}

// PickNumber picks a value and coerces it to a number (0 when absent)
func PickNumber(record contracts.RawRecord, keys []string) float64 {
	v, ok := PickValue(record, keys)
	if !ok {
		return 0
	}
	return CoerceNumber(v)
}

// PickField is PickString over the alias list of f
func PickField(record contracts.RawRecord, f Field) (string, bool) {
	return PickString(record, Aliases[f])
}

func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	default:
		return fmt.Sprint(x)
	}
}
