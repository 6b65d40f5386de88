// Package loan holds the 생애최초 보금자리론 reference card and the
// eligibility rule applied to normalized deals.
package loan

import (
	"github.com/wonny/homeboard/backend/internal/contracts"
	"github.com/wonny/homeboard/backend/internal/deals"
	"github.com/wonny/homeboard/backend/pkg/config"
)

// MaxEligiblePrice is the 시가 9억 cap (won)
const MaxEligiblePrice int64 = 900_000_000

// Point is one labelled reference figure
type Point struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Helper string `json:"helper"`
}

// Reference is the static product summary
type Reference struct {
	Product   string   `json:"product"`
	Points    []Point  `json:"points"`
	Documents []string `json:"documents"`
}

// ⭐ SSOT: 보금자리론 안내 문구
var reference = Reference{
	Product: "생애최초 보금자리론",
	Points: []Point{
		{Label: "대출 한도", Value: "최대 4.7억", Helper: "생애최초 + 2인 이상 가구 기준"},
		{Label: "금리 구간", Value: "연 3.45%~", Helper: "신혼/다자녀 우대 시"},
		{Label: "LTV / DTI", Value: "70% / 60%", Helper: "비규제지역, 시가 9억 이하"},
		{Label: "거치 / 상환", Value: "거치 3년 / 30년", Helper: "중도상환수수료 3년간 1.2% → 0%"},
	},
	Documents: []string{
		"혼인·가족관계증명서, 주민등록등본, 등본상 세대원 전원 준비",
		"재직증명서 + 근로소득원천징수영수증(또는 소득금액증명)",
		"매매계약서 원본 및 잔금계약 관련 서류",
		"기존 대출 상환내역, 신용정보 조회 동의서",
	},
}

// GetReference returns a copy of the reference card
func GetReference() Reference {
	ref := reference
	ref.Points = append([]Point(nil), reference.Points...)
	ref.Documents = append([]string(nil), reference.Documents...)
	return ref
}

// Rules decide whether a deal fits the product
type Rules struct {
	MaxPrice      int64
	MaxAreaSqm    float64
	AreaTolerance float64
}

// RulesFromConfig uses the deal area policy with the 9억 price cap
func RulesFromConfig(cfg config.DealsConfig) Rules {
	return Rules{
		MaxPrice:      MaxEligiblePrice,
		MaxAreaSqm:    cfg.MaxAreaSqm,
		AreaTolerance: cfg.AreaTolerance,
	}
}

// Eligible reports whether the deal price is known and within the cap and
// the area passes the area rule
func Eligible(d contracts.Deal, r Rules) bool {
	if d.Price <= 0 || (r.MaxPrice > 0 && d.Price > r.MaxPrice) {
		return false
	}
	return deals.MatchesArea(d, contracts.FilterConfig{
		MaxAreaSqm:    r.MaxAreaSqm,
		AreaTolerance: r.AreaTolerance,
	})
}

// CountEligible counts eligible deals
func CountEligible(list []contracts.Deal, r Rules) int {
	n := 0
	for _, d := range list {
		if Eligible(d, r) {
			n++
		}
	}
	return n
}
