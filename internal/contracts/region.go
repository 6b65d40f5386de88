package contracts

// Region is a selectable 시군구 (LAWD_CD)
type Region struct {
	Code       string `json:"code"`
	Label      string `json:"label"`
	ShortLabel string `json:"short_label"`
}

// Regions is the list offered to the dashboard
var Regions = []Region{
	{Code: "11110", Label: "서울 종로구", ShortLabel: "종로구"},
	{Code: "11140", Label: "서울 중구", ShortLabel: "중구"},
	{Code: "11170", Label: "서울 용산구", ShortLabel: "용산구"},
	{Code: "11215", Label: "서울 광진구", ShortLabel: "광진구"},
	{Code: "11260", Label: "서울 중랑구", ShortLabel: "중랑구"},
	{Code: "11305", Label: "서울 은평구", ShortLabel: "은평구"},
	{Code: "11350", Label: "서울 노원구", ShortLabel: "노원구"},
	{Code: "11500", Label: "서울 강서구", ShortLabel: "강서구"},
	{Code: "11680", Label: "서울 강남구", ShortLabel: "강남구"},
	{Code: "11710", Label: "서울 송파구", ShortLabel: "송파구"},
	{Code: "11740", Label: "서울 강동구", ShortLabel: "강동구"},
	{Code: "41131", Label: "경기 수원시 영통구", ShortLabel: "영통구"},
	{Code: "41135", Label: "경기 용인시 기흥구", ShortLabel: "기흥구"},
	{Code: "41173", Label: "경기 성남시 분당구", ShortLabel: "분당구"},
	{Code: "41570", Label: "경기 화성시", ShortLabel: "화성시"},
	{Code: "41465", Label: "경기 하남시", ShortLabel: "하남시"},
	{Code: "41285", Label: "경기 고양시 일산동구", ShortLabel: "일산동구"},
	{Code: "41480", Label: "경기 파주시 (운정신도시)", ShortLabel: "파주시"},
	{Code: "42830", Label: "인천 연수구", ShortLabel: "연수구"},
}

// LookupRegion finds a region by code
func LookupRegion(code string) (Region, bool) {
	for _, r := range Regions {
		if r.Code == code {
			return r, true
		}
	}
	return Region{}, false
}
