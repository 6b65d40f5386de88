package deals

import (
	"fmt"
	"sort"
	"time"

	"github.com/wonny/homeboard/backend/internal/contracts"
)

// DefaultPageSize is the dashboard table page size
const DefaultPageSize = 10

// AreaClass selects a unit-size class
type AreaClass string

const (
	AreaAll AreaClass = "all"
	Area59  AreaClass = "59"
	Area84  AreaClass = "84"
)

// BuildAge selects a building-age bucket
type BuildAge string

const (
	AgeAll BuildAge = "all"
	AgeNew BuildAge = "new" // 0~5년
	AgeMid BuildAge = "mid" // 6~10년
	AgeOld BuildAge = "old" // 10년 초과
)

// SortOrder orders the refined list
type SortOrder string

const (
	SortNone      SortOrder = "none"
	SortPriceAsc  SortOrder = "price-asc"
	SortPriceDesc SortOrder = "price-desc"
	SortRecent    SortOrder = "recent"
)

// RefineOptions are the dashboard-side narrowing controls
type RefineOptions struct {
	AreaClass AreaClass
	BuildAge  BuildAge
	MaxPrice  int64 // 예산 상한 (원), 0 이면 해제
	Sort      SortOrder
	Page      int // 1-based
	PageSize  int
}

// Validate rejects unknown option values
func (o RefineOptions) Validate() error {
	switch o.AreaClass {
	case "", AreaAll, Area59, Area84:
	default:
		return fmt.Errorf("%w: unknown area class %q", contracts.ErrInvalidQuery, o.AreaClass)
	}
	switch o.BuildAge {
	case "", AgeAll, AgeNew, AgeMid, AgeOld:
	default:
		return fmt.Errorf("%w: unknown build age %q", contracts.ErrInvalidQuery, o.BuildAge)
	}
	switch o.Sort {
	case "", SortNone, SortPriceAsc, SortPriceDesc, SortRecent:
	default:
		return fmt.Errorf("%w: unknown sort order %q", contracts.ErrInvalidQuery, o.Sort)
	}
	if o.MaxPrice < 0 {
		return fmt.Errorf("%w: negative max price", contracts.ErrInvalidQuery)
	}
	return nil
}

// Page is one page of refined deals
type Page struct {
	Deals      []contracts.Deal `json:"deals"`
	Matched    int              `json:"matched"` // 조건 일치 건수
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

// Refine narrows, sorts and paginates deals. now supplies the current year
// for build-age buckets. The input slice is not modified.
func Refine(deals []contracts.Deal, opts RefineOptions, now time.Time) Page {
	currentYear := now.Year()

	matched := make([]contracts.Deal, 0, len(deals))
	for _, d := range deals {
		if matchesAreaClass(d, opts.AreaClass) &&
			matchesBuildAge(d, opts.BuildAge, currentYear) &&
			(opts.MaxPrice <= 0 || d.Price <= opts.MaxPrice) {
			matched = append(matched, d)
		}
	}

	switch opts.Sort {
	case SortPriceAsc:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Price < matched[j].Price })
	case SortPriceDesc:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Price > matched[j].Price })
	case SortRecent:
		SortByContractDateDesc(matched)
	}

	size := opts.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	totalPages := max(1, (len(matched)+size-1)/size)
	page := min(max(1, opts.Page), totalPages)

	start := (page - 1) * size
	end := min(start+size, len(matched))

	return Page{
		Deals:      matched[start:end],
		Matched:    len(matched),
		Page:       page,
		PageSize:   size,
		TotalPages: totalPages,
	}
}

// matchesAreaClass prefers the deal's area tag, then falls back to size ranges
func matchesAreaClass(d contracts.Deal, class AreaClass) bool {
	if class == "" || class == AreaAll {
		return true
	}
	if d.AreaTag != "" {
		return d.AreaTag == string(class)
	}
	if d.Area == 0 {
		return false
	}
	for _, c := range areaClasses {
		if c.tag == string(class) {
			return d.Area >= c.min && d.Area <= c.max
		}
	}
	return true
}

func matchesBuildAge(d contracts.Deal, bucket BuildAge, currentYear int) bool {
	if bucket == "" || bucket == AgeAll {
		return true
	}
	if d.BuildYear == nil {
		return false
	}
	age := currentYear - *d.BuildYear
	switch bucket {
	case AgeNew:
		return age <= 5
	case AgeMid:
		return age > 5 && age <= 10
	default:
		return age > 10
	}
}
