package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/homeboard/backend/internal/collector"
	"github.com/wonny/homeboard/backend/internal/contracts"
	"github.com/wonny/homeboard/backend/internal/deals"
	"github.com/wonny/homeboard/backend/internal/loan"
)

// dealsCmd represents the deals command
var dealsCmd = &cobra.Command{
	Use:   "deals",
	Short: "실거래 조회",
	Long: `국토부 실거래가를 조회해 운정 84㎡ 이하 거래를 요약합니다.

Example:
  go run ./cmd/homeboard deals
  go run ./cmd/homeboard deals --region 41480 --month 202502 --type officetel
  go run ./cmd/homeboard deals --area 59 --sort price-asc --max-price 80000`,
	RunE: runDeals,
}

var (
	dealsRegion   string
	dealsMonth    string
	dealsType     string
	dealsArea     string
	dealsAge      string
	dealsMaxPrice int64
	dealsSort     string
	dealsPage     int
)

func init() {
	rootCmd.AddCommand(dealsCmd)

	dealsCmd.Flags().StringVar(&dealsRegion, "region", "", "법정동 시군구 코드 (기본: DEFAULT_REGION_CODE)")
	dealsCmd.Flags().StringVar(&dealsMonth, "month", "", "계약 연월 YYYYMM (기본: 이번 달)")
	dealsCmd.Flags().StringVar(&dealsType, "type", "", "apartment | officetel | house")
	dealsCmd.Flags().StringVar(&dealsArea, "area", "all", "평형: all | 59 | 84")
	dealsCmd.Flags().StringVar(&dealsAge, "age", "all", "연식: all | new | mid | old")
	dealsCmd.Flags().Int64Var(&dealsMaxPrice, "max-price", 0, "예산 상한 (만원)")
	dealsCmd.Flags().StringVar(&dealsSort, "sort", "recent", "none | price-asc | price-desc | recent")
	dealsCmd.Flags().IntVar(&dealsPage, "page", 1, "페이지 (10건 단위)")
}

func runDeals(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	q := contracts.DealQuery{
		RegionCode:   firstNonEmpty(dealsRegion, a.cfg.Deals.DefaultRegion),
		YearMonth:    firstNonEmpty(dealsMonth, contracts.CurrentYearMonth(time.Now())),
		PropertyType: contracts.PropertyType(firstNonEmpty(dealsType, a.cfg.Deals.DefaultPropertyType)),
	}
	opts := deals.RefineOptions{
		AreaClass: deals.AreaClass(dealsArea),
		BuildAge:  deals.BuildAge(dealsAge),
		MaxPrice:  dealsMaxPrice * 10_000,
		Sort:      deals.SortOrder(dealsSort),
		Page:      dealsPage,
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	result, err := a.collector.FetchDeals(ctx, q)
	if err != nil {
		if collector.IsEmptyResult(err) {
			PrintWarning(emptyReason(err, q))
			return nil
		}
		return err
	}

	page := deals.Refine(result.Deals, opts, time.Now())
	if jsonOutput {
		return PrintJSON(map[string]interface{}{
			"result": result,
			"page":   page,
		})
	}

	printDeals(result, page, loan.CountEligible(result.Deals, loan.RulesFromConfig(a.cfg.Deals)))
	return nil
}

func printDeals(result *contracts.DealsResult, page deals.Page, eligible int) {
	s := result.Summary
	region := result.Query.RegionCode
	if r, ok := contracts.LookupRegion(region); ok {
		region = r.Label
	}

	PrintHeader(fmt.Sprintf("%s %s 실거래 (%s)", region, result.Query.PropertyType.Label(), result.Query.YearMonth),
		fmt.Sprintf("Source    : %s", result.Source),
		fmt.Sprintf("Fetched   : %s", result.FetchedAt.Format("2006-01-02 15:04:05")),
	)

	PrintKeyValue("거래 건수", strconv.Itoa(s.TotalDeals), 10)
	PrintKeyValue("최근 거래가", deals.FormatOptionalPrice(s.LatestPrice), 10)
	PrintKeyValue("직전 대비", deals.PercentLabel(s.ChangeRatio), 10)
	PrintKeyValue("평균가", deals.FormatKoreanPrice(s.AveragePrice), 10)
	PrintKeyValue("중위가", deals.FormatKoreanPrice(s.MedianPrice), 10)
	PrintKeyValue("면적 범위", fmt.Sprintf("%.1f ~ %.1f㎡", s.AreaRange[0], s.AreaRange[1]), 10)
	PrintKeyValue("보금자리론", fmt.Sprintf("%d건 (시가 9억 이하)", eligible), 10)
	fmt.Println()

	widths := []int{10, 34, 22, 8, 18}
	PrintTableHeader([]string{"계약일", "단지", "면적", "층", "거래가"}, widths)
	for _, d := range page.Deals {
		floor := d.FloorLabel
		if floor == "" {
			floor = "-"
		}
		PrintTableRow([]string{
			d.ContractDate.String(),
			d.ComplexName,
			deals.FormatArea(d.Area),
			floor,
			deals.FormatKoreanPrice(float64(d.Price)),
		}, widths)
	}
	PrintSeparator()
	fmt.Printf("  %d건 중 %d/%d 페이지\n", page.Matched, page.Page, page.TotalPages)

	if len(s.MonthlySeries) > 1 {
		fmt.Println()
		for _, p := range s.MonthlySeries {
			PrintKeyValue(p.Label, deals.FormatKoreanPrice(p.Value), 8)
		}
	}
}

func emptyReason(err error, q contracts.DealQuery) string {
	if errors.Is(err, contracts.ErrNoQualifyingDeals) {
		return fmt.Sprintf("%s: 조건(운정, 84㎡ 이하)에 맞는 거래가 없습니다", q)
	}
	return fmt.Sprintf("%s: 신고된 거래가 없습니다", q)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
