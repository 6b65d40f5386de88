package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/homeboard/backend/internal/deals"
)

var marketCmd = &cobra.Command{
	Use:   "market",
	Short: "기준금리 / 환율 조회",
	RunE:  runMarket,
}

var newsCmd = &cobra.Command{
	Use:   "news",
	Short: "부동산 뉴스 조회 (최근 7일)",
	RunE:  runNews,
}

func init() {
	rootCmd.AddCommand(marketCmd)
	rootCmd.AddCommand(newsCmd)
}

func runMarket(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	m, err := a.market.Indicators(ctx)
	if err != nil {
		return err
	}
	if jsonOutput {
		return PrintJSON(m)
	}

	PrintHeader("시장 지표", fmt.Sprintf("Updated   : %s", m.UpdatedAt.Format("2006-01-02")))
	for _, ind := range []struct {
		label, value, source string
	}{
		{m.BaseRates.Korea.Label, fmt.Sprintf("%.2f%%", m.BaseRates.Korea.Value), m.BaseRates.Korea.Source},
		{m.BaseRates.US.Label, fmt.Sprintf("%.2f%%", m.BaseRates.US.Value), m.BaseRates.US.Source},
		{m.USDKRW.Label, deals.FormatNumber(m.USDKRW.Value) + "원", m.USDKRW.Source},
	} {
		PrintKeyValue(ind.label, fmt.Sprintf("%s  (%s)", ind.value, ind.source), 14)
	}
	return nil
}

func runNews(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	feed, err := a.news.Feed(ctx)
	if err != nil {
		return err
	}
	if jsonOutput {
		return PrintJSON(feed)
	}

	PrintHeader("부동산 뉴스", fmt.Sprintf("Updated   : %s", feed.UpdatedAt.Format("2006-01-02 15:04")))
	if feed.Error != "" {
		PrintWarning("이전 뉴스 표시 중: " + feed.Error)
	}
	for i, article := range feed.Articles {
		fmt.Printf("%d. %s\n", i+1, article.Title)
		fmt.Printf("   %s · %s\n", article.Source, article.PublishedAt.Local().Format("01-02 15:04"))
		fmt.Printf("   %s\n", article.URL)
	}
	if len(feed.Articles) == 0 {
		PrintWarning("최근 7일 내 기사가 없습니다")
	}
	return nil
}
