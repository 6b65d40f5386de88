package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	verbose    bool
	jsonOutput bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "homeboard",
	Short: "운정 부동산 대시보드 백엔드",
	Long: `Homeboard CLI

국토교통부 실거래가 + 시장 지표 + 뉴스를 모아 보여주는 대시보드 백엔드.
MOLIT_API_KEY 가 없으면 mock 데이터로 동작합니다.

Usage:
  go run ./cmd/homeboard [command]

Examples:
  go run ./cmd/homeboard serve
  go run ./cmd/homeboard deals --region 41480 --month 202503
  go run ./cmd/homeboard market
  go run ./cmd/homeboard scheduler run deals_refresh`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "env file (default: .env discovery)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print raw JSON instead of tables")
}
