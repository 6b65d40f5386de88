package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/homeboard/backend/internal/api"
	"github.com/wonny/homeboard/backend/internal/api/handlers"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "API 서버 + 스케줄러 시작",
	Long: `REST API 서버를 시작하고 캐시 갱신 스케줄러를 함께 실행합니다.

Endpoints:
  GET /health
  GET /api/deals           - 실거래 요약 (region, yearMonth, propertyType, areaClass, buildAge, maxPrice, sort, page)
  GET /api/market          - 기준금리 / 환율
  GET /api/news            - 부동산 뉴스
  GET /api/regions         - 지역 코드 목록
  GET /api/loan            - 보금자리론 안내
  GET /api/scheduler/jobs  - 스케줄 작업 상태

Example:
  go run ./cmd/homeboard serve
  go run ./cmd/homeboard serve --port 9000 --no-scheduler`,
	RunE: runServe,
}

var (
	servePort   string
	noScheduler bool
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&servePort, "port", "", "API 서버 포트 (기본: PORT)")
	serveCmd.Flags().BoolVar(&noScheduler, "no-scheduler", false, "스케줄러 없이 API만 실행")
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if servePort != "" {
		a.cfg.Port = servePort
	}

	sched, err := a.newScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}

	router := api.NewRouter(api.Handlers{
		Deals:     handlers.NewDealsHandler(a.collector, a.cfg.Deals, a.log),
		Feeds:     handlers.NewFeedsHandler(a.market, a.news, a.log),
		Reference: handlers.NewReferenceHandler(sched),
	}, a.log)
	server := api.New(a.cfg, a.log, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	if !noScheduler {
		sched.Start()
		defer sched.Stop()
	}

	fmt.Printf("\n✅ Server running on http://localhost:%s (source: %s)\n", a.cfg.Port, a.collector.Source())
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	a.log.Info("Server stopped")
	return nil
}
