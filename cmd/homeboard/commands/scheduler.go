package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "스케줄러 관리",
	Long: `캐시 갱신 스케줄러를 실행하거나 작업을 관리합니다.

등록되는 작업:
- deals_refresh: 10분마다 (기본 지역 이번 달/지난 달 실거래)
- news_refresh: 30분마다 (RSS 뉴스)
- market_refresh: 매시 정각 (환율)

Example:
  go run ./cmd/homeboard scheduler start
  go run ./cmd/homeboard scheduler list
  go run ./cmd/homeboard scheduler run deals_refresh`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "스케줄러만 실행 (API 없이)",
		RunE:  runScheduler,
	}

	schedulerListCmd = &cobra.Command{
		Use:   "list",
		Short: "등록된 작업 목록",
		RunE:  listJobs,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "특정 작업 즉시 실행 (완료까지 대기)",
		Args:  cobra.ExactArgs(1),
		RunE:  runJob,
	}
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerListCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
}

func runScheduler(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	sched, err := a.newScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}

	sched.Start()
	PrintSuccess("Scheduler started")
	for _, name := range sched.GetAllJobs() {
		fmt.Printf("  - %s\n", name)
	}
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()
	return nil
}

func listJobs(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	sched, err := a.newScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}

	stats := sched.GetJobStats()
	if jsonOutput {
		return PrintJSON(stats)
	}

	widths := []int{16, 16}
	PrintTableHeader([]string{"JOB", "SCHEDULE"}, widths)
	for _, st := range stats {
		PrintTableRow([]string{st.JobName, st.Schedule}, widths)
	}
	return nil
}

func runJob(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	sched, err := a.newScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
	defer cancel()

	fmt.Printf("Running job: %s\n", args[0])
	result, err := sched.RunJobSync(ctx, args[0])
	if err != nil {
		return err
	}

	PrintSuccess(fmt.Sprintf("%s completed in %.2fs (attempts: %d)", result.JobName, result.Duration.Seconds(), result.Attempts))
	return nil
}
