package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skysift/skysift/core/stats"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Summarize departure delays of a batch file",
	RunE:  runAnalyze,
}

func init() {
	registerBatchFlags(analyzeCmd)
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	res, err := loadBatch()
	if err != nil {
		return err
	}
	sum := stats.Summarize(res.Departures)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "records:    %d normalized, %d rejected\n", sum.Count, res.Rejected)
	if sum.Count == 0 {
		return nil
	}
	fmt.Fprintf(out, "delay mean: %.1f min (stddev %.1f)\n", sum.MeanDelay, sum.StdDevDelay)
	fmt.Fprintf(out, "delay p50:  %.1f  p90: %.1f  p99: %.1f\n", sum.P50, sum.P90, sum.P99)
	fmt.Fprintf(out, "trend:      %+.3f min/min of day (r2 %.2f)\n", sum.Trend.Beta, sum.Trend.RSquared)
	for _, h := range sum.Hours {
		fmt.Fprintf(out, "  %02dh  %4d departures  mean delay %.1f min\n", h.Hour, h.Count, h.MeanDelay)
	}
	return nil
}
