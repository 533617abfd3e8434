package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/skysift/skysift/core/timeofday"
	"github.com/skysift/skysift/core/timestamp"
)

var normalizeDate string

var normalizeCmd = &cobra.Command{
	Use:   "normalize <token>...",
	Short: "Normalize compact clock tokens",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runNormalize,
}

func init() {
	normalizeCmd.Flags().StringVar(&normalizeDate, "date", "", "compose with this calendar date (2006-01-02)")
	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	var date timestamp.Date
	if normalizeDate != "" {
		var err error
		if date, err = timestamp.ParseDate(normalizeDate); err != nil {
			return err
		}
	}
	for _, token := range args {
		tod, err := timeofday.Normalize(token)
		if err != nil {
			return err
		}
		if date.IsZero() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", token, tod)
			continue
		}
		ts, err := timestamp.Compose(date, tod, time.UTC)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", token, ts.Format(time.RFC3339))
	}
	return nil
}
