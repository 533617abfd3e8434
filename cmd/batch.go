package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skysift/skysift/config"
	"github.com/skysift/skysift/dataset"
	"github.com/skysift/skysift/infra/logger"
)

var (
	batchFile       string
	batchDate       string
	batchDateColumn string
	batchTimezone   string
)

func registerBatchFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&batchFile, "file", "f", "", "batch file (defaults to the configured dataset path)")
	cmd.Flags().StringVar(&batchDate, "date", "", "fixed calendar date for rows without one (2006-01-02)")
	cmd.Flags().StringVar(&batchDateColumn, "date-column", "", "per-row date column name")
	cmd.Flags().StringVar(&batchTimezone, "timezone", "", "IANA timezone for composed timestamps")
}

// loadBatch resolves dataset options from the config file and flag
// overrides, then loads the batch. A missing config file is fine as long as
// the flags supply everything.
func loadBatch() (dataset.Result, error) {
	var opts dataset.Options
	if _, err := os.Stat(cfgPath); err == nil {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return dataset.Result{}, fmt.Errorf("load config: %w", err)
		}
		opts = cfg.Dataset
	} else {
		opts.SetDefaults()
	}

	if batchFile != "" {
		opts.Path = batchFile
	}
	if batchDate != "" {
		opts.Date = batchDate
	}
	if batchDateColumn != "" {
		opts.DateColumn = batchDateColumn
	}
	if batchTimezone != "" {
		opts.Timezone = batchTimezone
	}
	if opts.Path == "" {
		return dataset.Result{}, fmt.Errorf("no batch file: set --file or dataset.path")
	}

	loader, err := dataset.NewLoader(opts, logger.New("dataset"), nil)
	if err != nil {
		return dataset.Result{}, err
	}
	return loader.Load(opts.Path)
}
