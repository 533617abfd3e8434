package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/skysift/skysift/pkg/export"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export normalized departures",
	RunE:  runExport,
}

func init() {
	registerBatchFlags(exportCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "output format: csv or json")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (defaults to stdout)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	res, err := loadBatch()
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	switch exportFormat {
	case "csv":
		return export.WriteCSV(w, res.Departures)
	case "json":
		return export.WriteJSON(w, res.Departures)
	default:
		return fmt.Errorf("unknown format %q", exportFormat)
	}
}
