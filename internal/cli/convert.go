package cli

import (
	"fmt"
	"io"

	"github.com/pfrederiksen/exam-dates/internal/csvio"
	"github.com/pfrederiksen/exam-dates/internal/exam"
	"github.com/pfrederiksen/exam-dates/internal/logger"
	"github.com/pfrederiksen/exam-dates/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	flagConvertInput   string
	flagConvertOutput  string
	flagConvertMode    string
	flagConvertWorkers int
)

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Normalize the date column of a raw CSV file",
		Long: `Parse every record's date text into canonical timestamps.

Modes:
  split   start_time and end_time columns (first and last moment)
  merged  one dates column: "a", "a to b" or "a; b; c"`,
		Args: cobra.NoArgs,
		RunE: runConvert,
	}

	cmd.Flags().StringVar(&flagConvertInput, "input", "", "Raw CSV input path (default stdin)")
	cmd.Flags().StringVar(&flagConvertOutput, "output", "", "Normalized CSV output path (default stdout)")
	cmd.Flags().StringVar(&flagConvertMode, "mode", "", "Output mode: split or merged (default from config)")
	cmd.Flags().IntVar(&flagConvertWorkers, "workers", -1, "Parallel workers, 0 for one per CPU (default from config)")

	return cmd
}

func runConvert(cmd *cobra.Command, args []string) error {
	modeName := flagConvertMode
	if modeName == "" {
		modeName = cfg.Convert.Mode
	}
	mode, err := exam.ParseMode(modeName)
	if err != nil {
		return err
	}

	workers := flagConvertWorkers
	if workers < 0 {
		workers = cfg.Convert.Workers
	}

	in, err := openInput(cmd, flagConvertInput)
	if err != nil {
		return err
	}
	defer in.Close()

	raws, skipped, err := csvio.ReadRaw(in, cfg.CSV.Comma())
	if err != nil {
		return fmt.Errorf("loading raw records: %w", err)
	}
	if skipped > 0 {
		logger.AddCounter("rows_skipped", int64(skipped))
		logger.Warn("Skipped short rows", logger.Fields{"count": skipped})
	}

	records, stats, err := pipeline.Convert(cmd.Context(), raws, mode, workers)
	if err != nil {
		return fmt.Errorf("converting records: %w", err)
	}

	logger.Info("Converted records", logger.Fields{
		"mode":     string(mode),
		"records":  stats.Records,
		"moments":  stats.Moments,
		"unparsed": stats.Unparsed,
		"skipped":  skipped,
		"duration": stats.Duration.String(),
	})

	return writeTo(cmd, flagConvertOutput, func(w io.Writer) error {
		return csvio.WriteRecords(w, cfg.CSV.Comma(), mode, records)
	})
}
