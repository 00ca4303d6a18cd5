package cli

import (
	"fmt"

	"github.com/pfrederiksen/exam-dates/internal/exam"
	"github.com/pfrederiksen/exam-dates/internal/logger"
	"github.com/spf13/cobra"
)

var flagDiffFormat string

func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff OLD NEW",
		Short: "Report exams added, removed or rescheduled between two runs",
		Long: `Compare two normalized CSV files. Records are matched on course code,
exam type and location. Exits with status 2 when anything changed.`,
		Args: cobra.ExactArgs(2),
		RunE: runDiff,
	}

	cmd.Flags().StringVar(&flagDiffFormat, "format", "text", "Output format: text, json or table")

	return cmd
}

func runDiff(cmd *cobra.Command, args []string) error {
	format, err := ParseFormat(flagDiffFormat)
	if err != nil {
		return err
	}

	previous, err := loadRecords(cmd, args[0])
	if err != nil {
		return err
	}
	current, err := loadRecords(cmd, args[1])
	if err != nil {
		return err
	}

	diff := exam.Diff(previous, current)
	logger.Debug("Diff computed", logger.Fields{
		"added":   len(diff.Added),
		"removed": len(diff.Removed),
		"changed": len(diff.Changed),
	})

	if err := WriteDiff(cmd.OutOrStdout(), diff, format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if !diff.Empty() {
		return ErrChanges
	}
	return nil
}
