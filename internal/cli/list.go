package cli

import (
	"fmt"
	"time"

	"github.com/pfrederiksen/exam-dates/internal/filter"
	"github.com/pfrederiksen/exam-dates/internal/logger"
	"github.com/spf13/cobra"
)

var (
	flagListInput    string
	flagListFormat   string
	flagListSort     string
	flagListCourses  []string
	flagListTypes    []string
	flagListRooms    []string
	flagListPeriod   string
	flagListWeekends bool
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List normalized records, optionally filtered and sorted",
		Example: `  exam-dates list --input out.csv --course DAT --period "desember 2024"
  exam-dates list --input out.csv --type hjemmeeksamen --sort course --format table`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	cmd.Flags().StringVar(&flagListInput, "input", "", "Normalized CSV input path (default stdin)")
	cmd.Flags().StringVar(&flagListFormat, "format", "text", "Output format: text, json or table")
	cmd.Flags().StringVar(&flagListSort, "sort", "", "Sort order: date or course (default file order)")
	cmd.Flags().StringSliceVar(&flagListCourses, "course", nil, "Course code substring (repeatable)")
	cmd.Flags().StringSliceVar(&flagListTypes, "type", nil, "Exam type substring (repeatable)")
	cmd.Flags().StringSliceVar(&flagListRooms, "room", nil, "Location substring (repeatable)")
	cmd.Flags().StringVar(&flagListPeriod, "period", "", `Date range, e.g. "1.-15. desember" or "desember 2024"`)
	cmd.Flags().BoolVar(&flagListWeekends, "weekends", false, "Only exams starting on a Saturday or Sunday")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	format, err := ParseFormat(flagListFormat)
	if err != nil {
		return err
	}

	var order SortOrder
	if flagListSort != "" {
		if order, err = ParseSortOrder(flagListSort); err != nil {
			return err
		}
	}

	f := filter.NewFilter()
	f.Courses = flagListCourses
	f.ExamTypes = flagListTypes
	f.Locations = flagListRooms
	f.WeekendsOnly = flagListWeekends
	if flagListPeriod != "" {
		from, to, err := filter.ParseDateRange(flagListPeriod, time.Now())
		if err != nil {
			return fmt.Errorf("parsing --period: %w", err)
		}
		f.DateFrom, f.DateTo = from, to
	}

	records, err := loadRecords(cmd, flagListInput)
	if err != nil {
		return err
	}

	matches := f.Apply(records)
	if order != "" {
		sortRecords(matches, order)
	}

	logger.Debug("Records filtered", logger.Fields{
		"filter":  f.String(),
		"matches": len(matches),
		"total":   len(records),
	})

	if err := WriteRecords(cmd.OutOrStdout(), matches, format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
