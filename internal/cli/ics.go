package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/pfrederiksen/exam-dates/internal/calendar"
	"github.com/pfrederiksen/exam-dates/internal/logger"
	"github.com/spf13/cobra"
)

var (
	flagICSInput    string
	flagICSOutput   string
	flagICSTimezone string
	flagICSName     string
)

func newICSCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ics",
		Short: "Export normalized records as an iCalendar file",
		Args:  cobra.NoArgs,
		RunE:  runICS,
	}

	cmd.Flags().StringVar(&flagICSInput, "input", "", "Normalized CSV input path (default stdin)")
	cmd.Flags().StringVar(&flagICSOutput, "output", "", "ICS output path (default stdout)")
	cmd.Flags().StringVar(&flagICSTimezone, "timezone", "", "Timezone of the timestamps (default from config)")
	cmd.Flags().StringVar(&flagICSName, "name", "", "Calendar name (default from config)")

	return cmd
}

func runICS(cmd *cobra.Command, args []string) error {
	loc, err := location(flagICSTimezone)
	if err != nil {
		return err
	}
	name := flagICSName
	if name == "" {
		name = cfg.Calendar.Name
	}

	records, err := loadRecords(cmd, flagICSInput)
	if err != nil {
		return err
	}

	var written int
	err = writeTo(cmd, flagICSOutput, func(w io.Writer) error {
		var err error
		written, err = calendar.WriteICS(w, records, calendar.Options{Location: loc, Name: name})
		return err
	})
	if err != nil {
		return err
	}

	logger.Info("Calendar written", logger.Fields{
		"events":  written,
		"skipped": len(records) - written,
		"tz":      loc.String(),
	})
	return nil
}

// location resolves a timezone flag, falling back to the configured zone.
func location(name string) (*time.Location, error) {
	if name == "" {
		name = cfg.Calendar.Timezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("loading timezone: %w", err)
	}
	return loc, nil
}
