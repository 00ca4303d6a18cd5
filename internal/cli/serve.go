package cli

import (
	"github.com/pfrederiksen/exam-dates/internal/server"
	"github.com/spf13/cobra"
)

var (
	flagServeInput string
	flagServeAddr  string
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve normalized records over HTTP",
		Long: `Load a normalized CSV file once and answer lookups:

  GET /exams?course_code=DAT&exam_type=skriftlig&period=desember
  GET /exams.ics?course_code=DAT
  GET /health`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&flagServeInput, "input", "", "Normalized CSV input path (required)")
	cmd.Flags().StringVar(&flagServeAddr, "addr", "", "Listen address (default from config)")
	cmd.MarkFlagRequired("input")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := flagServeAddr
	if addr == "" {
		addr = cfg.Server.Addr
	}
	loc, err := location("")
	if err != nil {
		return err
	}

	records, err := loadRecords(cmd, flagServeInput)
	if err != nil {
		return err
	}

	srv := server.New(records, server.Options{
		CORSOrigins:  cfg.Server.CORSOrigins,
		Location:     loc,
		CalendarName: cfg.Calendar.Name,
	})
	return srv.Start(cmd.Context(), addr)
}
