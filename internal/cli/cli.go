package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pfrederiksen/exam-dates/internal/config"
	"github.com/pfrederiksen/exam-dates/internal/csvio"
	"github.com/pfrederiksen/exam-dates/internal/exam"
	"github.com/pfrederiksen/exam-dates/internal/logger"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
	ExitChanges = 2
)

// ErrChanges is returned by the diff command when the two files differ. It
// maps to ExitChanges instead of an error message.
var ErrChanges = errors.New("changes found")

var (
	flagConfig    string
	flagVerbose   bool
	flagDelimiter string
)

// cfg is loaded once per invocation before any subcommand runs.
var cfg *config.Config

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exam-dates",
		Short: "Extract and normalize Norwegian exam dates",
		Long: `A CLI tool to turn exam schedule pages into normalized exam records.
Scrapes exam cards, parses Norwegian date descriptions into timestamps,
and exports the result as CSV, iCalendar or a small lookup API.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		PersistentPostRun: logMetrics,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a YAML config file")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVar(&flagDelimiter, "delimiter", "", "CSV field delimiter (overrides config)")

	cmd.AddCommand(
		newScrapeCmd(),
		newConvertCmd(),
		newParseCmd(),
		newICSCmd(),
		newServeCmd(),
		newDiffCmd(),
		newListCmd(),
	)

	return cmd
}

// setup loads configuration and installs the default logger.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagDelimiter != "" {
		loaded.CSV.Delimiter = flagDelimiter
		if err := loaded.Validate(); err != nil {
			return err
		}
	}
	cfg = loaded

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	if flagVerbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))

	logger.Debug("Configuration loaded", logger.Fields{
		"config":    flagConfig,
		"delimiter": cfg.CSV.Delimiter,
		"mode":      cfg.Convert.Mode,
	})
	return nil
}

// logMetrics writes the run's counters and timings at debug level.
func logMetrics(cmd *cobra.Command, args []string) {
	logger.Debug("Run metrics", logger.Fields(logger.GetMetricsSnapshot()))
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()

	switch {
	case err == nil:
		os.Exit(ExitSuccess)
	case errors.Is(err, ErrChanges):
		os.Exit(ExitChanges)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}

// openInput opens path for reading. An empty path or "-" reads from the
// command's standard input.
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	return f, nil
}

// createOutput opens path for writing. An empty path or "-" writes to the
// command's standard output.
func createOutput(cmd *cobra.Command, path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopWriteCloser{cmd.OutOrStdout()}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}
	return f, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// writeTo creates path, runs write against it and closes it, keeping the
// first error.
func writeTo(cmd *cobra.Command, path string, write func(io.Writer) error) (err error) {
	out, err := createOutput(cmd, path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing output: %w", cerr)
		}
	}()
	return write(out)
}

// loadRecords reads a normalized CSV file.
func loadRecords(cmd *cobra.Command, path string) ([]exam.Record, error) {
	in, err := openInput(cmd, path)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	started := time.Now()
	records, mode, err := csvio.ReadRecords(in, cfg.CSV.Comma())
	if err != nil {
		return nil, fmt.Errorf("loading records from %s: %w", displayPath(path), err)
	}
	logger.RecordTiming("load_records", time.Since(started))
	logger.Debug("Records loaded", logger.Fields{
		"path":    displayPath(path),
		"mode":    string(mode),
		"records": len(records),
	})
	return records, nil
}

func displayPath(path string) string {
	if path == "" || path == "-" {
		return "stdin"
	}
	return path
}
