package cli

import (
	"fmt"
	"io"

	"github.com/pfrederiksen/exam-dates/internal/csvio"
	"github.com/pfrederiksen/exam-dates/internal/exam"
	"github.com/pfrederiksen/exam-dates/internal/logger"
	"github.com/pfrederiksen/exam-dates/internal/scraper"
	"github.com/spf13/cobra"
)

var (
	flagScrapeInput  string
	flagScrapeURL    string
	flagScrapeOutput string
)

func newScrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Extract raw exam records from a schedule page",
		Long: `Extract one raw record per exam card from a saved HTML page or a live URL.
The date text is written unparsed; run "convert" to normalize it.`,
		Args: cobra.NoArgs,
		RunE: runScrape,
	}

	cmd.Flags().StringVar(&flagScrapeInput, "input", "", "Saved HTML page to read")
	cmd.Flags().StringVar(&flagScrapeURL, "url", "", "Schedule page URL to fetch (default from config)")
	cmd.Flags().StringVar(&flagScrapeOutput, "output", "", "Raw CSV output path (default stdout)")
	cmd.MarkFlagsMutuallyExclusive("input", "url")

	return cmd
}

func runScrape(cmd *cobra.Command, args []string) error {
	url := flagScrapeURL
	if url == "" && flagScrapeInput == "" {
		url = cfg.Scraper.URL
	}
	if url == "" && flagScrapeInput == "" {
		return fmt.Errorf("one of --input or --url is required")
	}

	var (
		records []exam.RawRecord
		err     error
	)
	if flagScrapeInput != "" {
		records, err = scraper.ParseFile(flagScrapeInput)
	} else {
		sc := scraper.New(
			scraper.WithTimeout(cfg.Scraper.Timeout()),
			scraper.WithUserAgent(cfg.Scraper.UserAgent),
		)
		logger.Debug("Fetching schedule page", logger.Fields{"url": url})
		records, err = sc.FetchRecords(cmd.Context(), url)
	}
	if err != nil {
		return fmt.Errorf("scraping records: %w", err)
	}

	logger.AddCounter("records_scraped", int64(len(records)))
	logger.Info("Scraped records", logger.Fields{"records": len(records)})

	return writeTo(cmd, flagScrapeOutput, func(w io.Writer) error {
		return csvio.WriteRaw(w, cfg.CSV.Comma(), records)
	})
}
