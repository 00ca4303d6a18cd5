// Package cli implements the command-line interface for exam-dates.
//
// The cli package provides the Cobra-based CLI: scraping schedule pages into raw
// CSV, converting raw date text into normalized records (split or merged),
// parsing single date fields, exporting iCalendar files, serving a lookup API,
// listing and filtering records, and diffing two runs. Output is available as
// text, JSON or a rendered table.
package cli
