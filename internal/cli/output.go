package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pfrederiksen/exam-dates/internal/exam"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatJSON  OutputFormat = "json"
	FormatTable OutputFormat = "table"
)

// ParseFormat validates an output format name.
func ParseFormat(s string) (OutputFormat, error) {
	switch format := OutputFormat(strings.ToLower(strings.TrimSpace(s))); format {
	case FormatText, FormatJSON, FormatTable:
		return format, nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be 'text', 'json' or 'table')", s)
	}
}

// ParseResult is what the parse command reports for one date field.
type ParseResult struct {
	Input   string      `json:"input"`
	Moments []string    `json:"moments"`
	Lines   []exam.Line `json:"lines"`
	Start   string      `json:"start_time"`
	End     string      `json:"end_time"`
	Dates   string      `json:"dates"`
	Ranged  bool        `json:"ranged"`
}

// NewParseResult collects the split and merged renderings of seq.
func NewParseResult(input string, seq exam.Sequence) *ParseResult {
	start, end := exam.DeriveStartEnd(seq)
	return &ParseResult{
		Input:   input,
		Moments: seq.Strings(),
		Lines:   seq.Lines,
		Start:   start,
		End:     end,
		Dates:   exam.RenderMerged(seq),
		Ranged:  seq.Ranged(),
	}
}

// WriteParse writes a parse result in the specified format
func WriteParse(w io.Writer, result *ParseResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatTable:
		t := newTable(w)
		t.AppendHeader(table.Row{"Line", "Rule", "Moments"})
		for _, line := range result.Lines {
			t.AppendRow(table.Row{line.Text, ruleName(line.Rule), line.Moments})
		}
		t.AppendFooter(table.Row{"", "Total", len(result.Moments)})
		t.Render()
		return nil
	case FormatText:
		return writeParseText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeParseText(w io.Writer, result *ParseResult, verbose bool) error {
	if len(result.Moments) == 0 {
		fmt.Fprintln(w, "No dates recognized.")
	} else {
		fmt.Fprintf(w, "Start: %s\n", result.Start)
		if result.End != "" {
			fmt.Fprintf(w, "End:   %s\n", result.End)
		}
		fmt.Fprintf(w, "Dates: %s\n", result.Dates)
		if result.Ranged {
			fmt.Fprintln(w, "Range: yes")
		}
	}

	if verbose {
		fmt.Fprintln(w)
		for _, line := range result.Lines {
			fmt.Fprintf(w, "  [%s] %s (%d)\n", ruleName(line.Rule), line.Text, line.Moments)
		}
	}
	return nil
}

// WriteDiff writes the result of comparing two runs
func WriteDiff(w io.Writer, diff *exam.DiffResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, diff)
	case FormatTable:
		if diff.Empty() {
			fmt.Fprintln(w, "No changes found.")
			return nil
		}
		t := newTable(w)
		t.AppendHeader(table.Row{"Change", "Course", "Exam Type", "Field", "Old", "New"})
		for _, rec := range diff.Added {
			t.AppendRow(table.Row{"added", rec.CourseCode, rec.ExamType, "", "", span(rec)})
		}
		for _, rec := range diff.Removed {
			t.AppendRow(table.Row{"removed", rec.CourseCode, rec.ExamType, "", span(rec), ""})
		}
		for _, c := range diff.Changed {
			t.AppendRow(table.Row{"changed", c.CourseCode, c.ExamType, c.Field, c.OldValue, c.NewValue})
		}
		t.Render()
		return nil
	case FormatText:
		return writeDiffText(w, diff)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeDiffText(w io.Writer, diff *exam.DiffResult) error {
	if diff.Empty() {
		fmt.Fprintln(w, "No changes found.")
		return nil
	}

	if len(diff.Added) > 0 {
		fmt.Fprintf(w, "Added (%d):\n", len(diff.Added))
		for _, rec := range diff.Added {
			fmt.Fprintf(w, "  + %s %s: %s\n", rec.CourseCode, rec.ExamType, span(rec))
		}
	}
	if len(diff.Removed) > 0 {
		fmt.Fprintf(w, "Removed (%d):\n", len(diff.Removed))
		for _, rec := range diff.Removed {
			fmt.Fprintf(w, "  - %s %s: %s\n", rec.CourseCode, rec.ExamType, span(rec))
		}
	}
	if len(diff.Changed) > 0 {
		fmt.Fprintf(w, "Changed (%d):\n", len(diff.Changed))
		for _, c := range diff.Changed {
			fmt.Fprintf(w, "  ~ %s %s %s: %s -> %s\n", c.CourseCode, c.ExamType, c.Field, orNone(c.OldValue), orNone(c.NewValue))
		}
	}

	fmt.Fprintf(w, "\nTotal: %d added, %d removed, %d changed\n", len(diff.Added), len(diff.Removed), len(diff.Changed))
	return nil
}

// WriteRecords writes a list of normalized records
func WriteRecords(w io.Writer, records []exam.Record, format OutputFormat) error {
	switch format {
	case FormatJSON:
		if records == nil {
			records = []exam.Record{}
		}
		return writeJSON(w, records)
	case FormatTable:
		t := newTable(w)
		t.AppendHeader(table.Row{"Course", "Exam Type", "Start", "End", "Location"})
		for _, rec := range records {
			t.AppendRow(table.Row{rec.CourseCode, rec.ExamType, rec.Start, rec.End, rec.Location})
		}
		t.AppendFooter(table.Row{"", "", "", "Total", len(records)})
		t.Render()
		return nil
	case FormatText:
		if len(records) == 0 {
			fmt.Fprintln(w, "No exams found.")
			return nil
		}
		for _, rec := range records {
			fmt.Fprintf(w, "%s %s: %s (%s)\n", rec.CourseCode, rec.ExamType, span(rec), rec.Location)
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

// span renders a record's dates for display.
func span(rec exam.Record) string {
	switch {
	case rec.Dates != "":
		return rec.Dates
	case rec.Start == "":
		return "no date"
	case rec.End == "":
		return rec.Start
	default:
		return rec.Start + exam.RangeSeparator + rec.End
	}
}

func ruleName(kind exam.RuleKind) string {
	if kind == exam.RuleNone {
		return "none"
	}
	return string(kind)
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
