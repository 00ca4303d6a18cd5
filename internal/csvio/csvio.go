// Package csvio reads and writes exam records as delimited text.
//
// Raw files hold one extracted card per row with a human-readable header.
// Normalized files come in two layouts, one per exam.Mode.
package csvio

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/gocarina/gocsv"
	"github.com/pfrederiksen/exam-dates/internal/exam"
)

// rawFields is the number of columns a raw row needs to be usable.
const rawFields = 4

// RawRow is one row of a raw extract file.
type RawRow struct {
	CourseCode string `csv:"Course Code"`
	ExamType   string `csv:"Exam Type"`
	DateText   string `csv:"Date & Time"`
	RoomInfo   string `csv:"Room Info"`
}

// SplitRow is one row of a normalized file in split mode.
type SplitRow struct {
	CourseCode string `csv:"course_code"`
	ExamType   string `csv:"exam_type"`
	StartTime  string `csv:"start_time"`
	EndTime    string `csv:"end_time"`
	Location   string `csv:"location"`
}

// MergedRow is one row of a normalized file in merged mode.
type MergedRow struct {
	CourseCode string `csv:"course_code"`
	ExamType   string `csv:"exam_type"`
	Dates      string `csv:"dates"`
	RoomInfo   string `csv:"room_info"`
}

// ReadRaw reads a raw extract file. The first row is a header and is skipped.
// Rows with fewer than four fields are dropped and counted in skipped; extra
// fields are ignored.
func ReadRaw(r io.Reader, delim rune) (records []exam.RawRecord, skipped int, err error) {
	reader := csv.NewReader(r)
	reader.Comma = delim
	reader.FieldsPerRecord = -1

	header := true
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, skipped, fmt.Errorf("reading raw csv: %w", err)
		}
		if header {
			header = false
			continue
		}
		if len(row) < rawFields {
			skipped++
			continue
		}
		records = append(records, exam.RawRecord{
			CourseCode: row[0],
			ExamType:   row[1],
			DateText:   row[2],
			Location:   row[3],
		})
	}

	return records, skipped, nil
}

// WriteRaw writes records as a raw extract file.
func WriteRaw(w io.Writer, delim rune, records []exam.RawRecord) error {
	rows := make([]*RawRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, &RawRow{
			CourseCode: rec.CourseCode,
			ExamType:   rec.ExamType,
			DateText:   rec.DateText,
			RoomInfo:   rec.Location,
		})
	}
	return marshal(w, delim, &rows)
}

// WriteRecords writes normalized records in the layout for mode.
func WriteRecords(w io.Writer, delim rune, mode exam.Mode, records []exam.Record) error {
	switch mode {
	case exam.ModeMerged:
		rows := make([]*MergedRow, 0, len(records))
		for _, rec := range records {
			rows = append(rows, &MergedRow{
				CourseCode: rec.CourseCode,
				ExamType:   rec.ExamType,
				Dates:      rec.Dates,
				RoomInfo:   rec.Location,
			})
		}
		return marshal(w, delim, &rows)
	case exam.ModeSplit:
		rows := make([]*SplitRow, 0, len(records))
		for _, rec := range records {
			rows = append(rows, &SplitRow{
				CourseCode: rec.CourseCode,
				ExamType:   rec.ExamType,
				StartTime:  rec.Start,
				EndTime:    rec.End,
				Location:   rec.Location,
			})
		}
		return marshal(w, delim, &rows)
	default:
		return fmt.Errorf("invalid mode: %s", mode)
	}
}

func marshal(w io.Writer, delim rune, rows interface{}) error {
	writer := csv.NewWriter(w)
	writer.Comma = delim
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(writer)); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	writer.Flush()
	return writer.Error()
}

// ReadRecords reads a normalized file in either layout and reports which one
// it found. Empty input yields no records.
func ReadRecords(r io.Reader, delim rune) ([]exam.Record, exam.Mode, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("reading csv: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, exam.ModeSplit, nil
	}

	mode, err := detectMode(data, delim)
	if err != nil {
		return nil, "", err
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delim

	var records []exam.Record
	switch mode {
	case exam.ModeMerged:
		var rows []*MergedRow
		if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
			return nil, "", fmt.Errorf("parsing merged csv: %w", err)
		}
		for _, row := range rows {
			start, end := exam.SplitMerged(row.Dates)
			records = append(records, exam.Record{
				ID:         exam.GenerateID(row.CourseCode, row.ExamType, row.RoomInfo),
				CourseCode: row.CourseCode,
				ExamType:   row.ExamType,
				Start:      start,
				End:        end,
				Dates:      row.Dates,
				Location:   row.RoomInfo,
			})
		}
	default:
		var rows []*SplitRow
		if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
			return nil, "", fmt.Errorf("parsing split csv: %w", err)
		}
		for _, row := range rows {
			records = append(records, exam.Record{
				ID:         exam.GenerateID(row.CourseCode, row.ExamType, row.Location),
				CourseCode: row.CourseCode,
				ExamType:   row.ExamType,
				Start:      row.StartTime,
				End:        row.EndTime,
				Location:   row.Location,
			})
		}
	}

	return records, mode, nil
}

func detectMode(data []byte, delim rune) (exam.Mode, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delim
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return "", fmt.Errorf("reading csv header: %w", err)
	}

	switch {
	case slices.Contains(header, "dates"):
		return exam.ModeMerged, nil
	case slices.Contains(header, "start_time"):
		return exam.ModeSplit, nil
	default:
		return "", fmt.Errorf("unrecognized header: %v", header)
	}
}
