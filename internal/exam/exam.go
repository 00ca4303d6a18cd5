package exam

import (
	"crypto/sha1"
	"fmt"
	"strings"
	"time"
)

// NotAvailable is the placeholder the extractor writes for missing card fields.
const NotAvailable = "N/A"

// RawRecord is one exam card as extracted from a schedule page
type RawRecord struct {
	CourseCode string `json:"course_code"`
	ExamType   string `json:"exam_type"`
	DateText   string `json:"date_text"`
	Location   string `json:"location"`
}

// Record is a normalized exam record
type Record struct {
	ID         string `json:"id"`
	CourseCode string `json:"course_code"`
	ExamType   string `json:"exam_type"` // spaces replaced with underscores
	Start      string `json:"start_time"`
	End        string `json:"end_time"`
	Dates      string `json:"dates,omitempty"` // merged mode only
	Location   string `json:"location"`
	Ranged     bool   `json:"ranged,omitempty"`
}

// GenerateID creates a deterministic ID for a record based on stable fields.
// Dates are excluded so a rescheduled exam keeps its ID.
func GenerateID(courseCode, examType, location string) string {
	h := sha1.New()
	h.Write([]byte(courseCode + "|" + examType + "|" + location))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// NormalizeExamType replaces every space with an underscore
func NormalizeExamType(examType string) string {
	return strings.ReplaceAll(examType, " ", "_")
}

// Normalize parses the record's date field and renders it for mode.
func Normalize(raw RawRecord, mode Mode) Record {
	return NormalizeSequence(raw, ParseField(raw.DateText), mode)
}

// NormalizeSequence renders an already parsed date field for mode.
func NormalizeSequence(raw RawRecord, seq Sequence, mode Mode) Record {
	examType := NormalizeExamType(raw.ExamType)
	rec := Record{
		ID:         GenerateID(raw.CourseCode, examType, raw.Location),
		CourseCode: raw.CourseCode,
		ExamType:   examType,
		Location:   raw.Location,
		Ranged:     seq.Ranged(),
	}

	rec.Start, rec.End = DeriveStartEnd(seq)
	if mode == ModeMerged {
		rec.Dates = RenderMerged(seq)
	}
	return rec
}

// Span returns the record's start and end times. Records read back from a merged
// file carry only Dates, which is decoded when Start is empty. A missing end
// equals the start. ok is false when no start is known.
func (r Record) Span() (start, end time.Time, ok bool) {
	s, e := r.Start, r.End
	if s == "" && r.Dates != "" {
		s, e = SplitMerged(r.Dates)
	}

	sm, ok := ParseMoment(s)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	em, ok := ParseMoment(e)
	if !ok {
		em = sm
	}
	return sm.Time(), em.Time(), true
}
