// Package filter narrows a set of exam records by date and text criteria.
//
// Text criteria are case-insensitive substring matches; within one criterion
// any value may match, and every active criterion must match. Date criteria
// compare against a record's start time. Records without a known start are
// not excluded by date criteria.
//
// Example usage:
//
//	from, to, _ := filter.ParseDateRange("desember 2024", time.Now())
//	f := filter.NewFilter()
//	f.DateFrom, f.DateTo = from, to
//	f.Courses = []string{"DAT"}
//	matches := f.Apply(records)
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/exam-dates/internal/exam"
)

// Filter represents record filtering criteria
type Filter struct {
	DateFrom *time.Time `json:"date_from,omitempty"`
	DateTo   *time.Time `json:"date_to,omitempty"`

	// Course code filtering (case-insensitive substring match)
	Courses []string `json:"courses,omitempty"`

	ExamTypes []string `json:"exam_types,omitempty"`
	Locations []string `json:"locations,omitempty"`

	WeekendsOnly bool `json:"weekends_only,omitempty"`
}

// NewFilter creates a new empty filter with no active criteria.
func NewFilter() *Filter {
	return &Filter{
		Courses:   []string{},
		ExamTypes: []string{},
		Locations: []string{},
	}
}

// IsEmpty checks if the filter has any active criteria.
func (f *Filter) IsEmpty() bool {
	return f.DateFrom == nil &&
		f.DateTo == nil &&
		len(nonBlank(f.Courses)) == 0 &&
		len(nonBlank(f.ExamTypes)) == 0 &&
		len(nonBlank(f.Locations)) == 0 &&
		!f.WeekendsOnly
}

// Matches checks if a record matches all active filter criteria.
// An empty filter matches all records.
func (f *Filter) Matches(rec exam.Record) bool {
	if f.IsEmpty() {
		return true
	}

	if start, _, ok := rec.Span(); ok {
		if f.DateFrom != nil && start.Before(*f.DateFrom) {
			return false
		}
		if f.DateTo != nil && start.After(*f.DateTo) {
			return false
		}
		if f.WeekendsOnly {
			weekday := start.Weekday()
			if weekday != time.Saturday && weekday != time.Sunday {
				return false
			}
		}
	}

	if !containsAny(rec.CourseCode, f.Courses) {
		return false
	}
	// Exam types are stored with underscores; match either spelling.
	if !containsAny(strings.ReplaceAll(rec.ExamType, "_", " "), spaced(f.ExamTypes)) {
		return false
	}
	if !containsAny(rec.Location, f.Locations) {
		return false
	}

	return true
}

// Apply returns the records that match, preserving order. The result is never
// nil.
func (f *Filter) Apply(records []exam.Record) []exam.Record {
	filtered := make([]exam.Record, 0, len(records))
	for _, rec := range records {
		if f.Matches(rec) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

// String returns a human-readable description of the active filter criteria.
// Format: "From: 1 Dec 2024 | To: 31 Dec 2024 | Courses: DAT | Weekends only"
func (f *Filter) String() string {
	if f.IsEmpty() {
		return "No active filters"
	}

	var parts []string

	if f.DateFrom != nil {
		parts = append(parts, fmt.Sprintf("From: %s", f.DateFrom.Format("2 Jan 2006")))
	}
	if f.DateTo != nil {
		parts = append(parts, fmt.Sprintf("To: %s", f.DateTo.Format("2 Jan 2006")))
	}
	if courses := nonBlank(f.Courses); len(courses) > 0 {
		parts = append(parts, fmt.Sprintf("Courses: %s", strings.Join(courses, ", ")))
	}
	if types := nonBlank(f.ExamTypes); len(types) > 0 {
		parts = append(parts, fmt.Sprintf("Exam types: %s", strings.Join(types, ", ")))
	}
	if locations := nonBlank(f.Locations); len(locations) > 0 {
		parts = append(parts, fmt.Sprintf("Locations: %s", strings.Join(locations, ", ")))
	}
	if f.WeekendsOnly {
		parts = append(parts, "Weekends only")
	}

	return strings.Join(parts, " | ")
}

// containsAny reports whether s contains any non-blank needle. No needles
// means no constraint.
func containsAny(s string, needles []string) bool {
	needles = nonBlank(needles)
	if len(needles) == 0 {
		return true
	}
	lower := strings.ToLower(s)
	for _, n := range needles {
		if strings.Contains(lower, strings.ToLower(n)) {
			return true
		}
	}
	return false
}

func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func spaced(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ReplaceAll(v, "_", " ")
	}
	return out
}
