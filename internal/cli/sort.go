package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pfrederiksen/exam-dates/internal/exam"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByDate   SortOrder = "date"
	SortByCourse SortOrder = "course"
)

// ParseSortOrder validates a sort order name.
func ParseSortOrder(s string) (SortOrder, error) {
	switch order := SortOrder(strings.ToLower(strings.TrimSpace(s))); order {
	case SortByDate, SortByCourse:
		return order, nil
	default:
		return "", fmt.Errorf("invalid sort order: %s (must be 'date' or 'course')", s)
	}
}

// sortRecords sorts records in place. The sort is stable so records that
// compare equal keep their file order.
func sortRecords(records []exam.Record, order SortOrder) {
	switch order {
	case SortByDate:
		sort.SliceStable(records, func(i, j int) bool {
			return compareByDate(records[i], records[j])
		})
	case SortByCourse:
		sort.SliceStable(records, func(i, j int) bool {
			if !strings.EqualFold(records[i].CourseCode, records[j].CourseCode) {
				return strings.ToLower(records[i].CourseCode) < strings.ToLower(records[j].CourseCode)
			}
			// If course codes are equal, sort by date
			return compareByDate(records[i], records[j])
		})
	}
}

// compareByDate compares two records by their start time
// Returns true if record i should come before record j
func compareByDate(i, j exam.Record) bool {
	startI, _, okI := i.Span()
	startJ, _, okJ := j.Span()

	// If both dates are valid, compare them
	if okI && okJ {
		return startI.Before(startJ)
	}

	// If only one date is valid, put the valid one first
	if okI {
		return true
	}
	if okJ {
		return false
	}

	// If neither has a valid date, sort by course code
	return strings.ToLower(i.CourseCode) < strings.ToLower(j.CourseCode)
}
