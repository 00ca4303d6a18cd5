package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pfrederiksen/exam-dates/internal/exam"
)

var (
	// "1.-15. desember" or "1-15. desember 2024"
	sameMonthRange = regexp.MustCompile(`^(\d{1,2})\.?\s*-\s*(\d{1,2})\.\s*(\p{L}+)(?:\s+(\d{4}))?$`)
	// "1. desember - 15. januar" or "1. desember - 15. januar 2025"
	crossMonthRange = regexp.MustCompile(`^(\d{1,2})\.\s*(\p{L}+)\s*-\s*(\d{1,2})\.\s*(\p{L}+)(?:\s+(\d{4}))?$`)
	// "desember" or "desember 2024"
	wholeMonth = regexp.MustCompile(`^(\p{L}+)(?:\s+(\d{4}))?$`)
)

// ParseDateRange parses a Norwegian date range into start and end times.
//
// Supported formats:
//   - "1.-15. desember" - Same month, different days
//   - "1. desember - 15. januar" - Different months
//   - "desember" - Entire month
//
// Each format accepts a trailing four-digit year. Without one the year is
// inferred from now: a month already past is taken to be next year's, and a
// cross-month range whose end month precedes its start ends in the following
// year. With an explicit year the year applies to the end date.
//
// Times are in UTC. Start time is at 00:00:00, end time is at 23:59:59.
func ParseDateRange(input string, now time.Time) (*time.Time, *time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil, fmt.Errorf("date range cannot be empty")
	}

	if matches := sameMonthRange.FindStringSubmatch(input); matches != nil {
		month, err := parseMonth(matches[3])
		if err != nil {
			return nil, nil, err
		}
		year := yearFor(matches[4], month, now)
		from, err := dayStart(year, month, matches[1])
		if err != nil {
			return nil, nil, err
		}
		to, err := dayEnd(year, month, matches[2])
		if err != nil {
			return nil, nil, err
		}
		if from.After(to) {
			return nil, nil, fmt.Errorf("start date must be before end date")
		}
		return &from, &to, nil
	}

	if matches := crossMonthRange.FindStringSubmatch(input); matches != nil {
		month1, err := parseMonth(matches[2])
		if err != nil {
			return nil, nil, err
		}
		month2, err := parseMonth(matches[4])
		if err != nil {
			return nil, nil, err
		}

		var year1, year2 int
		if matches[5] != "" {
			year2, _ = strconv.Atoi(matches[5])
			year1 = year2
			if month2 < month1 {
				year1--
			}
		} else {
			year1 = yearFor("", month1, now)
			year2 = year1
			if month2 < month1 {
				year2++
			}
		}

		from, err := dayStart(year1, month1, matches[1])
		if err != nil {
			return nil, nil, err
		}
		to, err := dayEnd(year2, month2, matches[3])
		if err != nil {
			return nil, nil, err
		}
		if from.After(to) {
			return nil, nil, fmt.Errorf("start date must be before end date")
		}
		return &from, &to, nil
	}

	if matches := wholeMonth.FindStringSubmatch(input); matches != nil {
		month, err := parseMonth(matches[1])
		if err != nil {
			return nil, nil, err
		}

		year := yearFor(matches[2], month, now)
		from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		// Last day of month
		to := time.Date(year, month+1, 0, 23, 59, 59, 0, time.UTC)
		return &from, &to, nil
	}

	return nil, nil, fmt.Errorf("invalid date range format. Use '1.-15. desember', '1. desember - 15. januar', or 'desember'")
}

func parseMonth(name string) (time.Month, error) {
	month, ok := exam.MonthNumber(name)
	if !ok {
		return 0, fmt.Errorf("invalid month: %s", name)
	}
	return month, nil
}

// dayStart returns midnight of the given day. Days the month does not have
// (31. februar) are rejected rather than rolled into the next month.
func dayStart(year int, month time.Month, day string) (time.Time, error) {
	d, err := strconv.Atoi(day)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day: %s", day)
	}
	m, ok := exam.NewMoment(year, month, d, 0, 0)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid day: %s. %s %d", day, strings.ToLower(month.String()), year)
	}
	return m.Time(), nil
}

// dayEnd returns the last second of the given day.
func dayEnd(year int, month time.Month, day string) (time.Time, error) {
	start, err := dayStart(year, month, day)
	if err != nil {
		return time.Time{}, err
	}
	return start.Add(24*time.Hour - time.Second), nil
}

// yearFor returns the explicit year when given. Otherwise a month that has
// already passed this year is taken to be next year's.
func yearFor(explicit string, month time.Month, now time.Time) int {
	if explicit != "" {
		year, _ := strconv.Atoi(explicit)
		return year
	}
	year := now.Year()
	if month < now.Month() {
		year++
	}
	return year
}
