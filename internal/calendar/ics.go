package calendar

import (
	"fmt"
	"io"
	"strings"
	"time"
	_ "time/tzdata"

	ics "github.com/arran4/golang-ical"
	"github.com/pfrederiksen/exam-dates/internal/exam"
)

const (
	productID  = "-//exam-dates//exam-dates//NO"
	uidDomain  = "exam-dates"
	defaultTZ  = "Europe/Oslo"
	summarySep = " "
)

// Options controls how records become calendar events.
type Options struct {
	// Location is the zone the wall-clock timestamps are read in. Nil means
	// Europe/Oslo.
	Location *time.Location
	// Name is written as the calendar's display name when set.
	Name string
}

// WriteICS writes one VEVENT per record with a known start and returns how
// many events were written. A record without an end gets a zero-length event.
func WriteICS(w io.Writer, records []exam.Record, opts Options) (int, error) {
	loc := opts.Location
	if loc == nil {
		var err error
		loc, err = time.LoadLocation(defaultTZ)
		if err != nil {
			return 0, fmt.Errorf("could not load timezone: %w", err)
		}
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	if opts.Name != "" {
		cal.SetXWRCalName(opts.Name)
	}

	now := time.Now()
	written := 0
	for _, rec := range records {
		start, end, ok := rec.Span()
		if !ok {
			continue
		}

		event := cal.AddEvent(fmt.Sprintf("%s@%s", recordID(rec), uidDomain))
		event.SetDtStampTime(now)
		event.SetStartAt(inLocation(start, loc))
		event.SetEndAt(inLocation(end, loc))
		event.SetSummary(Summary(rec))
		if rec.Location != "" && rec.Location != exam.NotAvailable {
			event.SetLocation(rec.Location)
		}
		event.SetDescription(description(rec))
		written++
	}

	if err := cal.SerializeTo(w); err != nil {
		return written, fmt.Errorf("writing calendar: %w", err)
	}
	return written, nil
}

// Summary is the event title: course code followed by the exam type with
// underscores shown as spaces.
func Summary(rec exam.Record) string {
	return rec.CourseCode + summarySep + strings.ReplaceAll(rec.ExamType, "_", " ")
}

func recordID(rec exam.Record) string {
	if rec.ID != "" {
		return rec.ID
	}
	return exam.GenerateID(rec.CourseCode, rec.ExamType, rec.Location)
}

// inLocation reads the wall clock of t in loc.
func inLocation(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc)
}

func description(rec exam.Record) string {
	if rec.Dates != "" {
		return "Dates: " + rec.Dates
	}
	if rec.End != "" {
		return "Dates: " + rec.Start + exam.RangeSeparator + rec.End
	}
	return "Date: " + rec.Start
}
