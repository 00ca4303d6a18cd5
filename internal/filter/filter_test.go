package filter

import (
	"testing"
	"time"

	"github.com/pfrederiksen/exam-dates/internal/exam"
)

func TestFilter_IsEmpty(t *testing.T) {
	tests := []struct {
		name   string
		filter *Filter
		want   bool
	}{
		{
			name:   "empty filter",
			filter: NewFilter(),
			want:   true,
		},
		{
			name:   "blank course only",
			filter: &Filter{Courses: []string{"  "}},
			want:   true,
		},
		{
			name: "filter with date from",
			filter: &Filter{
				DateFrom: timePtr(time.Now()),
			},
			want: false,
		},
		{
			name: "filter with weekends only",
			filter: &Filter{
				WeekendsOnly: true,
			},
			want: false,
		},
		{
			name: "filter with course",
			filter: &Filter{
				Courses: []string{"DAT"},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.IsEmpty(); got != tt.want {
				t.Errorf("Filter.IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_Matches(t *testing.T) {
	dec1 := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	dec31 := time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)

	// 2024-12-07 is a Saturday
	saturday := exam.Record{CourseCode: "DAT110", ExamType: "Skriftlig_eksamen", Start: "2024-12-07 09:00:00", Location: "Sal 1"}
	weekday := exam.Record{CourseCode: "MUS200", ExamType: "Hjemmeeksamen", Start: "2024-11-19 09:00:00", End: "2024-11-21 13:00:00", Location: "Ingen rom"}
	merged := exam.Record{CourseCode: "KU-101", ExamType: "Praktisk_eksamen", Dates: "2024-12-03 00:00:00 to 2024-12-05 00:00:00", Location: "Atelier B"}
	undated := exam.Record{CourseCode: "KUN300", ExamType: "Mappevurdering", Location: exam.NotAvailable}

	tests := []struct {
		name   string
		filter *Filter
		rec    exam.Record
		want   bool
	}{
		{name: "empty filter matches", filter: NewFilter(), rec: weekday, want: true},
		{name: "in date range", filter: &Filter{DateFrom: &dec1, DateTo: &dec31}, rec: saturday, want: true},
		{name: "before date range", filter: &Filter{DateFrom: &dec1, DateTo: &dec31}, rec: weekday, want: false},
		{name: "merged dates are decoded", filter: &Filter{DateFrom: &dec1}, rec: merged, want: true},
		{name: "undated passes date range", filter: &Filter{DateFrom: &dec1, DateTo: &dec31}, rec: undated, want: true},
		{name: "weekend", filter: &Filter{WeekendsOnly: true}, rec: saturday, want: true},
		{name: "not weekend", filter: &Filter{WeekendsOnly: true}, rec: weekday, want: false},
		{name: "course substring", filter: &Filter{Courses: []string{"dat1"}}, rec: saturday, want: true},
		{name: "course any of", filter: &Filter{Courses: []string{"MAT", "mus"}}, rec: weekday, want: true},
		{name: "course mismatch", filter: &Filter{Courses: []string{"MAT"}}, rec: weekday, want: false},
		{name: "exam type with spaces", filter: &Filter{ExamTypes: []string{"skriftlig eksamen"}}, rec: saturday, want: true},
		{name: "exam type with underscores", filter: &Filter{ExamTypes: []string{"Praktisk_eksamen"}}, rec: merged, want: true},
		{name: "exam type mismatch", filter: &Filter{ExamTypes: []string{"muntlig"}}, rec: saturday, want: false},
		{name: "location", filter: &Filter{Locations: []string{"atelier"}}, rec: merged, want: true},
		{
			name:   "all criteria must match",
			filter: &Filter{Courses: []string{"DAT"}, Locations: []string{"Atelier"}},
			rec:    saturday,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(tt.rec); got != tt.want {
				t.Errorf("Filter.Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_Apply(t *testing.T) {
	records := []exam.Record{
		{CourseCode: "DAT110", Start: "2024-12-03 09:00:00"},
		{CourseCode: "DAT120", Start: "2025-01-10 09:00:00"},
		{CourseCode: "MUS200", Start: "2024-12-10 09:00:00"},
	}

	dec1 := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	dec31 := time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)
	f := &Filter{DateFrom: &dec1, DateTo: &dec31, Courses: []string{"DAT"}}

	got := f.Apply(records)
	if len(got) != 1 || got[0].CourseCode != "DAT110" {
		t.Errorf("Filter.Apply() = %+v, want only DAT110", got)
	}

	all := NewFilter().Apply(records)
	if len(all) != len(records) {
		t.Errorf("empty Filter.Apply() returned %d records, want %d", len(all), len(records))
	}

	none := f.Apply(nil)
	if none == nil || len(none) != 0 {
		t.Errorf("Filter.Apply(nil) = %#v, want empty non-nil slice", none)
	}
}

func TestFilter_String(t *testing.T) {
	dec1 := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	dec31 := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter *Filter
		want   string
	}{
		{name: "empty", filter: NewFilter(), want: "No active filters"},
		{
			name:   "date range and course",
			filter: &Filter{DateFrom: &dec1, DateTo: &dec31, Courses: []string{"DAT"}},
			want:   "From: 1 Dec 2024 | To: 31 Dec 2024 | Courses: DAT",
		},
		{
			name:   "types locations weekends",
			filter: &Filter{ExamTypes: []string{"Skriftlig"}, Locations: []string{"Sal 1", "Sal 2"}, WeekendsOnly: true},
			want:   "Exam types: Skriftlig | Locations: Sal 1, Sal 2 | Weekends only",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.String(); got != tt.want {
				t.Errorf("Filter.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}
