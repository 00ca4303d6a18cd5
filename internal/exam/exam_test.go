package exam

import (
	"testing"
	"time"
)

func TestNormalizeExamType(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Skriftlig eksamen", "Skriftlig_eksamen"},
		{"Muntlig  eksamen", "Muntlig__eksamen"},
		{"Hjemmeeksamen", "Hjemmeeksamen"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeExamType(tt.input); got != tt.want {
				t.Errorf("NormalizeExamType(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	raw := RawRecord{
		CourseCode: "DAT110",
		ExamType:   "Skriftlig eksamen",
		DateText:   "Utlevering: 19. november 2024 kl. 09:00\nInnlevering: 21. november 2024 kl. 13:00",
		Location:   "Sal 1",
	}

	t.Run("split mode", func(t *testing.T) {
		rec := Normalize(raw, ModeSplit)

		if rec.CourseCode != "DAT110" {
			t.Errorf("CourseCode = %q, want DAT110", rec.CourseCode)
		}
		if rec.ExamType != "Skriftlig_eksamen" {
			t.Errorf("ExamType = %q, want Skriftlig_eksamen", rec.ExamType)
		}
		if rec.Start != "2024-11-19 09:00:00" || rec.End != "2024-11-21 13:00:00" {
			t.Errorf("Start/End = (%q, %q), want (2024-11-19 09:00:00, 2024-11-21 13:00:00)", rec.Start, rec.End)
		}
		if rec.Dates != "" {
			t.Errorf("Dates = %q, want empty in split mode", rec.Dates)
		}
		if rec.Location != "Sal 1" {
			t.Errorf("Location = %q, want Sal 1", rec.Location)
		}
		if rec.Ranged {
			t.Error("Ranged = true, want false for two independent dates")
		}
	})

	t.Run("merged mode", func(t *testing.T) {
		rec := Normalize(raw, ModeMerged)

		want := "2024-11-19 09:00:00 to 2024-11-21 13:00:00"
		if rec.Dates != want {
			t.Errorf("Dates = %q, want %q", rec.Dates, want)
		}
	})

	t.Run("stable ID", func(t *testing.T) {
		a := Normalize(raw, ModeSplit)
		moved := raw
		moved.DateText = "Dato: 1. desember 2024"
		b := Normalize(moved, ModeSplit)

		if a.ID == "" {
			t.Fatal("ID is empty")
		}
		if a.ID != b.ID {
			t.Errorf("ID changed with dates: %s != %s", a.ID, b.ID)
		}
	})
}

func TestRecord_Span(t *testing.T) {
	tests := []struct {
		name      string
		rec       Record
		wantStart time.Time
		wantEnd   time.Time
		wantOK    bool
	}{
		{
			name:      "Start and end",
			rec:       Record{Start: "2024-11-19 09:00:00", End: "2024-11-21 13:00:00"},
			wantStart: time.Date(2024, time.November, 19, 9, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, time.November, 21, 13, 0, 0, 0, time.UTC),
			wantOK:    true,
		},
		{
			name:      "Start only",
			rec:       Record{Start: "2024-12-03 09:00:00"},
			wantStart: time.Date(2024, time.December, 3, 9, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, time.December, 3, 9, 0, 0, 0, time.UTC),
			wantOK:    true,
		},
		{
			name:      "Merged dates",
			rec:       Record{Dates: "2024-12-03 00:00:00 to 2024-12-05 00:00:00"},
			wantStart: time.Date(2024, time.December, 3, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, time.December, 5, 0, 0, 0, 0, time.UTC),
			wantOK:    true,
		},
		{
			name: "Merged fallback text",
			rec:  Record{Dates: "45. wrongmonth 2024"},
		},
		{
			name: "Nothing",
			rec:  Record{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, ok := tt.rec.Span()
			if ok != tt.wantOK {
				t.Fatalf("Span() ok = %v, want %v", ok, tt.wantOK)
			}
			if !start.Equal(tt.wantStart) || !end.Equal(tt.wantEnd) {
				t.Errorf("Span() = (%v, %v), want (%v, %v)", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}
