package csvio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pfrederiksen/exam-dates/internal/exam"
)

func TestReadRaw(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		delim       rune
		wantCount   int
		wantSkipped int
		wantErr     bool
	}{
		{
			name:      "header only",
			input:     "Course Code,Exam Type,Date & Time,Room Info\n",
			delim:     ',',
			wantCount: 0,
		},
		{
			name:      "empty input",
			input:     "",
			delim:     ',',
			wantCount: 0,
		},
		{
			name: "short rows are skipped",
			input: "Course Code,Exam Type,Date & Time,Room Info\n" +
				"DAT110,Skriftlig eksamen,3. desember 2024,Sal 1\n" +
				"BROKEN,row\n" +
				"MAT100,Muntlig eksamen,4. desember 2024,Rom 2\n",
			delim:       ',',
			wantCount:   2,
			wantSkipped: 1,
		},
		{
			name: "extra fields are ignored",
			input: "h1,h2,h3,h4\n" +
				"DAT110,Skriftlig,3. desember 2024,Sal 1,extra,more\n",
			delim:     ',',
			wantCount: 1,
		},
		{
			name: "semicolon delimiter",
			input: "Course Code;Exam Type;Date & Time;Room Info\n" +
				"DAT110;Skriftlig eksamen;3. desember 2024;Sal 1, Kristiansand\n",
			delim:     ';',
			wantCount: 1,
		},
		{
			name:    "unterminated quote",
			input:   "h1,h2,h3,h4\n\"DAT110,a,b,c\n",
			delim:   ',',
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, skipped, err := ReadRaw(strings.NewReader(tt.input), tt.delim)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadRaw() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(records) != tt.wantCount {
				t.Errorf("ReadRaw() returned %d records, want %d", len(records), tt.wantCount)
			}
			if skipped != tt.wantSkipped {
				t.Errorf("ReadRaw() skipped = %d, want %d", skipped, tt.wantSkipped)
			}
		})
	}
}

func TestRawRoundTrip(t *testing.T) {
	records := []exam.RawRecord{
		{
			CourseCode: "MUS200",
			ExamType:   "Hjemmeeksamen",
			DateText:   "Utlevering: 19. november 2024 kl. 09:00\nInnlevering: 21. november 2024 kl. 13:00",
			Location:   "Ingen rom",
		},
		{
			CourseCode: "DAT110",
			ExamType:   "Skriftlig eksamen",
			DateText:   "3. desember 2024 kl. 09:00",
			Location:   "Sal 1, Kristiansand",
		},
	}

	var buf bytes.Buffer
	if err := WriteRaw(&buf, ',', records); err != nil {
		t.Fatalf("WriteRaw() error: %v", err)
	}

	if !strings.HasPrefix(buf.String(), "Course Code,Exam Type,Date & Time,Room Info\n") {
		t.Errorf("WriteRaw() header = %q", strings.SplitN(buf.String(), "\n", 2)[0])
	}

	got, skipped, err := ReadRaw(&buf, ',')
	if err != nil {
		t.Fatalf("ReadRaw() error: %v", err)
	}
	if skipped != 0 {
		t.Errorf("ReadRaw() skipped = %d, want 0", skipped)
	}
	if len(got) != len(records) {
		t.Fatalf("ReadRaw() returned %d records, want %d", len(got), len(records))
	}
	for i := range records {
		if got[i] != records[i] {
			t.Errorf("record %d = %+v, want %+v", i, got[i], records[i])
		}
	}
}

func TestWriteRecords(t *testing.T) {
	records := []exam.Record{
		{
			CourseCode: "MUS200",
			ExamType:   "Hjemmeeksamen",
			Start:      "2024-11-19 09:00:00",
			End:        "2024-11-21 13:00:00",
			Dates:      "2024-11-19 09:00:00 to 2024-11-21 13:00:00",
			Location:   "Ingen rom",
		},
	}

	tests := []struct {
		name  string
		mode  exam.Mode
		delim rune
		want  string
	}{
		{
			name:  "split",
			mode:  exam.ModeSplit,
			delim: ',',
			want: "course_code,exam_type,start_time,end_time,location\n" +
				"MUS200,Hjemmeeksamen,2024-11-19 09:00:00,2024-11-21 13:00:00,Ingen rom\n",
		},
		{
			name:  "merged",
			mode:  exam.ModeMerged,
			delim: ',',
			want: "course_code,exam_type,dates,room_info\n" +
				"MUS200,Hjemmeeksamen,2024-11-19 09:00:00 to 2024-11-21 13:00:00,Ingen rom\n",
		},
		{
			name:  "merged with semicolons",
			mode:  exam.ModeMerged,
			delim: ';',
			want: "course_code;exam_type;dates;room_info\n" +
				"MUS200;Hjemmeeksamen;2024-11-19 09:00:00 to 2024-11-21 13:00:00;Ingen rom\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteRecords(&buf, tt.delim, tt.mode, records); err != nil {
				t.Fatalf("WriteRecords() error: %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("WriteRecords() =\n%s\nwant\n%s", buf.String(), tt.want)
			}
		})
	}
}

func TestWriteRecords_InvalidMode(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRecords(&buf, ',', exam.Mode("both"), nil); err == nil {
		t.Error("WriteRecords() expected error for invalid mode")
	}
}

func TestReadRecords(t *testing.T) {
	raws := []exam.RawRecord{
		{CourseCode: "DAT110", ExamType: "Skriftlig eksamen", DateText: "3. desember 2024 kl. 09:00", Location: "Sal 1"},
		{CourseCode: "MUS200", ExamType: "Hjemmeeksamen", DateText: "Utlevering: 19. november 2024 kl. 09:00\nInnlevering: 21. november 2024 kl. 13:00", Location: "Ingen rom"},
		{CourseCode: "KUN300", ExamType: "Mappevurdering", DateText: exam.NotAvailable, Location: exam.NotAvailable},
	}

	for _, mode := range []exam.Mode{exam.ModeSplit, exam.ModeMerged} {
		t.Run(string(mode), func(t *testing.T) {
			want := make([]exam.Record, 0, len(raws))
			for _, raw := range raws {
				want = append(want, exam.Normalize(raw, mode))
			}

			var buf bytes.Buffer
			if err := WriteRecords(&buf, ',', mode, want); err != nil {
				t.Fatalf("WriteRecords() error: %v", err)
			}

			got, gotMode, err := ReadRecords(&buf, ',')
			if err != nil {
				t.Fatalf("ReadRecords() error: %v", err)
			}
			if gotMode != mode {
				t.Errorf("ReadRecords() mode = %q, want %q", gotMode, mode)
			}
			if len(got) != len(want) {
				t.Fatalf("ReadRecords() returned %d records, want %d", len(got), len(want))
			}
			for i := range want {
				if got[i].ID != want[i].ID {
					t.Errorf("record %d ID = %s, want %s", i, got[i].ID, want[i].ID)
				}
				if got[i].Start != want[i].Start || got[i].End != want[i].End {
					t.Errorf("record %d span = (%q, %q), want (%q, %q)",
						i, got[i].Start, got[i].End, want[i].Start, want[i].End)
				}
				if got[i].Location != want[i].Location {
					t.Errorf("record %d Location = %q, want %q", i, got[i].Location, want[i].Location)
				}
			}
		})
	}
}

func TestReadRecords_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "empty input", input: "", wantErr: false},
		{name: "raw header", input: "Course Code,Exam Type,Date & Time,Room Info\nA,B,C,D\n", wantErr: true},
		{name: "header only", input: "course_code,exam_type,start_time,end_time,location\n", wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ReadRecords(strings.NewReader(tt.input), ',')
			if (err != nil) != tt.wantErr {
				t.Errorf("ReadRecords() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
