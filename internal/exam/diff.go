package exam

import (
	"fmt"
	"sort"
)

// Change describes one field that differs between two runs for the same record
type Change struct {
	RecordID   string `json:"record_id"`
	CourseCode string `json:"course_code"`
	ExamType   string `json:"exam_type"`
	Field      string `json:"field"` // "start_time", "end_time", "dates"
	OldValue   string `json:"old_value"`
	NewValue   string `json:"new_value"`
}

// DiffResult contains the results of comparing two conversion runs
type DiffResult struct {
	Added   []Record  `json:"added"`
	Removed []Record  `json:"removed"`
	Changed []*Change `json:"changed"`
}

// Empty reports whether the runs were identical.
func (d *DiffResult) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// Diff compares the records of a previous run against the current one, keyed by
// record ID. Records sharing an ID (several sittings of one exam in the same
// room) are paired by their order of appearance in each run.
func Diff(previous, current []Record) *DiffResult {
	result := &DiffResult{
		Added:   make([]Record, 0),
		Removed: make([]Record, 0),
		Changed: make([]*Change, 0),
	}

	prevByID := index(previous)
	currByID := index(current)

	for id, curr := range currByID {
		prev, exists := prevByID[id]
		if !exists {
			result.Added = append(result.Added, curr)
			continue
		}
		result.Changed = append(result.Changed, DetectChanges(prev, curr)...)
	}

	for id, prev := range prevByID {
		if _, exists := currByID[id]; !exists {
			result.Removed = append(result.Removed, prev)
		}
	}

	// Sort for consistent output
	sortRecords(result.Added)
	sortRecords(result.Removed)
	sort.Slice(result.Changed, func(i, j int) bool {
		a, b := result.Changed[i], result.Changed[j]
		if a.CourseCode != b.CourseCode {
			return a.CourseCode < b.CourseCode
		}
		if a.ExamType != b.ExamType {
			return a.ExamType < b.ExamType
		}
		if a.Field != b.Field {
			return a.Field < b.Field
		}
		return a.OldValue < b.OldValue
	})

	return result
}

// DetectChanges compares the date columns of two versions of a record
func DetectChanges(previous, current Record) []*Change {
	var changes []*Change

	fields := []struct {
		name          string
		before, after string
	}{
		{"start_time", previous.Start, current.Start},
		{"end_time", previous.End, current.End},
		{"dates", previous.Dates, current.Dates},
	}

	for _, f := range fields {
		if f.before == f.after {
			continue
		}
		changes = append(changes, &Change{
			RecordID:   current.ID,
			CourseCode: current.CourseCode,
			ExamType:   current.ExamType,
			Field:      f.name,
			OldValue:   f.before,
			NewValue:   f.after,
		})
	}

	return changes
}

// index keys records by ID. The n-th repeat of an ID is keyed "<id>#n".
func index(records []Record) map[string]Record {
	byID := make(map[string]Record, len(records))
	seen := make(map[string]int, len(records))
	for _, r := range records {
		if r.ID == "" {
			r.ID = GenerateID(r.CourseCode, r.ExamType, r.Location)
		}
		key := r.ID
		if n := seen[r.ID]; n > 0 {
			key = fmt.Sprintf("%s#%d", r.ID, n+1)
		}
		seen[r.ID]++
		byID[key] = r
	}
	return byID
}

func sortRecords(records []Record) {
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.CourseCode != b.CourseCode {
			return a.CourseCode < b.CourseCode
		}
		if a.ExamType != b.ExamType {
			return a.ExamType < b.ExamType
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.Location < b.Location
	})
}
