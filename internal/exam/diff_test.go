package exam

import "testing"

func TestDiff(t *testing.T) {
	rec := func(code, start string) Record {
		return Normalize(RawRecord{CourseCode: code, ExamType: "Skriftlig eksamen", DateText: start, Location: "Sal 1"}, ModeSplit)
	}

	dat110 := rec("DAT110", "Dato: 3. desember 2024")
	dat120 := rec("DAT120", "Dato: 5. desember 2024")
	ma101 := rec("MA101", "Dato: 9. desember 2024")
	dat120Moved := rec("DAT120", "Dato: 6. desember 2024 kl. 09:00")

	previous := []Record{dat110, dat120}
	current := []Record{dat120Moved, ma101}

	t.Run("finds added records", func(t *testing.T) {
		result := Diff(previous, current)

		if len(result.Added) != 1 || result.Added[0].CourseCode != "MA101" {
			t.Errorf("Added = %+v, want only MA101", result.Added)
		}
	})

	t.Run("finds removed records", func(t *testing.T) {
		result := Diff(previous, current)

		if len(result.Removed) != 1 || result.Removed[0].CourseCode != "DAT110" {
			t.Errorf("Removed = %+v, want only DAT110", result.Removed)
		}
	})

	t.Run("finds changed dates", func(t *testing.T) {
		result := Diff(previous, current)

		if len(result.Changed) != 1 {
			t.Fatalf("expected 1 change, got %d", len(result.Changed))
		}
		change := result.Changed[0]
		if change.Field != "start_time" {
			t.Errorf("Field = %q, want start_time", change.Field)
		}
		if change.OldValue != "2024-12-05 00:00:00" || change.NewValue != "2024-12-06 09:00:00" {
			t.Errorf("change = %q -> %q", change.OldValue, change.NewValue)
		}
	})

	t.Run("identical runs", func(t *testing.T) {
		result := Diff(previous, previous)

		if !result.Empty() {
			t.Errorf("expected empty diff, got %+v", result)
		}
	})

	t.Run("handles nil previous run", func(t *testing.T) {
		result := Diff(nil, current)

		if len(result.Added) != 2 {
			t.Errorf("expected 2 added records, got %d", len(result.Added))
		}
	})

	t.Run("records without IDs are keyed by fields", func(t *testing.T) {
		bare := dat110
		bare.ID = ""

		result := Diff([]Record{dat110}, []Record{bare})
		if !result.Empty() {
			t.Errorf("expected empty diff, got %+v", result)
		}
	})

	t.Run("repeated sittings are paired in order", func(t *testing.T) {
		first := rec("DAT110", "Dato: 3. desember 2024 kl. 09:00")
		second := rec("DAT110", "Dato: 10. desember 2024 kl. 09:00")
		secondMoved := rec("DAT110", "Dato: 11. desember 2024 kl. 09:00")
		third := rec("DAT110", "Dato: 17. desember 2024 kl. 09:00")

		result := Diff([]Record{first, second}, []Record{first, secondMoved, third})

		if len(result.Changed) != 1 {
			t.Fatalf("expected 1 change, got %+v", result.Changed)
		}
		if c := result.Changed[0]; c.OldValue != "2024-12-10 09:00:00" || c.NewValue != "2024-12-11 09:00:00" {
			t.Errorf("change = %q -> %q", c.OldValue, c.NewValue)
		}
		if len(result.Added) != 1 || result.Added[0].Start != "2024-12-17 09:00:00" {
			t.Errorf("Added = %+v, want the third sitting", result.Added)
		}
		if len(result.Removed) != 0 {
			t.Errorf("Removed = %+v, want none", result.Removed)
		}
	})
}
