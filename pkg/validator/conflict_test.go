package validator

import (
	"testing"

	"github.com/google/uuid"

	"github.com/TingTung93/AI-Schedule-Manager-sub001/pkg/model"
)

func conflictsOfType(conflicts []Conflict, typ ConflictType) []Conflict {
	var out []Conflict
	for _, c := range conflicts {
		if c.Type == typ {
			out = append(out, c)
		}
	}
	return out
}

func TestConflictDetector_Overlaps(t *testing.T) {
	empID := uuid.New()
	entries := []*model.ScheduleEntry{
		newEntry(empID, "2026-09-02", "09:00", "13:00"),
		newEntry(empID, "2026-09-02", "12:00", "16:00"),
		newEntry(empID, "2026-09-03", "09:00", "13:00"), // 不同日期
	}

	detector := NewConflictDetector(nil)
	overlaps := conflictsOfType(detector.DetectAll(entries), ConflictOverlap)

	if len(overlaps) != 1 {
		t.Fatalf("expected 1 overlap conflict, got %d", len(overlaps))
	}
	c := overlaps[0]
	if c.EmployeeID != empID {
		t.Errorf("EmployeeID = %v, want %v", c.EmployeeID, empID)
	}
	if c.Date != "2026-09-02" {
		t.Errorf("Date = %q, want 2026-09-02", c.Date)
	}
	if len(c.Entries) != 2 {
		t.Errorf("expected 2 entry IDs, got %d", len(c.Entries))
	}
}

func TestConflictDetector_BackToBackNotOverlap(t *testing.T) {
	empID := uuid.New()
	entries := []*model.ScheduleEntry{
		newEntry(empID, "2026-09-02", "00:00", "08:00"),
		newEntry(empID, "2026-09-02", "08:00", "16:00"),
	}

	detector := NewConflictDetector(&DetectorConfig{MinRestHours: 0})
	if got := detector.DetectAll(entries); len(got) != 0 {
		t.Errorf("back-to-back shifts should not conflict, got %v", got)
	}
}

func TestConflictDetector_RestViolations(t *testing.T) {
	empID := uuid.New()
	entries := []*model.ScheduleEntry{
		// 乱序输入，检测器会自己排序
		newEntry(empID, "2026-09-03", "05:00", "13:00"),
		newEntry(empID, "2026-09-02", "14:00", "22:00"),
	}

	detector := NewConflictDetector(nil) // 默认 8 小时
	rests := conflictsOfType(detector.DetectAll(entries), ConflictRestTime)

	if len(rests) != 1 {
		t.Fatalf("expected 1 rest conflict, got %d", len(rests))
	}
	if rests[0].Date != "2026-09-03" {
		t.Errorf("Date = %q, want the later shift's date", rests[0].Date)
	}

	// 恰好满足最小休息
	ok := []*model.ScheduleEntry{
		newEntry(empID, "2026-09-02", "14:00", "22:00"),
		newEntry(empID, "2026-09-03", "06:00", "13:00"),
	}
	if got := conflictsOfType(detector.DetectAll(ok), ConflictRestTime); len(got) != 0 {
		t.Errorf("exactly 8 hours of rest should not conflict, got %v", got)
	}
}

func TestConflictDetector_MaxHours(t *testing.T) {
	empID := uuid.New()
	entries := []*model.ScheduleEntry{
		newEntry(empID, "2026-08-31", "08:00", "20:00"), // 12h
		newEntry(empID, "2026-09-01", "08:00", "20:00"), // 12h
		newEntry(empID, "2026-09-02", "08:00", "20:00"), // 12h，计 36h
		newEntry(empID, "2026-09-07", "08:00", "16:00"), // 下一周 8h
	}

	detector := NewConflictDetector(&DetectorConfig{MinRestHours: 8, MaxHoursPerWeek: 30})
	maxed := conflictsOfType(detector.DetectAll(entries), ConflictMaxHours)

	if len(maxed) != 1 {
		t.Fatalf("expected 1 max-hours conflict, got %d", len(maxed))
	}
	if maxed[0].Date != "2026-08-31" {
		t.Errorf("Date = %q, want the week start 2026-08-31", maxed[0].Date)
	}

	// MaxHoursPerWeek=0 时跳过检查
	off := NewConflictDetector(&DetectorConfig{MinRestHours: 8})
	if got := conflictsOfType(off.DetectAll(entries), ConflictMaxHours); len(got) != 0 {
		t.Errorf("max-hours check should be disabled when the cap is 0, got %v", got)
	}
}

func TestConflictDetector_IgnoresCancelledAndOtherEmployees(t *testing.T) {
	empA, empB := uuid.New(), uuid.New()

	cancelled := newEntry(empA, "2026-09-02", "09:00", "13:00")
	cancelled.Status = model.StatusCancelled

	entries := []*model.ScheduleEntry{
		cancelled,
		newEntry(empA, "2026-09-02", "12:00", "16:00"),
		newEntry(empB, "2026-09-02", "12:00", "16:00"), // 不同员工同时段
	}

	detector := NewConflictDetector(nil)
	if got := detector.DetectAll(entries); len(got) != 0 {
		t.Errorf("cancelled entries and cross-employee shifts should not conflict, got %v", got)
	}
}

func TestConflictDetector_EmptyInput(t *testing.T) {
	detector := NewConflictDetector(nil)
	if got := detector.DetectAll(nil); len(got) != 0 {
		t.Errorf("empty schedule should have no conflicts, got %v", got)
	}
}
