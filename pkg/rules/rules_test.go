package rules

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/TingTung93/AI-Schedule-Manager-sub001/pkg/model"
)

// newTestContext 构造评估上下文的测试辅助
func newTestContext(emp *model.Employee, existing []*model.Assignment, now time.Time) *Context {
	return NewContext(emp, existing, uuid.Nil, now)
}

// newAssignment 构造一条生效分配
func newAssignment(empID uuid.UUID, date, start, end, shiftType string) *model.Assignment {
	a := &model.Assignment{
		EmployeeID: empID,
		Status:     model.StatusAssigned,
		Shift: model.Shift{
			Date:      date,
			StartTime: start,
			EndTime:   end,
			ShiftType: shiftType,
		},
	}
	a.ID = uuid.New()
	return a
}

func TestNewRule_Defaults(t *testing.T) {
	rule, err := NewRule(1, TypeWorkload, model.JSONMap{"max_weekly_hours": 40})
	if err != nil {
		t.Fatalf("NewRule error: %v", err)
	}
	if rule.Priority != 5 {
		t.Errorf("default Priority = %d, want 5", rule.Priority)
	}
	if !rule.Active {
		t.Error("new rule should be active")
	}
	if rule.Strict {
		t.Error("new rule should not be strict by default")
	}
}

func TestRule_AppliesToEmployee(t *testing.T) {
	target := uuid.New()
	other := uuid.New()

	global := &Rule{ID: 1, RuleType: TypeWorkload}
	if !global.IsGlobal() || !global.AppliesToEmployee(target) {
		t.Error("global rule should apply to every employee")
	}

	scoped := &Rule{ID: 2, RuleType: TypeWorkload, EmployeeID: &target}
	if scoped.IsGlobal() {
		t.Error("scoped rule should not be global")
	}
	if !scoped.AppliesToEmployee(target) {
		t.Error("scoped rule should apply to its employee")
	}
	if scoped.AppliesToEmployee(other) {
		t.Error("scoped rule should not apply to another employee")
	}
}

func TestRule_IsEffective(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -10)
	future := now.AddDate(0, 0, 10)

	tests := []struct {
		name string
		rule Rule
		want bool
	}{
		{name: "无窗口激活", rule: Rule{Active: true}, want: true},
		{name: "未激活", rule: Rule{Active: false}, want: false},
		{name: "窗口内", rule: Rule{Active: true, EffectiveFrom: &past, EffectiveUntil: &future}, want: true},
		{name: "尚未生效", rule: Rule{Active: true, EffectiveFrom: &future}, want: false},
		{name: "已过期", rule: Rule{Active: true, EffectiveUntil: &past}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rule.IsEffective(now); got != tt.want {
				t.Errorf("IsEffective = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRule_Validate_NotApplicable(t *testing.T) {
	empID := uuid.New()
	emp := &model.Employee{}
	emp.ID = empID
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	ctx := newTestContext(emp, nil, now)
	a := newAssignment(empID, "2026-09-02", "09:00", "17:00", "morning")

	inactive := &Rule{ID: 1, RuleType: TypeWorkload, Active: false}
	if valid, msg := inactive.Validate(a, ctx); !valid || msg != "Rule not applicable" {
		t.Errorf("inactive rule = (%v, %q), want (true, Rule not applicable)", valid, msg)
	}

	other := uuid.New()
	scoped := &Rule{ID: 2, RuleType: TypeWorkload, Active: true, EmployeeID: &other}
	if valid, msg := scoped.Validate(a, ctx); !valid || msg != "Rule not applicable" {
		t.Errorf("rule for another employee = (%v, %q), want (true, Rule not applicable)", valid, msg)
	}
}

func TestRule_Validate_UnknownType(t *testing.T) {
	empID := uuid.New()
	emp := &model.Employee{}
	emp.ID = empID
	ctx := newTestContext(emp, nil, time.Now())
	a := newAssignment(empID, "2026-09-02", "09:00", "17:00", "morning")

	rule := &Rule{ID: 9, RuleType: Type("experimental"), Active: true}
	valid, msg := rule.Validate(a, ctx)
	if !valid {
		t.Error("unknown rule type should pass permissively")
	}
	if msg != "Unknown rule type: experimental" {
		t.Errorf("message = %q, want %q", msg, "Unknown rule type: experimental")
	}
}

func TestKnownTypes(t *testing.T) {
	if len(KnownTypes()) != 8 {
		t.Errorf("KnownTypes length = %d, want 8", len(KnownTypes()))
	}
	if !IsKnownType(TypeRestPeriod) {
		t.Error("rest_period should be a known type")
	}
	if IsKnownType(Type("bogus")) {
		t.Error("bogus should not be a known type")
	}
}
