package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/TingTung93/AI-Schedule-Manager-sub001/internal/constraints"
	"github.com/TingTung93/AI-Schedule-Manager-sub001/pkg/model"
	"github.com/TingTung93/AI-Schedule-Manager-sub001/pkg/rules"
)

func newTestHandler() *ValidateHandler {
	return NewValidateHandler(rules.NewEngine(), nil, nil, nil)
}

func postJSON(t *testing.T, h http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(data))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decodeAssignmentResponse(t *testing.T, rec *httptest.ResponseRecorder) ValidateAssignmentResponse {
	t.Helper()
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp ValidateAssignmentResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestValidateAssignment_Accept(t *testing.T) {
	h := newTestHandler()
	empID := uuid.New().String()

	rec := postJSON(t, h.ValidateAssignment, ValidateAssignmentRequest{
		Employee: EmployeeInput{ID: empID, Qualifications: []string{"RN"}},
		Shift:    ShiftInput{Date: "2026-09-02", StartTime: "09:00", EndTime: "17:00"},
		Rules: []RuleInput{
			{ID: 1, RuleType: "qualification", Strict: true,
				Constraints: model.JSONMap{"required_qualifications": []interface{}{"RN"}}},
		},
		Now: "2026-09-01T12:00:00Z",
	})

	resp := decodeAssignmentResponse(t, rec)
	if !resp.Accepted {
		t.Fatalf("expected accepted, got reason %q", resp.Reason)
	}
	if resp.ViolatedRuleID != nil {
		t.Errorf("ViolatedRuleID should be nil, got %d", *resp.ViolatedRuleID)
	}
	if resp.Duration == "" {
		t.Error("duration should be set")
	}
}

func TestValidateAssignment_StrictRuleRejects(t *testing.T) {
	h := newTestHandler()
	empID := uuid.New().String()

	rec := postJSON(t, h.ValidateAssignment, ValidateAssignmentRequest{
		Employee: EmployeeInput{ID: empID},
		Shift:    ShiftInput{Date: "2026-09-02", StartTime: "09:00", EndTime: "17:00"},
		Rules: []RuleInput{
			{ID: 7, RuleType: "qualification", Strict: true,
				Constraints: model.JSONMap{"required_qualifications": []interface{}{"RN"}}},
		},
		Now: "2026-09-01T12:00:00Z",
	})

	resp := decodeAssignmentResponse(t, rec)
	if resp.Accepted {
		t.Fatal("expected rejection")
	}
	if resp.Reason != "Missing required qualifications: ['RN']" {
		t.Errorf("Reason = %q", resp.Reason)
	}
	if resp.ViolatedRuleID == nil || *resp.ViolatedRuleID != 7 {
		t.Errorf("ViolatedRuleID = %v, want 7", resp.ViolatedRuleID)
	}
	if len(resp.Violations) != 1 || resp.Violations[0].RuleType != "qualification" {
		t.Errorf("unexpected violations: %+v", resp.Violations)
	}
}

func TestValidateAssignment_SoftRuleDoesNotBlock(t *testing.T) {
	h := newTestHandler()
	empID := uuid.New().String()

	rec := postJSON(t, h.ValidateAssignment, ValidateAssignmentRequest{
		Employee: EmployeeInput{ID: empID},
		Shift:    ShiftInput{Date: "2026-09-02", StartTime: "09:00", EndTime: "17:00", ShiftType: "night"},
		Rules: []RuleInput{
			{ID: 3, RuleType: "preference", EmployeeID: empID,
				Constraints: model.JSONMap{"preferred_shift_types": []interface{}{"morning"}}},
		},
		Now: "2026-09-01T12:00:00Z",
	})

	resp := decodeAssignmentResponse(t, rec)
	if !resp.Accepted {
		t.Fatalf("soft violation should not block, reason %q", resp.Reason)
	}
}

func TestValidateAssignment_PreCheckRejects(t *testing.T) {
	h := newTestHandler()
	empID := uuid.New().String()

	rec := postJSON(t, h.ValidateAssignment, ValidateAssignmentRequest{
		Employee: EmployeeInput{ID: empID},
		Shift:    ShiftInput{Date: "2026-09-02", StartTime: "12:00", EndTime: "16:00"},
		Existing: []EntryInput{
			{EmployeeID: empID, Date: "2026-09-02", StartTime: "09:00", EndTime: "13:00"},
		},
		Now: "2026-09-01T12:00:00Z",
	})

	resp := decodeAssignmentResponse(t, rec)
	if resp.Accepted {
		t.Fatal("overlapping shift should be rejected")
	}
	if len(resp.Checks) == 0 {
		t.Fatal("expected at least one failed check")
	}
	if resp.Checks[0].Field != "schedule_conflict" {
		t.Errorf("Checks[0].Field = %q, want schedule_conflict", resp.Checks[0].Field)
	}
	if resp.Reason != resp.Checks[0].Message {
		t.Errorf("Reason should fall back to the first check message, got %q", resp.Reason)
	}
}

func TestValidateAssignment_InvalidInput(t *testing.T) {
	h := newTestHandler()

	cases := []struct {
		name string
		req  ValidateAssignmentRequest
	}{
		{"缺少员工ID", ValidateAssignmentRequest{
			Shift: ShiftInput{Date: "2026-09-02", StartTime: "09:00", EndTime: "17:00"},
		}},
		{"日期格式错误", ValidateAssignmentRequest{
			Employee: EmployeeInput{ID: uuid.New().String()},
			Shift:    ShiftInput{Date: "09/02/2026", StartTime: "09:00", EndTime: "17:00"},
		}},
		{"时间格式错误", ValidateAssignmentRequest{
			Employee: EmployeeInput{ID: uuid.New().String()},
			Shift:    ShiftInput{Date: "2026-09-02", StartTime: "9am", EndTime: "17:00"},
		}},
		{"员工ID非UUID", ValidateAssignmentRequest{
			Employee: EmployeeInput{ID: "emp-42"},
			Shift:    ShiftInput{Date: "2026-09-02", StartTime: "09:00", EndTime: "17:00"},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(t, h.ValidateAssignment, tc.req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestValidateAssignment_MethodNotAllowed(t *testing.T) {
	h := newTestHandler()
	rec := httptest.NewRecorder()
	h.ValidateAssignment(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestValidateSchedule_DetectsConflicts(t *testing.T) {
	h := newTestHandler()
	empID := uuid.New().String()

	rec := postJSON(t, h.ValidateSchedule, ValidateScheduleRequest{
		Entries: []EntryInput{
			{EmployeeID: empID, Date: "2026-09-02", StartTime: "09:00", EndTime: "13:00"},
			{EmployeeID: empID, Date: "2026-09-02", StartTime: "12:00", EndTime: "16:00"},
		},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp ValidateScheduleResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Valid {
		t.Fatal("overlapping entries should be invalid")
	}
	if len(resp.Conflicts) != 1 || resp.Conflicts[0].Type != "overlap" {
		t.Errorf("unexpected conflicts: %+v", resp.Conflicts)
	}
	if resp.Conflicts[0].EmployeeID != empID {
		t.Errorf("EmployeeID = %q, want %q", resp.Conflicts[0].EmployeeID, empID)
	}
}

func TestValidateSchedule_CleanPlan(t *testing.T) {
	h := newTestHandler()
	empID := uuid.New().String()

	rec := postJSON(t, h.ValidateSchedule, ValidateScheduleRequest{
		Entries: []EntryInput{
			{EmployeeID: empID, Date: "2026-09-02", StartTime: "09:00", EndTime: "17:00"},
			{EmployeeID: empID, Date: "2026-09-03", StartTime: "09:00", EndTime: "17:00"},
		},
	})

	var resp ValidateScheduleResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Valid {
		t.Errorf("clean plan should be valid, conflicts: %+v", resp.Conflicts)
	}
}

func TestValidateSchedule_EmptyWithoutRepo(t *testing.T) {
	h := newTestHandler()
	rec := postJSON(t, h.ValidateSchedule, ValidateScheduleRequest{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestRulesLibrary(t *testing.T) {
	h := newTestHandler()
	rec := httptest.NewRecorder()
	h.RulesLibrary(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp constraints.LibraryResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Library) != len(rules.KnownTypes()) {
		t.Errorf("library has %d definitions, want %d", len(resp.Library), len(rules.KnownTypes()))
	}

	rec = httptest.NewRecorder()
	h.RulesLibrary(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("POST status = %d, want 400", rec.Code)
	}
}
