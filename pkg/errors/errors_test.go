package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppErrorHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		code Code
		want int
	}{
		{"输入无效", CodeInvalidInput, http.StatusBadRequest},
		{"校验失败", CodeValidationFail, http.StatusBadRequest},
		{"排班冲突", CodeScheduleConflict, http.StatusConflict},
		{"规则违反", CodeRuleViolation, http.StatusUnprocessableEntity},
		{"资源不存在", CodeNotFound, http.StatusNotFound},
		{"未知错误", CodeUnknown, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(tt.code, "msg").HTTPStatus; got != tt.want {
				t.Errorf("HTTPStatus = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(cause, CodeDatabaseError, "查询失败")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match its cause with errors.Is")
	}
	if !Is(err, CodeDatabaseError) {
		t.Error("Is should match the wrapped code")
	}
	if Is(err, CodeNotFound) {
		t.Error("Is should not match a different code")
	}
}

func TestValidationErrorRoundTrip(t *testing.T) {
	valErr := Validationf(FieldRestPeriod, "Only %.1f hours of rest", 6.5)

	wrapped := fmt.Errorf("pre-check failed: %w", valErr)
	got, ok := AsValidation(wrapped)
	if !ok {
		t.Fatal("AsValidation should unwrap through fmt.Errorf")
	}
	if got.Field != FieldRestPeriod {
		t.Errorf("Field = %q, want %q", got.Field, FieldRestPeriod)
	}

	appErr := valErr.ToAppError()
	if appErr.Code != CodeValidationFail {
		t.Errorf("Code = %q, want %q", appErr.Code, CodeValidationFail)
	}
	if appErr.Fields[FieldRestPeriod] != valErr.Message {
		t.Errorf("Fields[%q] = %v, want the validation message", FieldRestPeriod, appErr.Fields[FieldRestPeriod])
	}
	if GetHTTPStatus(valErr) != http.StatusBadRequest {
		t.Errorf("GetHTTPStatus = %d, want 400", GetHTTPStatus(valErr))
	}
}
