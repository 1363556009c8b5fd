package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeNotFound, "not found")
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "not found" {
		t.Errorf("expected message 'not found', got %q", err.Message)
	}
}

func TestAppError_NotFound_Success(t *testing.T) {
	err := NotFound("scenario", "daily_sync")
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND, got %s", err.Code)
	}
	if err.Details["resource"] != "scenario" {
		t.Errorf("expected resource=scenario, got %v", err.Details["resource"])
	}
	if err.Details["name"] != "daily_sync" {
		t.Errorf("expected name=daily_sync, got %v", err.Details["name"])
	}
}

func TestAppError_NotFound_EmptyName(t *testing.T) {
	err := NotFound("scenario", "")
	if _, ok := err.Details["name"]; ok {
		t.Error("expected no 'name' key in details when name is empty")
	}
}

func TestAppError_ComparatorNotFound_Success(t *testing.T) {
	err := ComparatorNotFound("ds2")
	if err.Code != ErrCodeComparatorNotFound {
		t.Errorf("expected COMPARATOR_NOT_FOUND, got %s", err.Code)
	}
	if err.Details["entity_id"] != "ds2" {
		t.Errorf("expected entity_id=ds2, got %v", err.Details["entity_id"])
	}
	if !strings.Contains(err.Message, "ds2") {
		t.Errorf("expected message to mention entity, got %q", err.Message)
	}
}

func TestAppError_InvalidInput_Success(t *testing.T) {
	err := InvalidInput("comparator", "must not be nil")
	if err.Code != ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", err.Code)
	}
	if err.Details["field"] != "comparator" {
		t.Errorf("expected field=comparator, got %v", err.Details["field"])
	}
}

func TestAppError_Is_MatchesByCode(t *testing.T) {
	sentinel := &AppError{Code: ErrCodeComparatorNotFound}
	err := fmt.Errorf("remove: %w", ComparatorNotFound("ds1"))

	if !stderrors.Is(err, sentinel) {
		t.Error("expected errors.Is to match on code through wrapping")
	}
	if stderrors.Is(err, &AppError{Code: ErrCodeNotFound}) {
		t.Error("expected errors.Is not to match a different code")
	}
	if !HasCode(err, ErrCodeComparatorNotFound) {
		t.Error("expected HasCode to match")
	}
	if CodeOf(err) != ErrCodeComparatorNotFound {
		t.Errorf("expected CodeOf to return COMPARATOR_NOT_FOUND, got %q", CodeOf(err))
	}
	if CodeOf(fmt.Errorf("plain")) != "" {
		t.Error("expected empty code for plain error")
	}
}

func TestAppError_WithCause_Chain(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := NotFound("pipeline", "ingest").WithCause(cause)
	if err.Cause != cause {
		t.Error("expected cause to be set via WithCause")
	}
	if !strings.Contains(err.Error(), "root cause") {
		t.Errorf("Error() should contain cause, got %q", err.Error())
	}
}

func TestAppError_WithDetails_Merge(t *testing.T) {
	err := NotFound("pipeline", "ingest").WithDetails(map[string]any{
		"scenario": "daily_sync",
	})
	if err.Details["scenario"] != "daily_sync" {
		t.Errorf("expected scenario=daily_sync in details")
	}
	if err.Details["resource"] != "pipeline" {
		t.Error("expected original details to be preserved")
	}
}

func TestAppError_WithDetails_Nil(t *testing.T) {
	err := Internal(nil).WithDetails(nil)
	if err.Details == nil {
		t.Fatal("expected Details map to be initialized even with nil input")
	}
}

func TestAppError_WithDetail_NilMap(t *testing.T) {
	err := &AppError{}
	err.WithDetail("key", "value")
	if err.Details["key"] != "value" {
		t.Errorf("expected key=value, got %v", err.Details["key"])
	}
}

func TestAppError_Constructors_Table(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		code ErrorCode
	}{
		{"AlreadyExists", AlreadyExists("scenario", "x"), ErrCodeAlreadyExists},
		{"MissingField", MissingField("name"), ErrCodeMissingField},
		{"Validation", Validation("bad input"), ErrCodeInvalidInput},
		{"Internal", Internal(nil), ErrCodeInternal},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("expected code %s, got %s", tc.code, tc.err.Code)
			}
		})
	}
}

func TestAsAppError_Success(t *testing.T) {
	wrapped := fmt.Errorf("wrap: %w", Internal(nil))
	got, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to succeed for wrapped AppError")
	}
	if got.Code != ErrCodeInternal {
		t.Errorf("expected INTERNAL_ERROR, got %s", got.Code)
	}
	if _, ok := AsAppError(fmt.Errorf("not an app error")); ok {
		t.Error("expected AsAppError to return false for non-AppError")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil) != nil {
		t.Error("Wrap(nil) should return nil")
	}
	orig := NotFound("scenario", "x")
	if Wrap(orig) != orig {
		t.Error("Wrap should return the original AppError unchanged")
	}
	plain := fmt.Errorf("something broke")
	got := Wrap(plain)
	if got.Code != ErrCodeInternal || got.Cause != plain {
		t.Errorf("expected INTERNAL_ERROR wrapping the plain error, got %v", got)
	}
}
