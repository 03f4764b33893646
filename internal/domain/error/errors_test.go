package error

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestBaseErrorTypes(t *testing.T) {
	// Every specific error must unwrap to exactly its kind
	if !errors.Is(ErrEmptyName, ErrInvalidInput) {
		t.Errorf("ErrEmptyName should wrap ErrInvalidInput")
	}
	if !errors.Is(ErrNoRecordsForOwner, ErrNotFound) {
		t.Errorf("ErrNoRecordsForOwner should wrap ErrNotFound")
	}
	if !errors.Is(ErrNotAuthority, ErrUnauthorized) {
		t.Errorf("ErrNotAuthority should wrap ErrUnauthorized")
	}
	if !errors.Is(ErrCreditOverflow, ErrInvalidState) {
		t.Errorf("ErrCreditOverflow should wrap ErrInvalidState")
	}
	if errors.Is(ErrNotAuthority, ErrNotFound) {
		t.Errorf("ErrNotAuthority must not match ErrNotFound")
	}
	if ErrNoRecordsForOwner.Error() != "not found: no data found for this user" {
		t.Errorf("ErrNoRecordsForOwner has unexpected message: %s", ErrNoRecordsForOwner.Error())
	}
}

func TestErrorCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
		kind     string
		status   int
	}{
		{"InvalidInput", ErrEmptyEmail, 4001, KindInvalidInput, http.StatusBadRequest},
		{"Unauthorized", ErrNotRecordOwner, 4030, KindUnauthorized, http.StatusForbidden},
		{"NotFound", ErrTransactionNotFound, 4040, KindNotFound, http.StatusNotFound},
		{"InvalidState", ErrTransactionFinalized, 4090, KindInvalidState, http.StatusConflict},
		{"UnknownError", errors.New("unknown error"), 5000, KindInternal, http.StatusInternalServerError},
		{"WrappedError", fmt.Errorf("wrapped: %w", ErrInvalidAge), 4001, KindInvalidInput, http.StatusBadRequest},
		{"Database", ErrDatabaseConnection, 5000, KindInternal, http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if code := ErrorCode(tc.err); code != tc.expected {
				t.Errorf("ErrorCode(%v) = %d, want %d", tc.err, code, tc.expected)
			}
			if kind := Kind(tc.err); kind != tc.kind {
				t.Errorf("Kind(%v) = %s, want %s", tc.err, kind, tc.kind)
			}
			if status := HTTPStatus(tc.err); status != tc.status {
				t.Errorf("HTTPStatus(%v) = %d, want %d", tc.err, status, tc.status)
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("name", ErrEmptyName)

	expected := "validation failed for name: invalid input: name cannot be empty"
	if err.Error() != expected {
		t.Errorf("ValidationError.Error() = %s, want %s", err.Error(), expected)
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("errors.Is(err, ErrInvalidInput) = false, want true")
	}

	fields := LogFields(err)
	if fields["field"] != "name" {
		t.Errorf("LogFields()[field] = %v, want name", fields["field"])
	}
}

func TestAuthorizationError(t *testing.T) {
	err := NewAuthorizationError("verifyTransaction", "0xabc", "0xgov", ErrNotAuthority)

	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("errors.Is(err, ErrUnauthorized) = false, want true")
	}

	var authErr *AuthorizationError
	if !errors.As(err, &authErr) {
		t.Fatalf("errors.As should find *AuthorizationError")
	}
	if authErr.Caller != "0xabc" {
		t.Errorf("Caller = %s, want 0xabc", authErr.Caller)
	}
	if LogFields(err)["error_code"] != CodeUnauthorized {
		t.Errorf("LogFields()[error_code] = %v, want %d", LogFields(err)["error_code"], CodeUnauthorized)
	}
}

func TestStateTransitionError(t *testing.T) {
	err := NewStateTransitionError(7, "Verified", "Rejected")

	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("errors.Is(err, ErrInvalidState) = false, want true")
	}
	if !errors.Is(err, ErrTransactionFinalized) {
		t.Errorf("errors.Is(err, ErrTransactionFinalized) = false, want true")
	}
	if ErrorCode(err) != CodeInvalidState {
		t.Errorf("ErrorCode(err) = %d, want %d", ErrorCode(err), CodeInvalidState)
	}
	expected := "transaction 7 cannot move from Verified to Rejected: invalid state: transaction already decided"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}
}

func TestIsDomainError(t *testing.T) {
	if !IsDomainError(ErrEmptyName) || !IsDomainError(ErrRecordNotFound) ||
		!IsDomainError(ErrNotAuthority) || !IsDomainError(ErrTransactionFinalized) {
		t.Errorf("domain kinds should be reported as domain errors")
	}
	if IsDomainError(ErrDatabaseConnection) {
		t.Errorf("ErrDatabaseConnection is not a domain error")
	}
	if IsDomainError(errors.New("serialization failure")) {
		t.Errorf("unknown errors are not domain errors")
	}
}

func TestKindPredicates(t *testing.T) {
	if !IsInvalidInputError(NewValidationError("age", ErrInvalidAge)) {
		t.Errorf("IsInvalidInputError should match a ValidationError")
	}
	if !IsNotFoundError(fmt.Errorf("loading: %w", ErrTransactionNotFound)) {
		t.Errorf("IsNotFoundError should match a wrapped ErrTransactionNotFound")
	}
	if !IsUnauthorizedError(NewAuthorizationError("updateRecord", "0xb", "0xa", ErrNotRecordOwner)) {
		t.Errorf("IsUnauthorizedError should match an AuthorizationError")
	}
	if !IsInvalidStateError(NewStateTransitionError(1, "Rejected", "Verified")) {
		t.Errorf("IsInvalidStateError should match a StateTransitionError")
	}
	if IsNotFoundError(ErrNotAuthority) || IsInvalidInputError(ErrCreditOverflow) {
		t.Errorf("predicates must not match other kinds")
	}
}

func TestLogFieldsFallback(t *testing.T) {
	fields := LogFields(ErrRecordNotFound)
	if fields["error_kind"] != KindNotFound {
		t.Errorf("LogFields()[error_kind] = %v, want %s", fields["error_kind"], KindNotFound)
	}
}
