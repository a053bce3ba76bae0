package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindForbidden, http.StatusForbidden},
		{KindNotFound, http.StatusNotFound},
		{KindConflict, http.StatusConflict},
		{KindInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := HTTPStatus(tc.kind); got != tc.want {
			t.Errorf("HTTPStatus(%d) = %d, want %d", tc.kind, got, tc.want)
		}
	}
}

func TestKindOfSurvivesWrapping(t *testing.T) {
	base := New(KindNotFound, "Event not found")
	wrapped := fmt.Errorf("get event: %w", base)

	if KindOf(wrapped) != KindNotFound {
		t.Error("Kind lost through fmt.Errorf wrapping")
	}
	if StatusOf(wrapped) != http.StatusNotFound {
		t.Error("Status lost through fmt.Errorf wrapping")
	}
}

func TestUntaggedErrorsAreInternal(t *testing.T) {
	err := errors.New("connection reset")

	if KindOf(err) != KindInternal {
		t.Error("Untagged errors must map to internal")
	}
	if MessageOf(err) != "Internal server error" {
		t.Errorf("Internal errors must be redacted, got %q", MessageOf(err))
	}
}

func TestMessageOfExposesClientKinds(t *testing.T) {
	err := New(KindConflict, "Email already registered")
	if MessageOf(err) != "Email already registered" {
		t.Errorf("Client-facing message lost: %q", MessageOf(err))
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(KindValidation, "Invalid event data", cause)

	if !errors.Is(err, cause) {
		t.Error("Wrapped cause not reachable via errors.Is")
	}
	if KindOf(err) != KindValidation {
		t.Error("Wrap dropped the kind")
	}
}
