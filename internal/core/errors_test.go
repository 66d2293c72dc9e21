// internal/core/errors_test.go
package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	err := &Error{Code: "TEST_ERROR", Message: "test message"}
	if err.Error() != "[TEST_ERROR] test message" {
		t.Errorf("unexpected error string: %s", err.Error())
	}

	wrapped := WrapError(ErrDataUnavailable, errors.New("disk gone"))
	want := "[DATA_UNAVAILABLE] strategy data unavailable: disk gone"
	if wrapped.Error() != want {
		t.Errorf("got %q, want %q", wrapped.Error(), want)
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{Code: "WRAP", Message: "wrapped", Cause: cause}
	if !errors.Is(err, cause) {
		t.Error("Unwrap should return cause")
	}
}

func TestError_Is(t *testing.T) {
	if !errors.Is(ErrDataMalformed, ErrDataMalformed) {
		t.Error("same error should match")
	}

	wrapped := fmt.Errorf("loading: %w", WrapError(ErrDataMalformed, errors.New("bad json")))
	if !errors.Is(wrapped, ErrDataMalformed) {
		t.Error("wrapped error should match by code")
	}
	if errors.Is(wrapped, ErrDataUnavailable) {
		t.Error("different codes should not match")
	}
}

func TestWrapError(t *testing.T) {
	cause := errors.New("original")
	wrapped := WrapError(ErrReportUnparsable, cause)
	if wrapped.Cause != cause {
		t.Error("cause not set")
	}
	if wrapped.Code != ErrReportUnparsable.Code {
		t.Error("code not preserved")
	}
}

func TestError_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(WrapError(ErrIngestRunning, errors.New("busy")))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"code":"INGEST_RUNNING","message":"an ingest run is already in progress","cause":"busy"}`
	if string(out) != want {
		t.Errorf("got %s, want %s", out, want)
	}

	out, _ = json.Marshal(ErrJobNotFound)
	if string(out) != `{"code":"JOB_NOT_FOUND","message":"ingest job not found"}` {
		t.Errorf("unexpected %s", out)
	}
}
