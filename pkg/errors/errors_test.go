package errors_test

import (
	stderrors "errors"
	"os"
	"testing"

	"github.com/readtrack/syncguard/pkg/errors"
)

func TestDetectorErrorIdentity(t *testing.T) {
	inner := stderrors.New("division by zero")
	err := errors.NewDetectorError("timestamp", "b1", inner)

	if !errors.IsDetectorFault(err) {
		t.Error("expected detector fault identity")
	}
	if !stderrors.Is(err, inner) {
		t.Error("expected unwrap to inner error")
	}
	want := "detector timestamp failed on item b1: division by zero"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestCacheErrorIdentity(t *testing.T) {
	err := errors.NewCacheError("get", "b1|b1|0|0|", stderrors.New("connection refused"))
	if !errors.IsCacheUnavailable(err) {
		t.Error("expected cache unavailable identity")
	}
}

func TestValidationErrorIdentity(t *testing.T) {
	err := errors.NewValidationError("progress", -5, "must be within [0, 100]")
	if !errors.IsValidationError(err) {
		t.Error("expected validation identity")
	}
	if errors.IsDetectorFault(err) {
		t.Error("validation error must not read as detector fault")
	}
}

func TestWrapHelpers(t *testing.T) {
	if errors.WrapIO("read", "x", nil) != nil {
		t.Error("wrapping nil must stay nil")
	}
	if errors.WrapParse("yaml", "x", nil) != nil {
		t.Error("wrapping nil must stay nil")
	}
	if errors.WrapValidation("field", nil) != nil {
		t.Error("wrapping nil must stay nil")
	}

	err := errors.WrapIO("read", "snapshot.json", os.ErrNotExist)
	if !stderrors.Is(err, os.ErrNotExist) {
		t.Error("expected unwrap to os.ErrNotExist")
	}
}

func TestParseErrorMessage(t *testing.T) {
	err := errors.NewParseError("yaml", "snapshot.yaml", "bad indent", nil)
	want := "parse error in yaml file snapshot.yaml: bad indent"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
