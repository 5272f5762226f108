package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrCodeConsistency, "node %d below child", 4),
			want: "CONSISTENCY: node 4 below child",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeInvalidLinkage, fmt.Errorf("short row"), "record %d", 2),
			want: "INVALID_LINKAGE: record 2: short row",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeStructuralCycle, "node 3 revisited")

	if !Is(err, ErrCodeStructuralCycle) {
		t.Error("Is() = false for matching code, want true")
	}
	if Is(err, ErrCodeConsistency) {
		t.Error("Is() = true for non-matching code, want false")
	}
	if Is(stderrors.New("plain"), ErrCodeStructuralCycle) {
		t.Error("Is() = true for plain error, want false")
	}
}

func TestIs_WrappedChain(t *testing.T) {
	inner := New(ErrCodeStructuralShared, "node 5 has two parents")
	outer := fmt.Errorf("build tree: %w", inner)

	if !Is(outer, ErrCodeStructuralShared) {
		t.Error("Is() should find code through fmt.Errorf wrapping")
	}
}

func TestIsStructural(t *testing.T) {
	tests := []struct {
		code Code
		want bool
	}{
		{ErrCodeStructural, true},
		{ErrCodeStructuralCycle, true},
		{ErrCodeStructuralShared, true},
		{ErrCodeStructuralOrphan, true},
		{ErrCodeConsistency, false},
		{ErrCodeConfiguration, false},
	}

	for _, tt := range tests {
		if got := IsStructural(New(tt.code, "x")); got != tt.want {
			t.Errorf("IsStructural(%s) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("root cause")
	err := Wrap(ErrCodeInternal, cause, "wrapped")

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is() should reach the cause through Unwrap")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeConfiguration, "bad orientation")); got != ErrCodeConfiguration {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeConfiguration)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode() = %q for plain error, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeNotFound, "layout missing")); got != "layout missing" {
		t.Errorf("UserMessage() = %q, want %q", got, "layout missing")
	}
	if got := UserMessage(stderrors.New("plain")); got != "plain" {
		t.Errorf("UserMessage() = %q, want %q", got, "plain")
	}
}
