package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestStandardErrorIs(t *testing.T) {
	tests := []struct {
		name   string
		err    *StandardError
		target *StandardError
		want   bool
	}{
		{"same code", CrossArena("type", 1, 2), &StandardError{Category: CategoryInvariant, Code: "CROSS_ARENA"}, true},
		{"other code", Precondition("x"), &StandardError{Category: CategoryInvariant, Code: "CROSS_ARENA"}, false},
		{"other category", InvalidHandle("expr", 3, 2), &StandardError{Category: CategoryInvariant, Code: "INVALID_HANDLE"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("wrapped: %w", tt.err)
			if got := stderrors.Is(wrapped, tt.target); got != tt.want {
				t.Errorf("errors.Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStandardErrorMessage(t *testing.T) {
	err := InvalidStateMerge(0b001, 0b100)
	msg := err.Error()
	if !strings.HasPrefix(msg, "[INVARIANT:INVALID_STATE_MERGE] merging variable states 001 and 100") {
		t.Errorf("unexpected message %q", msg)
	}
	if !strings.Contains(msg, "TestStandardErrorMessage") {
		t.Errorf("caller should be the test function: %q", msg)
	}
	if err.Context["a"] != uint8(1) {
		t.Errorf("context not recorded: %v", err.Context)
	}
}
