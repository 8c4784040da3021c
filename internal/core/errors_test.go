package core

import (
	"errors"
	"testing"
)

func TestErrorForReplyCode(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{"NOT_FOUND", ExitNotFound},
		{"CONFIG", ExitConfig},
		{"INVALID", ExitUsage},
		{"UPSTREAM", ExitRuntime},
		{"UNKNOWN", ExitRuntime},
	}

	for _, test := range tests {
		err := ErrorForReplyCode(test.code, "message")
		if err.Code != test.expected {
			t.Fatalf("code %s expected %d got %d", test.code, test.expected, err.Code)
		}
	}
}

func TestExitCode(t *testing.T) {
	if ExitCode(nil) != ExitOK {
		t.Fatalf("nil error is success")
	}
	if ExitCode(&CLIError{Code: ExitNotFound}) != ExitNotFound {
		t.Fatalf("expected CLIError code")
	}
	if ExitCode(errors.New("plain")) != ExitRuntime {
		t.Fatalf("plain errors map to runtime")
	}
}
