package logging

import (
	"context"
	"testing"
)

func TestWithCommand(t *testing.T) {
	ctx := WithCommand(context.Background(), "pipe")

	if got := GetCommand(ctx); got != "pipe" {
		t.Errorf("GetCommand() = %q, want %q", got, "pipe")
	}
}

func TestWithSource(t *testing.T) {
	ctx := WithSource(context.Background(), "stdin")

	if got := GetSource(ctx); got != "stdin" {
		t.Errorf("GetSource() = %q, want %q", got, "stdin")
	}
}

func TestGetters_empty(t *testing.T) {
	ctx := context.Background()

	if got := GetCommand(ctx); got != "" {
		t.Errorf("GetCommand() on empty context = %q, want empty", got)
	}
	if got := GetSource(ctx); got != "" {
		t.Errorf("GetSource() on empty context = %q, want empty", got)
	}
}
