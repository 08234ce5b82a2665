package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunnerRunSuccess(t *testing.T) {
	runner := NewRunner(discardLogger())
	if err := runner.Run(context.Background(), "sh", "-c", "echo ok"); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
}

func TestRunnerRunSurfacesOutputTail(t *testing.T) {
	runner := NewRunner(discardLogger())
	err := runner.Run(context.Background(), "sh", "-c", "echo diagnostic detail; exit 3")
	if err == nil {
		t.Fatal("expected failure")
	}
	if !errors.Is(err, ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool, got %v", err)
	}
	if !strings.Contains(err.Error(), "diagnostic detail") {
		t.Fatalf("expected tool output in error, got %q", err.Error())
	}
}

func TestRunnerRejectsEmptyBinary(t *testing.T) {
	runner := NewRunner(discardLogger())
	if err := runner.Run(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty binary")
	}
	if _, err := runner.CaptureOutput(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty binary")
	}
}

func TestRunnerCaptureOutput(t *testing.T) {
	runner := NewRunner(discardLogger())
	out, err := runner.CaptureOutput(context.Background(), "sh", "-c", "echo libsvtav1")
	if err != nil {
		t.Fatalf("capture failed: %v", err)
	}
	if !strings.Contains(out, "libsvtav1") {
		t.Fatalf("unexpected output %q", out)
	}
}
