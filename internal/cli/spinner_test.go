package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

// captureStatus redirects status output for the duration of a test.
func captureStatus(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := statusOut
	statusOut = &buf
	t.Cleanup(func() { statusOut = old })
	return &buf
}

func TestSpinnerBasic(t *testing.T) {
	buf := captureStatus(t)

	s := newSpinner(context.Background(), "Testing...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if s.Cancelled() {
		t.Error("Stop should not mark the spinner as cancelled")
	}
	if !strings.Contains(buf.String(), "Testing...") {
		t.Errorf("spinner output missing message: %q", buf.String())
	}
}

func TestSpinnerWithContext(t *testing.T) {
	captureStatus(t)
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinner(ctx, "Testing with context...")
	s.Start()
	cancel()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
	s.Stop()
}

func TestSpinnerWithTimeout(t *testing.T) {
	captureStatus(t)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := newSpinner(ctx, "Testing with timeout...")
	s.Start()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context timeout")
	}
	s.Stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	captureStatus(t)
	s := newSpinner(context.Background(), "Testing idempotent stop...")
	s.Start()

	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	captureStatus(t)
	s := newSpinner(context.Background(), "never started")
	s.Stop()
}

func TestSpinnerStopWithError(t *testing.T) {
	buf := captureStatus(t)
	s := newSpinner(context.Background(), "Testing error...")
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.StopWithError("Failed!")

	if !strings.Contains(buf.String(), "Failed!") {
		t.Errorf("output missing error message: %q", buf.String())
	}
}
