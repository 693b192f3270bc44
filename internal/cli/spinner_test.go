package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestSpinnerDrawsAndClears(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinnerTo(context.Background(), &buf, "Computing spring layout...")
	s.Start()
	time.Sleep(3 * spinnerInterval)
	s.Stop()

	out := buf.String()
	if !strings.Contains(out, "Computing spring layout...") {
		t.Errorf("message never drawn: %q", out)
	}
	if !strings.HasSuffix(out, "\r") {
		t.Errorf("line not cleared after Stop: %q", out)
	}
	if s.Cancelled() {
		t.Error("explicit Stop reported as cancellation")
	}
}

func TestSpinnerCancelled(t *testing.T) {
	tests := []struct {
		name string
		ctx  func() (context.Context, context.CancelFunc)
	}{
		{"cancel", func() (context.Context, context.CancelFunc) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			return ctx, cancel
		}},
		{"timeout", func() (context.Context, context.CancelFunc) {
			return context.WithTimeout(context.Background(), 10*time.Millisecond)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := tt.ctx()
			defer cancel()

			s := newSpinnerTo(ctx, &bytes.Buffer{}, "Rendering svg...")
			s.Start()
			<-ctx.Done()
			s.Stop()

			if !s.Cancelled() {
				t.Error("spinner should report cancellation")
			}
		})
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinnerTo(context.Background(), &bytes.Buffer{}, "Drawing figure...")
	s.Stop() // before Start must not block
	s.Start()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithMessage(t *testing.T) {
	s := newSpinnerTo(context.Background(), &bytes.Buffer{}, "Rendering png...")
	s.Start()
	s.StopWithSuccess("Rendered png")

	s = newSpinnerTo(context.Background(), &bytes.Buffer{}, "Rendering png...")
	s.Start()
	s.StopWithError("Render failed")
}
