package bridge

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestIsAliveTrue(t *testing.T) {
	r := testRunner(t, `echo '{"running":true}'`)
	if !r.IsAlive(context.Background()) {
		t.Error("Expected alive")
	}
}

func TestIsAliveFalse(t *testing.T) {
	r := testRunner(t, `echo '{"running":false}'`)
	if r.IsAlive(context.Background()) {
		t.Error("Expected not alive")
	}
}

func TestIsAliveFailsClosed(t *testing.T) {
	// Probe failures of any kind read as not alive.
	for name, body := range map[string]string{
		"non-zero exit": "exit 1",
		"empty output":  "exit 0",
		"garbage":       "echo not-json-at-all",
	} {
		r := testRunner(t, body)
		if r.IsAlive(context.Background()) {
			t.Errorf("%s: expected not alive", name)
		}
	}
}

func TestIsAliveUsesProbeTimeout(t *testing.T) {
	r := testRunner(t, "sleep 30")
	r.Timeout = time.Hour
	r.ProbeTimeout = 100 * time.Millisecond

	start := time.Now()
	alive := r.IsAlive(context.Background())
	if alive {
		t.Error("Expected not alive after probe timeout")
	}
	if time.Since(start) > 5*time.Second {
		t.Error("Probe did not honor its own timeout")
	}
}

func TestRequireLive(t *testing.T) {
	r := testRunner(t, `echo '{"running":false}'`)
	if err := r.RequireLive(context.Background()); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("Expected ErrNotRunning, got %v", err)
	}

	r = testRunner(t, `echo '{"running":true}'`)
	if err := r.RequireLive(context.Background()); err != nil {
		t.Fatalf("Expected nil, got %v", err)
	}
}
