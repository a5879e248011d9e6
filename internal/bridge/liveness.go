package bridge

import (
	"context"
	"encoding/json"
)

// IsAlive reports whether the target application currently has a running
// process. The probe runs under the short probe timeout and never consults
// application state, so it cannot itself trigger a launch. Any failure to
// determine liveness reads as not alive.
func (r *Runner) IsAlive(ctx context.Context) bool {
	raw, err := r.invoke(ctx, "utils", "is_running", nil, r.ProbeTimeout)
	if err != nil {
		return false
	}
	var probe struct {
		Running bool `json:"running"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}
	return probe.Running
}

// RequireLive is the write-path precondition: it returns ErrNotRunning when
// the application is not up, and nil otherwise.
func (r *Runner) RequireLive(ctx context.Context) error {
	if !r.IsAlive(ctx) {
		return ErrNotRunning
	}
	return nil
}
