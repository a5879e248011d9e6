// Package bridge executes JXA payloads against the OmniFocus scripting
// interface via osascript and recovers structured results from the text
// channel. It is the only part of the program that crosses the process
// boundary; everything above it sees JSON envelopes and typed errors.
package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os/exec"
	"time"
)

const (
	// DefaultTimeout bounds application-state operations.
	DefaultTimeout = 60 * time.Second
	// DefaultProbeTimeout bounds the liveness probe.
	DefaultProbeTimeout = 5 * time.Second
	// DefaultMaxOutput caps captured stdout at 10 MiB.
	DefaultMaxOutput = 10 * 1024 * 1024
	// DefaultAppName is the scripting target.
	DefaultAppName = "OmniFocus"
	// DefaultOsascript is the script interpreter binary.
	DefaultOsascript = "osascript"
)

// Runner invokes JXA payloads as child processes. The zero value is not
// usable; construct with NewRunner.
type Runner struct {
	Osascript    string
	AppName      string
	Timeout      time.Duration
	ProbeTimeout time.Duration
	MaxOutput    int64
}

// NewRunner returns a Runner with production defaults.
func NewRunner() *Runner {
	return &Runner{
		Osascript:    DefaultOsascript,
		AppName:      DefaultAppName,
		Timeout:      DefaultTimeout,
		ProbeTimeout: DefaultProbeTimeout,
		MaxOutput:    DefaultMaxOutput,
	}
}

// Invoke assembles and runs the named payload with args as its positional
// argument vector, applying the standard timeout. Argument semantics belong
// to the payload; this layer passes them through opaquely.
func (r *Runner) Invoke(ctx context.Context, category, name string, args []string) (json.RawMessage, error) {
	return r.invoke(ctx, category, name, args, r.Timeout)
}

func (r *Runner) invoke(ctx context.Context, category, name string, args []string, timeout time.Duration) (json.RawMessage, error) {
	script, err := assembleScript(category, name, r.AppName)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	argv := append([]string{"-l", "JavaScript", "-e", script, "--"}, args...)
	cmd := exec.CommandContext(ctx, r.Osascript, argv...)

	stdout := newCapBuffer(r.MaxOutput)
	var stderr bytes.Buffer
	cmd.Stdout = stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		return nil, &Error{Kind: Timeout, Message: "Script timed out"}
	}

	if stdout.overflowed {
		return nil, &Error{Kind: OutputTooLarge, Message: "Script output exceeded size limit"}
	}

	trimmed := bytes.TrimSpace(stdout.Bytes())

	if runErr != nil {
		// The scripting engine sometimes reports an application-level
		// error through a non-zero exit while still writing a valid
		// envelope. Trust stdout when it parses.
		if len(trimmed) > 0 && json.Valid(trimmed) {
			return json.RawMessage(trimmed), nil
		}
		var execErr *exec.Error
		if errors.As(runErr, &execErr) {
			return nil, &Error{
				Kind:    ProcessError,
				Message: "Failed to launch " + r.Osascript + ": " + execErr.Err.Error(),
			}
		}
		return nil, &Error{
			Kind:    ProcessError,
			Message: runErr.Error(),
			Stderr:  string(bytes.TrimSpace(stderr.Bytes())),
		}
	}

	if len(trimmed) == 0 {
		return nil, &Error{Kind: EmptyResponse, Message: "Empty response from script"}
	}

	if !json.Valid(trimmed) {
		// Unstructured output is preserved for the caller to display,
		// not discarded.
		raw, _ := json.Marshal(struct {
			Success bool   `json:"success"`
			Raw     string `json:"raw"`
		}{Success: true, Raw: string(trimmed)})
		return json.RawMessage(raw), nil
	}

	return json.RawMessage(trimmed), nil
}

// capBuffer stores up to limit bytes and discards the rest, recording that an
// overflow happened. Discarding rather than failing the pipe keeps the child
// process draining normally while still bounding memory.
type capBuffer struct {
	buf        bytes.Buffer
	limit      int64
	overflowed bool
}

func newCapBuffer(limit int64) *capBuffer {
	return &capBuffer{limit: limit}
}

func (b *capBuffer) Write(p []byte) (int, error) {
	remaining := b.limit - int64(b.buf.Len())
	if remaining <= 0 {
		b.overflowed = true
		return len(p), nil
	}
	if int64(len(p)) > remaining {
		b.overflowed = true
		b.buf.Write(p[:remaining])
		return len(p), nil
	}
	b.buf.Write(p)
	return len(p), nil
}

func (b *capBuffer) Bytes() []byte {
	return b.buf.Bytes()
}
