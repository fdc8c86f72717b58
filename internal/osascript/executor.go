package osascript

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultTimeout bounds one bridge round trip unless the caller passes
	// its own deadline (hierarchy scans do).
	DefaultTimeout = 30 * time.Second

	// maxOutputBytes caps the captured stdout. Exceeding it is a transport
	// failure, not a recoverable condition.
	maxOutputBytes = 20 << 20

	defaultBin = "/usr/bin/osascript"
)

// Runner executes a command against the scripting host and decodes the
// result payload into out. The domain layer consumes this interface so tests
// can substitute a fake host.
type Runner interface {
	Run(ctx context.Context, cmd Command, timeout time.Duration, out any) error
}

// Executor runs rendered programs through osascript's JavaScript (JXA)
// interpreter. Each call writes the program to its own temporary file, so
// concurrent calls share no state and large or special-character-laden
// programs never pass through shell argument parsing.
type Executor struct {
	logger    *logrus.Logger
	bin       string
	dir       string
	maxOutput int
}

// NewExecutor creates an executor using the system osascript binary.
func NewExecutor(logger *logrus.Logger) *Executor {
	return &Executor{
		logger:    logger,
		bin:       defaultBin,
		dir:       os.TempDir(),
		maxOutput: maxOutputBytes,
	}
}

// errorSentinel is the payload the harness emits when the program throws.
type errorSentinel struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
	Stack   string `json:"stack"`
}

// Run renders cmd, executes it under the given timeout, and decodes the
// payload into out (which may be nil when the caller ignores the result).
// Failures map onto the bridge taxonomy: TimeoutError, ProtocolError, or
// HostExecutionError.
func (e *Executor) Run(ctx context.Context, cmd Command, timeout time.Duration, out any) error {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	program, err := Render(cmd)
	if err != nil {
		return err
	}

	path := filepath.Join(e.dir, "mcp-apple-"+uuid.NewString()+".js")
	if err := os.WriteFile(path, []byte(program), 0o600); err != nil {
		return fmt.Errorf("write script for %s: %w", cmd.Op, err)
	}
	defer os.Remove(path)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	stdout := &cappedBuffer{max: e.maxOutput}
	var stderr bytes.Buffer

	proc := exec.CommandContext(ctx, e.bin, "-l", "JavaScript", path)
	proc.Stdout = stdout
	proc.Stderr = &stderr
	// Don't wait on inherited pipes after the kill; orphaned children of a
	// timed-out host must not stall the bridge.
	proc.WaitDelay = time.Second

	start := time.Now()
	runErr := proc.Run()
	elapsed := time.Since(start)

	e.logger.WithFields(logrus.Fields{
		"op":      cmd.Op,
		"elapsed": elapsed.String(),
		"bytes":   stdout.buf.Len(),
	}).Debug("osascript call finished")

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &TimeoutError{Op: cmd.Op, Timeout: timeout}
	}
	if stdout.overflowed {
		return &ProtocolError{Op: cmd.Op, Detail: fmt.Sprintf("output exceeded %d bytes", e.maxOutput)}
	}
	if runErr != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = "host exited abnormally"
		}
		return &ProtocolError{Op: cmd.Op, Detail: detail, Err: runErr}
	}

	payload := bytes.TrimSpace(stdout.buf.Bytes())
	if len(payload) == 0 {
		return &ProtocolError{Op: cmd.Op, Detail: "empty output"}
	}

	var sentinel errorSentinel
	if err := json.Unmarshal(payload, &sentinel); err == nil && sentinel.Error {
		return &HostExecutionError{Op: cmd.Op, Message: sentinel.Message, Stack: sentinel.Stack}
	}

	if out == nil {
		if !json.Valid(payload) {
			return &ProtocolError{Op: cmd.Op, Detail: "invalid JSON payload"}
		}
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return &ProtocolError{Op: cmd.Op, Detail: "decode payload", Err: err}
	}
	return nil
}

// cappedBuffer rejects writes past max so a runaway host cannot exhaust
// memory; the executor reports overflow as a ProtocolError.
type cappedBuffer struct {
	buf        bytes.Buffer
	max        int
	overflowed bool
}

var errOutputCap = errors.New("output cap exceeded")

func (b *cappedBuffer) Write(p []byte) (int, error) {
	if b.buf.Len()+len(p) > b.max {
		b.overflowed = true
		return 0, errOutputCap
	}
	return b.buf.Write(p)
}
