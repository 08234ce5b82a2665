package services

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

var commandContext = exec.CommandContext

// outputTailLines bounds how much tool output is replayed inside an error.
const outputTailLines = 40

// Runner executes external tools synchronously. Tool output is streamed to
// the debug log as it arrives; on a non-zero exit the tail of the combined
// output is surfaced verbatim inside the returned error.
type Runner struct {
	logger *slog.Logger
}

// NewRunner constructs a Runner that logs tool output through logger.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{logger: logger}
}

// Run invokes binary with args and blocks until it exits. A non-zero exit is
// returned as an ErrExternalTool-tagged error carrying the output tail.
func (r *Runner) Run(ctx context.Context, binary string, args ...string) error {
	if strings.TrimSpace(binary) == "" {
		return errors.New("runner: empty binary")
	}

	cmd := commandContext(ctx, binary, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	cmd.Stderr = cmd.Stdout

	r.logger.Debug("invoking external tool", "command", binary, "args", strings.Join(args, " "))

	if err := cmd.Start(); err != nil {
		return Wrap(ErrExternalTool, binary, "start", "", err)
	}

	tail := make([]string, 0, outputTailLines)
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		r.logger.Debug("tool output", "command", binary, "line", line)
		if len(tail) == outputTailLines {
			tail = tail[1:]
		}
		tail = append(tail, line)
	}
	if err := scanner.Err(); err != nil {
		_ = cmd.Wait()
		return Wrap(ErrExternalTool, binary, "read output", "", err)
	}

	if err := cmd.Wait(); err != nil {
		return Wrap(ErrExternalTool, binary, "exited", strings.TrimSpace(strings.Join(tail, "\n")), err)
	}
	return nil
}

// CaptureOutput invokes binary with args and returns its combined output.
// Used for capability probes where the output itself is the result.
func (r *Runner) CaptureOutput(ctx context.Context, binary string, args ...string) (string, error) {
	if strings.TrimSpace(binary) == "" {
		return "", errors.New("runner: empty binary")
	}
	cmd := commandContext(ctx, binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", Wrap(ErrExternalTool, binary, "exited", strings.TrimSpace(string(output)), err)
	}
	return string(output), nil
}
