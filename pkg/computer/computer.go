// Package computer runs code on the user's machine for the agent: shell
// commands and python snippets, with output capture and truncation.
package computer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	oierrors "github.com/odvcencio/interpreter/pkg/errors"
	"github.com/odvcencio/interpreter/pkg/logging"
)

// Language interpreters keyed by the names the agent uses.
var languages = map[string][]string{
	"shell":  {"sh", "-c"},
	"bash":   {"sh", "-c"},
	"sh":     {"sh", "-c"},
	"python": {"python3", "-c"},
}

// waitDelay bounds how long Run waits for output pipes after the process
// group is killed.
const waitDelay = 2 * time.Second

// Computer executes code blocks as subprocesses.
type Computer struct {
	// MaxOutput caps the characters returned from a run; zero disables it.
	MaxOutput int

	out    io.Writer
	logger *logging.Logger

	mu      sync.Mutex
	running map[*exec.Cmd]struct{}
	command func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// New returns a Computer echoing displayed output to out.
func New(out io.Writer, logger *logging.Logger) *Computer {
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Computer{
		out:     out,
		logger:  logger.WithComponent("computer"),
		running: make(map[*exec.Cmd]struct{}),
		command: exec.CommandContext,
	}
}

// Run executes code in language and returns its combined output. With
// display set, output is streamed to the terminal as it arrives. A non-zero
// exit returns the output together with an EXECUTION error.
func (c *Computer) Run(ctx context.Context, language, code string, display bool) (string, error) {
	argv, ok := languages[strings.ToLower(strings.TrimSpace(language))]
	if !ok {
		return "", oierrors.Newf(oierrors.ErrCodeExecution, "unsupported language %q", language)
	}

	cmd := c.command(ctx, argv[0], append(argv[1:], code)...)
	setProcessGroup(cmd)
	cmd.Cancel = func() error { return killProcessGroup(cmd) }
	cmd.WaitDelay = waitDelay
	var captured bytes.Buffer
	var sink io.Writer = &captured
	if display {
		sink = io.MultiWriter(&captured, c.out)
	}
	cmd.Stdout = sink
	cmd.Stderr = sink

	if err := c.start(cmd); err != nil {
		return "", oierrors.Wrap(err, oierrors.ErrCodeExecution, "starting "+argv[0]).
			WithContext("language", language)
	}
	c.logger.Debug("code started", "language", language, "pid", cmd.Process.Pid)

	err := cmd.Wait()
	c.forget(cmd)

	output := Truncate(captured.String(), c.MaxOutput)
	if err != nil {
		c.logger.Debug("code failed", "language", language, "error", err)
		return output, oierrors.Wrap(err, oierrors.ErrCodeExecution, "code execution failed").
			WithContext("language", language)
	}
	return output, nil
}

func (c *Computer) start(cmd *exec.Cmd) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := cmd.Start(); err != nil {
		return err
	}
	c.running[cmd] = struct{}{}
	return nil
}

func (c *Computer) forget(cmd *exec.Cmd) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.running, cmd)
}

// Terminate kills every process still running.
func (c *Computer) Terminate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for cmd := range c.running {
		if err := killProcessGroup(cmd); err != nil {
			c.logger.Debug("kill failed", "pid", cmd.Process.Pid, "error", err)
		}
		delete(c.running, cmd)
	}
}

// Running reports how many processes are in flight.
func (c *Computer) Running() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.running)
}

// Truncate keeps the last max characters of output, prefixed with a notice.
func Truncate(output string, max int) string {
	if max <= 0 {
		return output
	}
	runes := []rune(output)
	if len(runes) <= max {
		return output
	}
	return fmt.Sprintf("Output truncated. Showing the last %d characters.\n\n", max) + string(runes[len(runes)-max:])
}
