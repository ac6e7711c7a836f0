// Package setup provisions the optional Python packages that OS control
// depends on. Provisioning never fails the launch: anything that cannot be
// installed is reported and the launcher carries on.
package setup

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/odvcencio/interpreter/pkg/logging"
)

// OSPackages are the Python modules OS control imports.
var OSPackages = []string{"cv2", "plyer", "pyautogui", "pyperclip", "pywinctl"}

// InstallCommands are tried in order until every package imports.
var InstallCommands = []string{
	"pip install 'open-interpreter[os]'",
	"pip3 install 'open-interpreter[os]'",
}

// WarnPause is how long a provisioning warning stays on screen before the
// launch continues.
const WarnPause = 2 * time.Second

// Runner executes code through the interpreter's computer.
type Runner interface {
	Run(ctx context.Context, language, code string, display bool) (string, error)
}

// Prompter shows messages and reads the install answer. ReadLineContext
// returns ctx.Err() once ctx is done, even while waiting for input.
type Prompter interface {
	DisplayMarkdown(md string)
	Print(format string, args ...any)
	ReadLineContext(ctx context.Context, prompt string) (string, error)
}

// ImportCheck reports whether a Python module can be imported.
type ImportCheck func(ctx context.Context, pkg string) bool

// PythonImportable checks importability by running `import <pkg>` through
// runner.
func PythonImportable(runner Runner) ImportCheck {
	return func(ctx context.Context, pkg string) bool {
		_, err := runner.Run(ctx, "python", "import "+pkg, false)
		return err == nil
	}
}

// State is a step of the provisioning state machine.
type State int

const (
	StateCheck State = iota
	StatePrompt
	StateInstall
	StateRecheck
	StateDecline
	StateWarn
	StateDone
)

func (s State) String() string {
	switch s {
	case StateCheck:
		return "check"
	case StatePrompt:
		return "prompt"
	case StateInstall:
		return "install"
	case StateRecheck:
		return "recheck"
	case StateDecline:
		return "decline"
	case StateWarn:
		return "warn"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Result summarises a provisioning run.
type Result struct {
	// Missing lists packages still not importable when the run ended.
	Missing  []string
	Declined bool
	// Interrupted is set when ctx was cancelled; nothing more was printed.
	Interrupted bool
	// Attempts counts install commands run.
	Attempts int
	Trace    []State
}

// Provisioner walks check -> prompt -> install/decline -> done.
type Provisioner struct {
	Packages   []string
	Commands   []string
	Importable ImportCheck
	Runner     Runner
	Prompter   Prompter
	Sleep      func(time.Duration)
	Logger     *logging.Logger
}

// NewProvisioner returns a provisioner for the OS-control packages that
// installs through runner and checks imports through it as well.
func NewProvisioner(runner Runner, prompter Prompter, logger *logging.Logger) *Provisioner {
	return &Provisioner{
		Packages:   OSPackages,
		Commands:   InstallCommands,
		Importable: PythonImportable(runner),
		Runner:     runner,
		Prompter:   prompter,
		Sleep:      time.Sleep,
		Logger:     logger,
	}
}

// Run provisions the packages. It never returns an error; the result says
// what is still missing. Cancelling ctx ends the run at the next step, or
// at once when waiting for an answer, without the warning banners.
func (p *Provisioner) Run(ctx context.Context) Result {
	var res Result
	state := StateCheck
	cmd := 0

	for state != StateDone {
		if ctx.Err() != nil {
			res.Interrupted = true
			break
		}
		res.Trace = append(res.Trace, state)
		switch state {
		case StateCheck:
			res.Missing = p.missing(ctx)
			if len(res.Missing) == 0 {
				state = StateDone
			} else {
				state = StatePrompt
			}

		case StatePrompt:
			ok, err := p.ask(ctx, res.Missing)
			switch {
			case err != nil:
				res.Interrupted = true
				state = StateDone
			case ok:
				state = StateInstall
			default:
				res.Declined = true
				state = StateDecline
			}

		case StateInstall:
			if cmd >= len(p.Commands) {
				state = StateWarn
				continue
			}
			command := p.Commands[cmd]
			cmd++
			res.Attempts++
			if _, err := p.Runner.Run(ctx, "shell", command, true); err != nil {
				p.log().Warn("install command failed", "command", command, "error", err)
			}
			state = StateRecheck

		case StateRecheck:
			res.Missing = p.missing(ctx)
			if len(res.Missing) == 0 {
				state = StateDone
			} else {
				state = StateInstall
			}

		case StateDecline:
			p.Prompter.Print("\nPlease try to install them manually.\n\n")
			p.sleep()
			p.Prompter.Print("Attempting to start OS control anyway...\n\n")
			state = StateDone

		case StateWarn:
			p.Prompter.Print("\n\nWarning: The following packages could not be installed: %s\n", strings.Join(res.Missing, ", "))
			p.Prompter.Print("\nPlease try to install them manually.\n\n")
			p.sleep()
			p.Prompter.Print("Attempting to start OS control anyway...\n\n")
			state = StateDone
		}
	}
	res.Trace = append(res.Trace, StateDone)
	return res
}

func (p *Provisioner) missing(ctx context.Context) []string {
	var out []string
	for _, pkg := range p.Packages {
		if !p.Importable(ctx, pkg) {
			out = append(out, pkg)
		}
	}
	return out
}

// ask reports whether the user agreed to install. Only "y" is consent; an
// error means ctx was cancelled while waiting.
func (p *Provisioner) ask(ctx context.Context, missing []string) (bool, error) {
	quoted := make([]string, len(missing))
	for i, m := range missing {
		quoted[i] = "`" + m + "`"
	}
	p.Prompter.DisplayMarkdown(fmt.Sprintf(
		"> **Missing Package(s): %s**\n\nThese packages are required for OS Control.\n\nInstall them?\n",
		strings.Join(quoted, ", ")))

	answer, err := p.Prompter.ReadLineContext(ctx, "(y/n) > ")
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return false, ctxErr
		}
		p.log().Debug("no install answer", "error", err)
		return false, nil
	}
	return strings.EqualFold(strings.TrimSpace(answer), "y"), nil
}

func (p *Provisioner) sleep() {
	if p.Sleep != nil {
		p.Sleep(WarnPause)
	}
}

func (p *Provisioner) log() *logging.Logger {
	if p.Logger == nil {
		return logging.Discard()
	}
	return p.Logger
}
