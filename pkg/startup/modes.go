package startup

import (
	"context"
	_ "embed"
	"strings"

	"github.com/odvcencio/interpreter/pkg/agent"
	"github.com/odvcencio/interpreter/pkg/cli"
	"github.com/odvcencio/interpreter/pkg/model"
)

//go:embed os_system_message.txt
var osSystemMessage string

// iconClickLine needs the hosted screenshot service, so offline runs drop it.
const iconClickLine = `interpreter.interpreter.computer.mouse.click(icon="gear icon") # Moves mouse to the icon with that description. Use this very often` + "\n"

// OS-mode sizing.
const (
	OSContextWindow = 110000
	OSMaxTokens     = 4096
)

const (
	osEnabledMessage = "> `OS Control` enabled"

	screenshotAPIMessage = "To find items on the screen, Open Interpreter has been instructed to send screenshots to [api.openinterpreter.com](https://api.openinterpreter.com/) (we do not store them). Add `--offline` to attempt this locally."

	screenRecordingMessage = "**Make sure that screen recording permissions are enabled for your Terminal or Python environment.**"

	noApprovalWarning = "**Warning:** In this mode, Open Interpreter will not require approval before performing actions. Be ready to close your terminal."

	computerBootstrap = "import time\nfrom interpreter import interpreter\ncomputer = interpreter.interpreter.computer"
)

// modeProfiles is ordered: a later mode overrides an earlier one.
var modeProfiles = []struct {
	option  string
	profile string
}{
	{cli.OptFast, "fast.yaml"},
	{cli.OptVision, "vision.yaml"},
	{cli.OptOS, "os.yaml"},
	{cli.OptLocal, "local.yaml"},
}

// OSSystemMessage returns the OS-control prompt. Offline runs lose the icon
// click capability.
func OSSystemMessage(offline bool) string {
	msg := strings.TrimSpace(osSystemMessage)
	if offline {
		msg = strings.Replace(msg, iconClickLine, "", 1)
	}
	return msg
}

// SelectProfile returns the profile to load. Mode flags win over --profile
// (local over os over vision over fast, regardless of argument order),
// and --profile wins over the schema default.
func SelectProfile(opts *cli.Options) string {
	profile, _ := opts.String(cli.OptProfile)
	for _, m := range modeProfiles {
		if opts.Bool(m.option) {
			profile = m.profile
		}
	}
	if profile == "" {
		if d, ok := cli.DefaultSchema().Lookup(cli.OptProfile); ok {
			profile, _ = d.Default.(string)
		}
	}
	return profile
}

// ApplyOSMode bulk-sets the OS-control settings on interp and injects the
// default OS model into opts when no model was given.
func ApplyOSMode(opts *cli.Options, interp *agent.Interpreter, defaultModel string) {
	interp.OS = true
	interp.LLM.SupportsVision = true
	if !opts.Has(cli.OptModel) && defaultModel != "" {
		// Mode source: a profile model overrides this default, an explicit -m still wins.
		opts.Set(cli.OptModel, cli.Value{V: defaultModel, Source: cli.SourceMode})
	}
	interp.LLM.SupportsFunctions = model.Bool(false)
	interp.LLM.ContextWindow = model.Int(OSContextWindow)
	interp.LLM.MaxTokens = model.Int(OSMaxTokens)
	interp.AutoRun = true
	interp.ForceTaskCompletion = true
	interp.SystemMessage = OSSystemMessage(opts.Bool(cli.OptOffline))
}

// expandModes applies mode flags and returns the profile to load.
func (l *Launcher) expandModes(ctx context.Context, opts *cli.Options, interp *agent.Interpreter) (string, error) {
	if opts.Bool(cli.OptOS) {
		ApplyOSMode(opts, interp, l.Config.OSDefaultModel)
		if err := l.enableOSControl(ctx, opts, interp); err != nil {
			return "", err
		}
	}
	return SelectProfile(opts), nil
}

// enableOSControl provisions packages and prepares the computer. Missing
// packages never fail the launch; an interrupt returns ctx.Err().
func (l *Launcher) enableOSControl(ctx context.Context, opts *cli.Options, interp *agent.Interpreter) error {
	term := l.term()
	autoRun := opts.Bool(cli.OptAutoRun)

	if p := l.provisioner(interp); p != nil {
		res := p.Run(ctx)
		if res.Interrupted {
			l.log().Debug("os control setup interrupted")
			return ctx.Err()
		}
		if len(res.Missing) > 0 {
			l.log().Warn("os control packages missing", "packages", res.Missing, "declined", res.Declined)
		}
	}

	term.DisplayMarkdown(osEnabledMessage)

	if !opts.Bool(cli.OptOffline) && !autoRun {
		term.DisplayMarkdown(screenshotAPIMessage)
		term.Newline()
	}
	if !autoRun {
		term.DisplayMarkdown(screenRecordingMessage)
		term.Newline()
	}

	if interp.Computer != nil {
		if _, err := interp.Computer.Run(ctx, "python", computerBootstrap, opts.Bool(cli.OptVerbose)); err != nil {
			l.log().Warn("computer bootstrap failed", "error", err)
		}
	}

	if !autoRun {
		term.DisplayMarkdown(noApprovalWarning)
		term.Newline()
	}
	return nil
}
