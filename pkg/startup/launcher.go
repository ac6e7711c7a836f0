package startup

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/odvcencio/interpreter/pkg/agent"
	"github.com/odvcencio/interpreter/pkg/cli"
	oierrors "github.com/odvcencio/interpreter/pkg/errors"
	"github.com/odvcencio/interpreter/pkg/logging"
	"github.com/odvcencio/interpreter/pkg/model"
	"github.com/odvcencio/interpreter/pkg/setup"
	"github.com/odvcencio/interpreter/pkg/terminal"
)

const updateMessage = "> **A new version of Open Interpreter is available.**\n>Please run: `pip install --upgrade open-interpreter`\n\n---"

// UsageError is a command-line error that has already been shown to the
// user along with usage.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

// Launcher runs one invocation of the terminal interface.
type Launcher struct {
	Config Config
	Schema *cli.Schema
	Dirs   Dirs

	Profiles      ProfileStore
	Opener        DirOpener
	Updates       UpdateChecker
	Conversations ConversationNavigator
	// Runner defaults to the interpreter itself.
	Runner Runner
	// NewProvisioner builds the OS-control provisioner. When nil the
	// interpreter's computer is used to check and install packages.
	NewProvisioner func(interp *agent.Interpreter) Provisioner

	Terminal *terminal.Writer
	Logger   *logging.Logger
	// LogLevel is raised to debug when --debug is given.
	LogLevel *slog.LevelVar
	Sleep    func(time.Duration)
}

// New returns a launcher with the default schema.
func New(cfg Config) *Launcher {
	return &Launcher{
		Config: cfg,
		Schema: cli.DefaultSchema(),
		Sleep:  time.Sleep,
	}
}

// Run parses args and carries the invocation through to its end: a special
// dispatch, the conversation navigator, the server or chat.
func (l *Launcher) Run(ctx context.Context, interp *agent.Interpreter, args []string) error {
	term := l.term()
	args = cli.RewriteDeprecated(args, term, l.Sleep)

	parser := cli.NewParser(l.schema(), l.prog())
	opts, err := parser.Parse(args)
	if err != nil {
		return l.reportParseError(parser, err)
	}
	if opts.Bool(cli.OptDebug) && l.LogLevel != nil {
		l.LogLevel.Set(slog.LevelDebug)
	}

	if done, err := l.dispatchSpecial(opts); done {
		return err
	}

	if err := l.Resolve(ctx, opts, interp); err != nil {
		return err
	}

	l.checkForUpdate(ctx, interp)
	model.NormalizeProvider(interp.LLM)

	return l.dispatch(ctx, opts, interp)
}

func (l *Launcher) reportParseError(parser *cli.Parser, err error) error {
	term := l.term()
	if errors.Is(err, cli.ErrHelp) {
		term.Print("%s", parser.Help())
		return nil
	}

	var unknown *cli.UnknownArgsError
	if errors.As(err, &unknown) {
		term.Print("\nUnrecognized argument(s): %s\n", cli.FormatArgs(unknown.Args))
		term.Println("%s", parser.Usage())
		term.Println("For detailed documentation of supported arguments, please visit: %s", cli.DocsURL)
		return &UsageError{Err: oierrors.Wrap(err, oierrors.ErrCodeUnknownArgument, "unrecognized arguments")}
	}

	term.Println("%s", parser.Usage())
	term.Println("%s: error: %s", l.prog(), parseErrorText(err))
	return &UsageError{Err: err}
}

func parseErrorText(err error) string {
	var coded *oierrors.Error
	if errors.As(err, &coded) {
		if coded.Underlying != nil {
			return coded.Underlying.Error()
		}
		return coded.Message
	}
	return err.Error()
}

// dispatchSpecial handles the flags that do one thing and return.
func (l *Launcher) dispatchSpecial(opts *cli.Options) (bool, error) {
	term := l.term()
	switch {
	case opts.Bool(cli.OptProfiles):
		return true, l.openDir(l.Dirs.Profiles)

	case opts.Bool(cli.OptLocalModels):
		return true, l.openDir(l.Dirs.Models)

	case opts.Reset.Kind == cli.ResetAll:
		if err := l.profiles().ResetAll(); err != nil {
			return true, err
		}
		term.DisplayMarkdown("> Default profiles reset.")
		return true, nil

	case opts.Reset.Kind == cli.ResetNamed:
		if err := l.profiles().Reset(opts.Reset.Name); err != nil {
			return true, err
		}
		term.DisplayMarkdown("> Profile `" + opts.Reset.Name + "` reset.")
		return true, nil

	case opts.Bool(cli.OptVersion):
		term.Println("Open Interpreter %s %s", l.Config.Version, l.Config.UpdateName)
		return true, nil
	}
	return false, nil
}

func (l *Launcher) openDir(dir string) error {
	if l.Opener == nil {
		return oierrors.New(oierrors.ErrCodeInternal, "no directory opener configured")
	}
	if err := l.Opener.OpenDir(dir); err != nil {
		return oierrors.Wrap(err, oierrors.ErrCodeInternal, "opening directory").
			WithContext("dir", dir).
			WithRemediation("open " + dir + " manually")
	}
	return nil
}

// checkForUpdate is best effort; failures are logged and dropped.
func (l *Launcher) checkForUpdate(ctx context.Context, interp *agent.Interpreter) {
	if interp.Offline || l.Updates == nil {
		return
	}
	newer, err := l.Updates.Check(ctx)
	if err != nil {
		l.log().Debug("update check failed", "error", err)
		return
	}
	if newer {
		l.term().DisplayMarkdown(updateMessage)
	}
}

func (l *Launcher) dispatch(ctx context.Context, opts *cli.Options, interp *agent.Interpreter) error {
	if opts.Bool(cli.OptConversations) {
		if l.Conversations == nil {
			return oierrors.New(oierrors.ErrCodeInternal, "no conversation navigator configured")
		}
		return l.Conversations.Navigate(ctx, interp)
	}

	runner := l.runner(interp)
	if opts.Bool(cli.OptServer) {
		return runner.Serve(ctx)
	}

	interp.InTerminalInterface = true
	if err := runner.ValidateLLMSettings(ctx); err != nil {
		return err
	}
	return runner.Chat(ctx)
}

func (l *Launcher) provisioner(interp *agent.Interpreter) Provisioner {
	if l.NewProvisioner != nil {
		return l.NewProvisioner(interp)
	}
	if interp.Computer == nil {
		return nil
	}
	p := setup.NewProvisioner(interp.Computer, l.term(), l.log().WithComponent("provision"))
	p.Sleep = l.Sleep
	return p
}

func (l *Launcher) runner(interp *agent.Interpreter) Runner {
	if l.Runner != nil {
		return l.Runner
	}
	return interp
}

func (l *Launcher) profiles() ProfileStore {
	if l.Profiles == nil {
		return missingProfiles{}
	}
	return l.Profiles
}

func (l *Launcher) schema() *cli.Schema {
	if l.Schema == nil {
		return cli.DefaultSchema()
	}
	return l.Schema
}

func (l *Launcher) prog() string {
	if l.Config.Prog == "" {
		return DefaultProg
	}
	return l.Config.Prog
}

func (l *Launcher) term() *terminal.Writer {
	if l.Terminal == nil {
		l.Terminal = terminal.New()
	}
	return l.Terminal
}

func (l *Launcher) log() *logging.Logger {
	if l.Logger == nil {
		return logging.Discard()
	}
	return l.Logger
}

type missingProfiles struct{}

func (missingProfiles) Apply(*agent.Interpreter, string) error { return errNoProfiles }
func (missingProfiles) Reset(string) error                     { return errNoProfiles }
func (missingProfiles) ResetAll() error                        { return errNoProfiles }

var errNoProfiles = oierrors.New(oierrors.ErrCodeInternal, "no profile store configured")
